package infix

import (
	"strconv"

	"github.com/rs/zerolog"
)

// Option is an option for creating an Evaluator.
type Option interface {
	option(config) config
}

type (
	strictopt bool
	limitopt  int
	logopt    struct{ log zerolog.Logger }
)

// config holds the settings of an Evaluator.
type config struct {
	// strict makes malformed tokens fail the whole evaluation.
	strict bool
	// max is the maximum number of tokens, or 0 for no limit.
	max int
	// log receives an event for each diagnostic.
	log zerolog.Logger
}

// Strict makes an Evaluator reject any expression containing a malformed
// token with a *TokenError, before evaluating anything. Without Strict, a
// malformed token is reported as a MalformedToken diagnostic and evaluation
// continues as if the expression had ended there, then resumes with the next
// token.
func Strict() Option {
	return strictopt(true)
}

func (o strictopt) option(c config) config {
	c.strict = bool(o)
	return c
}

// MaxTokens limits the number of tokens in an expression. Longer expressions
// fail with a *LengthError. A limit of 0 removes any limit. Panics if n is
// negative.
func MaxTokens(n int) Option {
	if n < 0 {
		panic("infix: negative token limit " + strconv.Itoa(n))
	}
	return limitopt(n)
}

func (o limitopt) option(c config) config {
	c.max = int(o)
	return c
}

// Logger sets a logger which receives a warning for each diagnostic.
func Logger(log zerolog.Logger) Option {
	return logopt{log}
}

func (o logopt) option(c config) config {
	c.log = o.log
	return c
}
