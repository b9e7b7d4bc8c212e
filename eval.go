package infix

import (
	"math"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Evaluator evaluates infix expressions. It is not safe to use an Evaluator
// concurrently, but separate Evaluators share no state.
type Evaluator struct {
	// ops is the operator stack. While evaluating, its bottom is always
	// tokenEnd.
	ops []tokenKind
	// vals is the operand stack.
	vals  []float64
	diags Diagnostics
	// cur is the token being processed, which positions diagnostics.
	cur lexToken
	cfg config
}

// NewEvaluator creates an Evaluator. The given options are applied in order.
func NewEvaluator(opts ...Option) *Evaluator {
	cfg := config{log: zerolog.Nop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		cfg = opt.option(cfg)
	}
	return &Evaluator{cfg: cfg}
}

// Clone creates a new Evaluator with the same options as ev, then applies
// opts to it. The clone has no diagnostics.
func (ev *Evaluator) Clone(opts ...Option) *Evaluator {
	cfg := ev.cfg
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		cfg = opt.option(cfg)
	}
	return &Evaluator{cfg: cfg}
}

// Eval evaluates an expression of whitespace-separated numbers, operators, and
// parentheses. Problems in the expression are recovered from as well as
// possible and reported through Diagnostics, so the error is non-nil only if
// the Evaluator is Strict and src contains a malformed token, or if src has
// more tokens than MaxTokens allows. In those cases the result is 0 and there
// are no diagnostics.
func (ev *Evaluator) Eval(src string) (float64, error) {
	ev.reset()
	fs := fields(src)
	if ev.cfg.max > 0 && len(fs) > ev.cfg.max {
		return 0, &LengthError{Col: fs[ev.cfg.max].pos, Len: len(fs), Max: ev.cfg.max}
	}
	if ev.cfg.strict {
		for _, f := range fs {
			if _, err := scan(f); err != nil {
				return 0, err
			}
		}
	}
	for _, f := range fs {
		tok, err := scan(f)
		ev.cur = tok
		if err != nil {
			ev.report(MalformedToken)
		}
		ev.process(tok)
	}
	ev.cur = lexToken{kind: tokenEnd, pos: utf8.RuneCountInString(src) + 1}
	ev.process(ev.cur)
	r := ev.result()
	ev.cfg.log.Debug().Str("expr", src).Float64("result", r).Int("diagnostics", len(ev.diags)).Msg("evaluated")
	return r, nil
}

// Diagnostics returns the problems found by the last call to Eval.
func (ev *Evaluator) Diagnostics() Diagnostics {
	return ev.diags
}

func (ev *Evaluator) reset() {
	ev.ops = append(ev.ops[:0], tokenEnd)
	ev.vals = ev.vals[:0]
	ev.diags = nil
	ev.cur = lexToken{}
}

// process applies one token to the stacks.
func (ev *Evaluator) process(tok lexToken) {
	switch tok.kind {
	case tokenValue:
		ev.vals = append(ev.vals, tok.val)
	case tokenClose:
		top := ev.top()
		for top != tokenOpen && top != tokenEnd {
			ev.apply(top)
			top = ev.top()
		}
		if top == tokenOpen {
			ev.ops = ev.ops[:len(ev.ops)-1]
		} else {
			ev.report(MissingOpenParen)
		}
	default:
		// tokenEnd never reduces, so the sentinel is never applied.
		for top := ev.top(); tok.kind.reduces(top); top = ev.top() {
			ev.apply(top)
		}
		if tok.kind != tokenEnd {
			ev.ops = append(ev.ops, tok.kind)
		}
	}
}

// apply reduces the operator op at the top of the operator stack.
func (ev *Evaluator) apply(op tokenKind) {
	ev.ops = ev.ops[:len(ev.ops)-1]
	if op == tokenOpen {
		ev.report(UnbalancedParen)
		return
	}
	rhs := ev.pop()
	lhs := ev.pop()
	switch op {
	case tokenExp:
		lhs = math.Pow(lhs, rhs)
	case tokenMul:
		lhs *= rhs
	case tokenDiv:
		if rhs == 0 {
			// Leave lhs as the result rather than produce an infinity or NaN.
			ev.report(DivisionByZero)
			break
		}
		lhs /= rhs
	case tokenAdd:
		lhs += rhs
	case tokenSub:
		lhs -= rhs
	default:
		panic("infix: apply " + op.String())
	}
	ev.vals = append(ev.vals, lhs)
}

// top returns the operator at the top of the stack.
func (ev *Evaluator) top() tokenKind {
	return ev.ops[len(ev.ops)-1]
}

// pop removes the top operand from the stack and returns it. If there is none,
// it reports a missing operand and returns 0.
func (ev *Evaluator) pop() float64 {
	if len(ev.vals) == 0 {
		ev.report(MissingOperand)
		return 0
	}
	r := ev.vals[len(ev.vals)-1]
	ev.vals = ev.vals[:len(ev.vals)-1]
	return r
}

// result pops the final value once the operator stack is drained.
func (ev *Evaluator) result() float64 {
	if len(ev.vals) == 0 {
		ev.report(EmptyResult)
		return 0
	}
	r := ev.vals[len(ev.vals)-1]
	ev.vals = ev.vals[:len(ev.vals)-1]
	if len(ev.vals) != 0 {
		ev.report(MissingOperators)
	}
	return r
}

// report records a diagnostic at the current token.
func (ev *Evaluator) report(k Kind) {
	d := &Diagnostic{Kind: k, Col: ev.cur.pos, Text: ev.cur.text}
	ev.diags = append(ev.diags, d)
	ev.cfg.log.Warn().Str("kind", k.String()).Int("col", d.Col).Str("token", d.Text).Msg(k.message())
}

// Evaluate is a shortcut to evaluate an expression with a new Evaluator.
func Evaluate(src string, opts ...Option) (float64, Diagnostics, error) {
	ev := NewEvaluator(opts...)
	r, err := ev.Eval(src)
	if err != nil {
		return 0, nil, err
	}
	return r, ev.Diagnostics(), nil
}
