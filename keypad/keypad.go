// Package keypad builds infix expressions from calculator key presses.
//
// A Keypad holds the number being typed and the expression committed so far.
// Each key either changes them or is rejected with a *KeyError, leaving the
// Keypad as it was. The rules guarantee that the expression handed to the
// evaluator on "=" has its operators and parentheses in valid places, with
// every token separated by a space.
package keypad

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/infix"
)

// Errors about the entry.
var (
	// ErrNoValue means the key needs an entry or a result and there is none.
	ErrNoValue = errors.New("no value entered")
	// ErrInvalidEntry means the entry is not a number, or the key would
	// follow an operator or open parenthesis with no value.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrNegativeRoot is Sqrt on a negative entry.
	ErrNegativeRoot = errors.New("can't take the square root of a negative value")
)

// Errors about parenthesis placement.
var (
	// ErrValueAfterClose is a value directly after a closing parenthesis.
	ErrValueAfterClose = errors.New("must apply an operator after a closing parenthesis before entering a value")
	// ErrParenAfterValue is an opening parenthesis directly after a value.
	ErrParenAfterValue = errors.New("can't place an opening parenthesis after a value")
	// ErrParenAfterClose is an opening parenthesis directly after a closing
	// one.
	ErrParenAfterClose = errors.New("can't place an opening parenthesis after a closing parenthesis")
	// ErrCloseAtStart is a closing parenthesis with nothing before it.
	ErrCloseAtStart = errors.New("can't place a closing parenthesis at the start of an expression")
	// ErrCloseAfterOperator is a closing parenthesis directly after an
	// operator.
	ErrCloseAfterOperator = errors.New("can't place a closing parenthesis after an operator")
	// ErrUnmatchedClose is a closing parenthesis with no open one to match.
	ErrUnmatchedClose = errors.New("no open parenthesis to close")
)

// ErrUnknownKey is a key name that Press does not recognize.
var ErrUnknownKey = errors.New("unknown key")

// KeyError is a key press rejected by a Keypad. It unwraps to one of the Err
// variables in this package.
type KeyError struct {
	// Key is the name of the rejected key.
	Key string
	Err error
}

func (err *KeyError) Error() string {
	return err.Key + ": " + err.Err.Error()
}

func (err *KeyError) Unwrap() error {
	return err.Err
}

// Keypad is the input state of a calculator. The zero value is an empty
// Keypad which evaluates with default options. It is not safe to use a Keypad
// concurrently.
type Keypad struct {
	// entry is the number being typed.
	entry string
	// expr is the committed expression tokens.
	expr []string
	// depth is the number of open parens in expr not yet closed.
	depth int
	// result is the last result, which is showing if shown is true.
	result float64
	shown  bool
	opts   []infix.Option
}

// New creates a Keypad which evaluates with the given options.
func New(opts ...infix.Option) *Keypad {
	return &Keypad{opts: opts}
}

// resultMark is what last reports when a result is showing and nothing has
// been committed since.
const resultMark = "~"

// last returns the last committed token, resultMark, or the empty string for
// an empty expression.
func (k *Keypad) last() string {
	if len(k.expr) == 0 {
		if k.shown {
			return resultMark
		}
		return ""
	}
	return k.expr[len(k.expr)-1]
}

// commit appends tokens to the expression, discarding a showing result.
func (k *Keypad) commit(toks ...string) {
	if k.shown {
		k.shown = false
		k.expr = k.expr[:0]
	}
	k.expr = append(k.expr, toks...)
}

// Digit appends a digit to the entry.
func (k *Keypad) Digit(d rune) error {
	if d < '0' || d > '9' {
		return &KeyError{Key: string(d), Err: ErrUnknownKey}
	}
	k.entry += string(d)
	return nil
}

// Decimal appends a decimal point to the entry if it does not have one.
func (k *Keypad) Decimal() {
	if !strings.Contains(k.entry, ".") {
		k.entry += "."
	}
}

// Operator applies a binary operator, one of + - * / ^. With no entry, it
// replaces a previous operator or continues from the showing result.
func (k *Keypad) Operator(op string) error {
	switch op {
	case "+", "-", "*", "/", "^":
		return k.build(op)
	default:
		return &KeyError{Key: op, Err: ErrUnknownKey}
	}
}

// build commits the entry followed by op.
func (k *Keypad) build(op string) error {
	last := k.last()
	switch {
	case k.entry == "" && last == "":
		return &KeyError{Key: op, Err: ErrNoValue}
	case k.entry == "" && last == resultMark:
		k.commit(formatValue(k.result), op)
	case last == ")":
		if k.entry != "" {
			return &KeyError{Key: op, Err: ErrValueAfterClose}
		}
		k.commit(op)
	case k.entry == "" && last != "(":
		// Change the previous operator.
		k.expr[len(k.expr)-1] = op
	case !validValue(k.entry):
		return &KeyError{Key: op, Err: ErrInvalidEntry}
	default:
		k.commit(k.entry, op)
		k.entry = ""
	}
	return nil
}

// OpenParen commits an open paren.
func (k *Keypad) OpenParen() error {
	if k.entry != "" {
		return &KeyError{Key: "(", Err: ErrParenAfterValue}
	}
	if k.last() == ")" {
		return &KeyError{Key: "(", Err: ErrParenAfterClose}
	}
	k.commit("(")
	k.depth++
	return nil
}

// CloseParen commits the entry, if any, and a close paren.
func (k *Keypad) CloseParen() error {
	if k.entry != "" {
		if k.depth == 0 {
			return &KeyError{Key: ")", Err: ErrUnmatchedClose}
		}
		if err := k.build(")"); err != nil {
			return err
		}
		k.depth--
		return nil
	}
	switch {
	case len(k.expr) == 0 && !k.shown:
		return &KeyError{Key: ")", Err: ErrCloseAtStart}
	case k.last() != ")":
		return &KeyError{Key: ")", Err: ErrCloseAfterOperator}
	case k.depth == 0:
		return &KeyError{Key: ")", Err: ErrUnmatchedClose}
	}
	k.commit(")")
	k.depth--
	return nil
}

// Negate toggles the sign of the entry.
func (k *Keypad) Negate() error {
	switch {
	case k.entry == "":
		return &KeyError{Key: "neg", Err: ErrNoValue}
	case k.entry == "-":
		k.entry = ""
	case strings.HasPrefix(k.entry, "-"):
		k.entry = k.entry[1:]
	default:
		k.entry = "-" + k.entry
	}
	return nil
}

// Sqrt replaces the entry with its square root.
func (k *Keypad) Sqrt() error {
	switch {
	case k.entry == "":
		return &KeyError{Key: "sqrt", Err: ErrNoValue}
	case strings.HasPrefix(k.entry, "-"):
		return &KeyError{Key: "sqrt", Err: ErrNegativeRoot}
	case !validValue(k.entry):
		return &KeyError{Key: "sqrt", Err: ErrInvalidEntry}
	}
	v, _ := strconv.ParseFloat(k.entry, 64)
	k.entry = formatValue(math.Sqrt(v))
	return nil
}

// Delete removes the last character of the entry.
func (k *Keypad) Delete() error {
	if k.entry == "" {
		return &KeyError{Key: "del", Err: ErrNoValue}
	}
	_, n := utf8.DecodeLastRuneInString(k.entry)
	k.entry = k.entry[:len(k.entry)-n]
	return nil
}

// ClearEntry discards the entry.
func (k *Keypad) ClearEntry() {
	k.entry = ""
}

// ClearAll discards the entry, the expression, and any showing result.
func (k *Keypad) ClearAll() {
	k.entry = ""
	k.expr = k.expr[:0]
	k.depth = 0
	k.shown = false
	k.result = 0
}

// Equals evaluates the expression with the entry appended. On success the
// result is showing and the expression and entry are cleared. The error is
// a *KeyError if the expression is incomplete, or an error from the
// evaluator's options, e.g. infix.MaxTokens.
func (k *Keypad) Equals() (float64, infix.Diagnostics, error) {
	last := k.last()
	if last != ")" && !validValue(k.entry) {
		return 0, nil, &KeyError{Key: "=", Err: ErrInvalidEntry}
	}
	if last == ")" && k.entry != "" {
		return 0, nil, &KeyError{Key: "=", Err: ErrValueAfterClose}
	}
	src := k.pending()
	r, ds, err := infix.Evaluate(src, k.opts...)
	if err != nil {
		return 0, nil, err
	}
	k.entry = ""
	k.expr = k.expr[:0]
	k.depth = 0
	k.result, k.shown = r, true
	return r, ds, nil
}

// pending is the expression Equals would evaluate.
func (k *Keypad) pending() string {
	var toks []string
	if !k.shown {
		toks = append(toks, k.expr...)
	}
	if k.entry != "" {
		toks = append(toks, k.entry)
	}
	return strings.Join(toks, " ")
}

// Entry returns the number being typed.
func (k *Keypad) Entry() string {
	return k.entry
}

// Expression returns the committed expression, without the entry.
func (k *Keypad) Expression() string {
	if k.shown {
		return ""
	}
	return strings.Join(k.expr, " ")
}

// Result returns the last result and whether it is showing.
func (k *Keypad) Result() (float64, bool) {
	return k.result, k.shown
}

// Display renders the committed expression the way a calculator shows it
// above the entry: tokens followed by a space, or the showing result followed
// by a tilde.
func (k *Keypad) Display() string {
	if k.shown {
		return formatValue(k.result) + "  ~  "
	}
	if len(k.expr) == 0 {
		return ""
	}
	return strings.Join(k.expr, " ") + " "
}

// validValue reports whether s is a number the evaluator accepts.
func validValue(s string) bool {
	if s == "" {
		return false
	}
	toks, err := infix.Tokens(s)
	if err != nil || len(toks) != 1 {
		return false
	}
	return !strings.Contains(infix.Operators, s)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
