package infix

import (
	"errors"
	"strconv"
	"strings"
)

// Kind identifies the anomaly that a Diagnostic reports.
type Kind int8

const (
	// MalformedToken is a token that is neither an operator nor a number. The
	// evaluator reduces everything before it as if the expression ended there,
	// then continues with the following tokens.
	MalformedToken Kind = iota + 1
	// MissingOpenParen is a close paren with no open paren before it.
	MissingOpenParen
	// UnbalancedParen is an open paren that is never closed.
	UnbalancedParen
	// MissingOperand is an operator with fewer than two operands. The missing
	// operand is taken to be 0.
	MissingOperand
	// DivisionByZero is a division by exactly 0. The result of the division is
	// its left operand.
	DivisionByZero
	// MissingOperators means more than one value remained after every operator
	// was applied. The result is the last of them.
	MissingOperators
	// EmptyResult means no value remained after every operator was applied.
	// The result is 0.
	EmptyResult
)

func (k Kind) String() string {
	switch k {
	case MalformedToken:
		return "MalformedToken"
	case MissingOpenParen:
		return "MissingOpenParen"
	case UnbalancedParen:
		return "UnbalancedParen"
	case MissingOperand:
		return "MissingOperand"
	case DivisionByZero:
		return "DivisionByZero"
	case MissingOperators:
		return "MissingOperators"
	case EmptyResult:
		return "EmptyResult"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Warning reports whether diagnostics of kind k leave the result meaningful.
func (k Kind) Warning() bool {
	return k == MissingOperators
}

func (k Kind) message() string {
	switch k {
	case MalformedToken:
		return "invalid token"
	case MissingOpenParen:
		return "missing open parenthesis"
	case UnbalancedParen:
		return "unbalanced parentheses"
	case MissingOperand:
		return "missing operand"
	case DivisionByZero:
		return "division by zero"
	case MissingOperators:
		return "missing operators"
	case EmptyResult:
		return "missing operand: no result"
	default:
		return "unknown problem"
	}
}

// Diagnostic is a recoverable problem found while evaluating an expression.
// It implements InputError.
type Diagnostic struct {
	// Kind is the type of problem.
	Kind Kind
	// Col is the rune column of the token being processed when the problem
	// was found. Problems found while draining the stack at the end of the
	// input are positioned one past the last rune.
	Col int
	// Text is the token being processed, or the empty string at the end of
	// the input.
	Text string
}

func (d *Diagnostic) Error() string {
	msg := d.Kind.message()
	if d.Kind == MalformedToken {
		msg += " " + strconv.Quote(d.Text)
	}
	return errpos(d.Col, msg)
}

func (d *Diagnostic) Pos() int {
	return d.Col
}

// Diagnostics is the list of problems found during one evaluation, in the
// order they were found.
type Diagnostics []*Diagnostic

// Has reports whether any diagnostic is of kind k.
func (ds Diagnostics) Has(k Kind) bool {
	for _, d := range ds {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// Kinds lists the kind of each diagnostic.
func (ds Diagnostics) Kinds() []Kind {
	if len(ds) == 0 {
		return nil
	}
	r := make([]Kind, len(ds))
	for i, d := range ds {
		r[i] = d.Kind
	}
	return r
}

// Warnings reports whether every diagnostic is only a warning.
func (ds Diagnostics) Warnings() bool {
	for _, d := range ds {
		if !d.Kind.Warning() {
			return false
		}
	}
	return true
}

// Err returns nil if there are no diagnostics and otherwise an error which
// unwraps to each of them.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errors.Join(errs...)
}

func (ds Diagnostics) String() string {
	var b strings.Builder
	for i, d := range ds {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.Error())
	}
	return b.String()
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*Diagnostic)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*LengthError)(nil)
)
