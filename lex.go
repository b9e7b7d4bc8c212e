package infix

import (
	"strconv"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	val  float64
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	// tokenEnd marks the bottom of the operator stack and the end of the
	// input. It is never pushed by an incoming token.
	tokenEnd tokenKind = iota
	// tokenValue is a number.
	tokenValue
	tokenOpen
	tokenClose
	tokenExp
	tokenMul
	tokenDiv
	tokenAdd
	tokenSub

	numTokenKinds
)

func (k tokenKind) String() string {
	switch k {
	case tokenEnd:
		return "End"
	case tokenValue:
		return "Value"
	case tokenOpen:
		return "OpenParen"
	case tokenClose:
		return "CloseParen"
	case tokenExp:
		return "Exponent"
	case tokenMul:
		return "Multiply"
	case tokenDiv:
		return "Divide"
	case tokenAdd:
		return "Add"
	case tokenSub:
		return "Subtract"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the operator and bracket tokens, each of which must be
// separated from its neighbors by whitespace.
const Operators = "^/*()+-"

// field is a whitespace-delimited substring of the input and the rune column
// at which it starts.
type field struct {
	text string
	pos  int
}

// fields splits src on runs of whitespace, recording 1-based rune columns.
func fields(src string) []field {
	var r []field
	start, col := -1, 0
	var startcol int
	for i, c := range src {
		col++
		if unicode.IsSpace(c) {
			if start >= 0 {
				r = append(r, field{text: src[start:i], pos: startcol})
				start = -1
			}
			continue
		}
		if start < 0 {
			start, startcol = i, col
		}
	}
	if start >= 0 {
		r = append(r, field{text: src[start:], pos: startcol})
	}
	return r
}

// scan converts a single field into a token. If the field is neither an
// operator nor a number, the result has kind tokenEnd and a non-nil error.
func scan(f field) (lexToken, error) {
	tok := lexToken{text: f.text, pos: f.pos}
	switch f.text {
	case "^":
		tok.kind = tokenExp
	case "/":
		tok.kind = tokenDiv
	case "*":
		tok.kind = tokenMul
	case "(":
		tok.kind = tokenOpen
	case ")":
		tok.kind = tokenClose
	case "+":
		tok.kind = tokenAdd
	case "-":
		tok.kind = tokenSub
	default:
		v, err := strconv.ParseFloat(f.text, 64)
		if err != nil {
			// Out of range literals saturate, like any other float parser.
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				tok.kind = tokenEnd
				return tok, &TokenError{Col: f.pos, Text: f.text}
			}
		}
		tok.kind = tokenValue
		tok.val = v
	}
	return tok, nil
}

// Tokens splits an expression into its tokens. Every token is returned, even
// malformed ones. The error is the first malformed token, if any.
func Tokens(src string) ([]string, error) {
	fs := fields(src)
	r := make([]string, 0, len(fs))
	var first error
	for _, f := range fs {
		if _, err := scan(f); err != nil && first == nil {
			first = err
		}
		r = append(r, f.text)
	}
	return r, first
}

// TokenError indicates a token that is neither an operator nor a number. It
// implements InputError.
type TokenError struct {
	// Col is the rune column at which the token starts.
	Col int
	// Text is the malformed token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// LengthError indicates an expression with more tokens than an Evaluator
// allows. It implements InputError.
type LengthError struct {
	// Col is the column of the first token past the limit.
	Col int
	// Len is the number of tokens in the expression.
	Len int
	// Max is the limit.
	Max int
}

func (err *LengthError) Error() string {
	return errpos(err.Col, "expression has "+strconv.Itoa(err.Len)+" tokens, more than the limit of "+strconv.Itoa(err.Max))
}

func (err *LengthError) Pos() int {
	return err.Col
}
