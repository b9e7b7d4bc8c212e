package infix

import "testing"

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		tok, err := scan(field{string(r), 1})
		if err != nil {
			t.Errorf("no token for %c: %v", r, err)
			continue
		}
		if tok.kind == tokenValue || tok.kind == tokenEnd {
			t.Errorf("%c scanned as %v", r, tok.kind)
		}
	}
}

func TestSentinelNeverReduces(t *testing.T) {
	for k := tokenEnd; k < numTokenKinds; k++ {
		if k.reduces(tokenEnd) {
			t.Errorf("%v reduces the sentinel", k)
		}
	}
}

func TestOpenParenAlwaysPushed(t *testing.T) {
	for k := tokenEnd; k < numTokenKinds; k++ {
		if tokenOpen.reduces(k) {
			t.Errorf("open paren reduces %v", k)
		}
	}
	// Only the end of the input passes an open paren on the stack. Close
	// parens stop at it without consulting the table.
	for k := tokenEnd; k < numTokenKinds; k++ {
		if k == tokenEnd || k == tokenValue || k == tokenClose {
			continue
		}
		if k.reduces(tokenOpen) {
			t.Errorf("%v reduces an open paren", k)
		}
	}
}

func TestAssociativity(t *testing.T) {
	left := []tokenKind{tokenMul, tokenDiv, tokenAdd, tokenSub}
	for _, k := range left {
		if !k.reduces(k) {
			t.Errorf("%v is not left-associative", k)
		}
	}
	if tokenExp.reduces(tokenExp) {
		t.Error("exponentiation is not right-associative")
	}
}

func TestPrecedenceOrder(t *testing.T) {
	cases := []struct {
		in, top tokenKind
		want    bool
	}{
		{tokenAdd, tokenMul, true},
		{tokenAdd, tokenDiv, true},
		{tokenSub, tokenExp, true},
		{tokenMul, tokenAdd, false},
		{tokenMul, tokenExp, true},
		{tokenDiv, tokenMul, true},
		{tokenMul, tokenDiv, true},
		{tokenExp, tokenMul, false},
		{tokenExp, tokenAdd, false},
		{tokenAdd, tokenSub, true},
		{tokenSub, tokenAdd, true},
	}
	for _, c := range cases {
		if got := c.in.reduces(c.top); got != c.want {
			t.Errorf("%v reduces %v: want %t, got %t", c.in, c.top, c.want, got)
		}
	}
}
