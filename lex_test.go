package infix

import (
	"math"
	"strings"
	"testing"
)

func TestFields(t *testing.T) {
	cases := []struct {
		src  string
		want []field
	}{
		{"", nil},
		{" \t \r\n ", nil},
		{"1", []field{{"1", 1}}},
		{"1 + 2", []field{{"1", 1}, {"+", 3}, {"2", 5}}},
		{"  1   +\t2 ", []field{{"1", 3}, {"+", 7}, {"2", 9}}},
		{"3+4", []field{{"3+4", 1}}},
		{"π × 2", []field{{"π", 1}, {"×", 3}, {"2", 5}}},
	}
	for _, c := range cases {
		got := fields(c.src)
		if len(got) != len(c.want) {
			t.Errorf("splitting %q: want %v, got %v", c.src, c.want, got)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("splitting %q: field %d: want %v, got %v", c.src, i, c.want[i], got[i])
			}
		}
	}
}

func TestScan(t *testing.T) {
	cases := []struct {
		src  string
		tok  lexToken
		errs bool
	}{
		// operators
		{"^", lexToken{text: "^", kind: tokenExp, pos: 1}, false},
		{"/", lexToken{text: "/", kind: tokenDiv, pos: 1}, false},
		{"*", lexToken{text: "*", kind: tokenMul, pos: 1}, false},
		{"(", lexToken{text: "(", kind: tokenOpen, pos: 1}, false},
		{")", lexToken{text: ")", kind: tokenClose, pos: 1}, false},
		{"+", lexToken{text: "+", kind: tokenAdd, pos: 1}, false},
		{"-", lexToken{text: "-", kind: tokenSub, pos: 1}, false},
		// numbers
		{"0", lexToken{text: "0", kind: tokenValue, pos: 1}, false},
		{"42", lexToken{text: "42", kind: tokenValue, val: 42, pos: 1}, false},
		{"-5", lexToken{text: "-5", kind: tokenValue, val: -5, pos: 1}, false},
		{"+5", lexToken{text: "+5", kind: tokenValue, val: 5, pos: 1}, false},
		{".5", lexToken{text: ".5", kind: tokenValue, val: 0.5, pos: 1}, false},
		{"5.", lexToken{text: "5.", kind: tokenValue, val: 5, pos: 1}, false},
		{"1e3", lexToken{text: "1e3", kind: tokenValue, val: 1000, pos: 1}, false},
		{"1e-1", lexToken{text: "1e-1", kind: tokenValue, val: 0.1, pos: 1}, false},
		{"1e400", lexToken{text: "1e400", kind: tokenValue, val: math.Inf(1), pos: 1}, false},
		// malformed
		{"x", lexToken{text: "x", kind: tokenEnd, pos: 1}, true},
		{"3+4", lexToken{text: "3+4", kind: tokenEnd, pos: 1}, true},
		{"1.1.1", lexToken{text: "1.1.1", kind: tokenEnd, pos: 1}, true},
		{"**", lexToken{text: "**", kind: tokenEnd, pos: 1}, true},
		{"1,5", lexToken{text: "1,5", kind: tokenEnd, pos: 1}, true},
	}
	for _, c := range cases {
		got, err := scan(field{c.src, 1})
		if got != c.tok {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tok, got)
		}
		if (err != nil) != c.errs {
			t.Errorf("scanning %q: wrong error %v", c.src, err)
		}
		if err == nil {
			continue
		}
		te, ok := err.(*TokenError)
		if !ok {
			t.Errorf("scanning %q: error %#v is not *TokenError", c.src, err)
			continue
		}
		if te.Text != c.src || te.Pos() != 1 {
			t.Errorf("scanning %q: wrong error fields %+v", c.src, te)
		}
		if !strings.Contains(te.Error(), c.src) {
			t.Errorf("scanning %q: %q doesn't mention the token", c.src, te.Error())
		}
	}
}

func TestTokens(t *testing.T) {
	got, err := Tokens("  ( 1 + 2 )\t* 3 ")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"(", "1", "+", "2", ")", "*", "3"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("want %q, got %q", want, got)
	}
	got, err = Tokens("1 + two * x")
	if te, _ := err.(*TokenError); te == nil || te.Col != 5 || te.Text != "two" {
		t.Errorf("wrong error %#v", err)
	}
	want = []string{"1", "+", "two", "*", "x"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("malformed: want %q, got %q", want, got)
	}
}

func TestTokenKindStrings(t *testing.T) {
	seen := make(map[string]tokenKind)
	for k := tokenEnd; k < numTokenKinds; k++ {
		s := k.String()
		if strings.HasPrefix(s, "tokenKind(") {
			t.Errorf("no name for kind %d", k)
		}
		if o, ok := seen[s]; ok {
			t.Errorf("kinds %d and %d both named %s", o, k, s)
		}
		seen[s] = k
	}
}
