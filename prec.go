package infix

// precedence holds the weights used to decide whether an operator on the stack
// is reduced before an incoming one is pushed. An incoming operator k reduces
// the top of the stack t while prec[k].input <= prec[t].stack.
//
// Left-associative operators have a stack weight one higher than their input
// weight, so equal operators reduce left to right. Exponentiation has a stack
// weight lower than its input weight, so 2 ^ 3 ^ 2 is 2 ^ (3 ^ 2).
type precedence struct {
	input int8
	stack int8
}

var prec = [numTokenKinds]precedence{
	tokenEnd:   {0, -1},
	tokenValue: {0, 0},
	// An open paren is always pushed, and nothing reduces past it until its
	// close paren or the end of the input arrives.
	tokenOpen:  {100, 0},
	tokenClose: {0, 99},
	tokenExp:   {6, 5},
	tokenMul:   {3, 4},
	tokenDiv:   {3, 4},
	tokenAdd:   {1, 2},
	tokenSub:   {1, 2},
}

// reduces reports whether an incoming operator k forces the reduction of the
// operator top already on the stack.
func (k tokenKind) reduces(top tokenKind) bool {
	return prec[k].input <= prec[top].stack
}
