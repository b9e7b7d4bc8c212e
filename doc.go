// Package infix implements a calculator for infix arithmetic expressions.
//
// Expressions are numbers, the operators + - * / ^, and parentheses, each
// separated by whitespace: "3 + 4 * ( 2 - 1 )". "3+4" is a single malformed
// token. Exponentiation is right-associative, so "2 ^ 3 ^ 2" is 512, and the
// other operators are left-associative with the usual precedence. Values are
// float64.
//
// Evaluation never stops at a problem in the expression. Missing operands
// count as 0, division by 0 leaves the dividend, stray parentheses are
// dropped, and each such problem is reported as a Diagnostic alongside the
// result.
//
package infix
