// Package calcpad implements the expression engine of a keypad calculator.
//
// An Editor receives one input symbol at a time, the way keys are pressed: the
// digits of a number, then an operator, then another number, and so on. Input
// that cannot continue the expression grammatically is rejected and leaves the
// editor unchanged, so the expression is always a valid prefix of a complete
// one. Pressing "sin" inserts "sin(" as a unit, and a negative number is shown
// as "(-5)" so it cannot be confused with subtraction.
//
// Evaluation converts the expression to postfix order with the shunting-yard
// algorithm and evaluates it on a stack of float64 values. All operators are
// left-associative: "8-3-2" is 3 and "2^3^2" is 64.
package calcpad
