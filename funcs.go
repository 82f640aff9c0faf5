package calcpad

import "math"

// monadic is a function of one real variable.
type monadic func(x float64) float64

// funcs maps each Fn to its implementation. Out-of-domain arguments produce
// NaN or infinities rather than errors.
var funcs = [...]monadic{
	FnSin: math.Sin,
	FnCos: math.Cos,
	FnTan: func(x float64) float64 {
		return math.Sin(x) / math.Cos(x)
	},
	FnCot: func(x float64) float64 {
		return math.Cos(x) / math.Sin(x)
	},
	FnSqrt: math.Sqrt,
}

// dyadic is a binary operator on reals.
type dyadic func(a, b float64) float64

var ops = [...]dyadic{
	OpAdd: func(a, b float64) float64 { return a + b },
	OpSub: func(a, b float64) float64 { return a - b },
	OpMul: func(a, b float64) float64 { return a * b },
	OpDiv: func(a, b float64) float64 { return a / b },
	OpPow: math.Pow,
}

// Apply evaluates the function fn at x. The result is NaN if fn is not a
// valid Fn.
func (fn Fn) Apply(x float64) float64 {
	if fn < 0 || int(fn) >= len(funcs) || funcs[fn] == nil {
		return math.NaN()
	}
	return funcs[fn](x)
}

// Apply evaluates a op b. The result is NaN if op is a parenthesis or invalid.
func (op Op) Apply(a, b float64) float64 {
	if op < 0 || int(op) >= len(ops) || ops[op] == nil {
		return math.NaN()
	}
	return ops[op](a, b)
}
