package calcpad

import (
	"math"
	"strconv"
	"strings"
)

// Token is a lexical unit of an expression: an operand, an operation, or a
// function. The zero Token is invalid.
type Token struct {
	kind Kind
	op   Op
	fn   Fn
	val  float64
}

// Kind is the kind of a token.
type Kind int8

const (
	KindNone Kind = iota
	// KindOperand is a literal number.
	KindOperand
	// KindOperation is a binary operator or a parenthesis.
	KindOperation
	// KindFunction is a function of one argument.
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindOperand:
		return "Operand"
	case KindOperation:
		return "Operation"
	case KindFunction:
		return "Function"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Op is an operation.
type Op int8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpParenLeft
	OpParenRight
)

// Fn is a function.
type Fn int8

const (
	FnNone Fn = iota
	FnSin
	FnCos
	FnTan
	FnCot
	FnSqrt
)

// Operators contains the canonical operator and parenthesis symbols.
const Operators = "+-*/^()"

// opsyms and fnsyms are the canonical symbols, indexed by Op and Fn.
var (
	opsyms = [...]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "^", OpParenLeft: "(", OpParenRight: ")"}
	fnsyms = [...]string{FnSin: "sin", FnCos: "cos", FnTan: "tg", FnCot: "ctg", FnSqrt: "√"}
)

// Operand creates an operand token.
func Operand(v float64) Token {
	return Token{kind: KindOperand, val: v}
}

// Operation creates an operation token.
func Operation(op Op) Token {
	return Token{kind: KindOperation, op: op}
}

// Function creates a function token.
func Function(fn Fn) Token {
	return Token{kind: KindFunction, fn: fn}
}

// Kind returns the kind of the token.
func (t Token) Kind() Kind {
	return t.kind
}

// Op returns the token's operation, or OpNone if it is not an operation.
func (t Token) Op() Op {
	return t.op
}

// Fn returns the token's function, or FnNone if it is not a function.
func (t Token) Fn() Fn {
	return t.fn
}

// Value returns the value of an operand token, or 0 for other kinds.
func (t Token) Value() float64 {
	return t.val
}

// is reports whether t is the operation op.
func (t Token) is(op Op) bool {
	return t.kind == KindOperation && t.op == op
}

// valid reports whether t is a token that can appear in an expression.
func (t Token) valid() bool {
	switch t.kind {
	case KindOperand:
		return true
	case KindOperation:
		return OpAdd <= t.op && t.op <= OpParenRight
	case KindFunction:
		return FnSin <= t.fn && t.fn <= FnSqrt
	default:
		return false
	}
}

// Weight returns the precedence of the token. Higher weights bind tighter.
// Parentheses and operands have weight 0.
func (t Token) Weight() int {
	switch t.kind {
	case KindOperation:
		switch t.op {
		case OpAdd, OpSub:
			return 1
		case OpMul, OpDiv:
			return 2
		case OpPow:
			return 3
		}
	case KindFunction:
		return 4
	}
	return 0
}

func (op Op) String() string {
	if op <= OpNone || int(op) >= len(opsyms) {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
	return opsyms[op]
}

func (fn Fn) String() string {
	if fn <= FnNone || int(fn) >= len(fnsyms) {
		return "Fn(" + strconv.Itoa(int(fn)) + ")"
	}
	return fnsyms[fn]
}

// String returns the canonical text of the token.
func (t Token) String() string {
	switch t.kind {
	case KindOperand:
		return FormatFloat(t.val)
	case KindOperation:
		return t.op.String()
	case KindFunction:
		return t.fn.String()
	default:
		return "<invalid token>"
	}
}

// FormatFloat renders v as the shortest decimal text that parses back to v,
// never using an exponent. Infinities render as inf and -inf.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseToken interprets a symbol as a token. Operator symbols are tried
// first, then function names, then finite numbers.
func ParseToken(s string) (Token, bool) {
	if op := parseOp(s); op != OpNone {
		return Operation(op), true
	}
	if fn := parseFn(s); fn != FnNone {
		return Function(fn), true
	}
	if s == "" || !isNumStart(s[0]) || strings.ContainsAny(s, "xX_") {
		// ParseFloat accepts inf, nan, hex literals, and digit separators,
		// none of which are operands here.
		return Token{}, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return Token{}, false
	}
	return Operand(v), true
}

func isNumStart(c byte) bool {
	return '0' <= c && c <= '9' || c == '.' || c == '-' || c == '+'
}

func parseOp(s string) Op {
	switch s {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "*", "×":
		return OpMul
	case "/", "÷":
		return OpDiv
	case "^":
		return OpPow
	case "(":
		return OpParenLeft
	case ")":
		return OpParenRight
	default:
		return OpNone
	}
}

func parseFn(s string) Fn {
	switch s {
	case "sin":
		return FnSin
	case "cos":
		return FnCos
	case "tg", "tan":
		return FnTan
	case "ctg", "cot":
		return FnCot
	case "√", "sqrt":
		return FnSqrt
	default:
		return FnNone
	}
}
