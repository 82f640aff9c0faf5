package calcpad

import (
	"io"
	"strings"
)

// operands is the value stack used to evaluate postfix expressions.
type operands []float64

func (s *operands) push(v float64) {
	*s = append(*s, v)
}

// pop removes the top of the stack and returns it. The caller checks the
// length first.
func (s *operands) pop() float64 {
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v
}

// EvalPostfix evaluates a token sequence in postfix order, as produced by
// Postfix. Division by zero and out-of-domain function arguments follow
// floating-point semantics and are not errors. The error, if any, is a
// *StackError, an *EmptyExpressionError, a *BracketError for a parenthesis, or
// a *SymbolError for an invalid token.
func EvalPostfix(postfix []Token) (float64, error) {
	if len(postfix) == 0 {
		return 0, &EmptyExpressionError{}
	}
	s := make(operands, 0, len(postfix))
	for i, t := range postfix {
		if !t.valid() {
			return 0, &SymbolError{Col: i + 1, Symbol: t.String()}
		}
		switch t.kind {
		case KindOperand:
			s.push(t.val)
		case KindFunction:
			if len(s) < 1 {
				return 0, &StackError{Col: i + 1, Token: t, Have: len(s)}
			}
			s.push(t.fn.Apply(s.pop()))
		case KindOperation:
			if t.is(OpParenLeft) || t.is(OpParenRight) {
				return 0, &BracketError{Col: i + 1, Open: t.is(OpParenLeft)}
			}
			if len(s) < 2 {
				return 0, &StackError{Col: i + 1, Token: t, Have: len(s)}
			}
			b := s.pop()
			a := s.pop()
			s.push(t.op.Apply(a, b))
		}
	}
	if len(s) != 1 {
		return 0, &StackError{Col: len(postfix), Have: len(s)}
	}
	return s[0], nil
}

// Eval converts an infix token sequence to postfix order and evaluates it.
func Eval(tokens []Token) (float64, error) {
	postfix, err := Postfix(tokens)
	if err != nil {
		return 0, err
	}
	return EvalPostfix(postfix)
}

// EvalReader is a shortcut to scan expression text, feed it to a new Editor,
// and evaluate the result. The first rejected symbol is returned as the error.
func EvalReader(src io.RuneScanner, opts ...EditorOption) (float64, error) {
	syms, err := Scan(src)
	if err != nil {
		return 0, err
	}
	e := NewEditor(opts...)
	for _, sym := range syms {
		if !e.Accept(sym) {
			return 0, e.Err()
		}
	}
	return e.Evaluate()
}

// EvalString is a shortcut to scan and evaluate a string expression.
func EvalString(src string, opts ...EditorOption) (float64, error) {
	return EvalReader(strings.NewReader(src), opts...)
}
