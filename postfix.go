package calcpad

// Expr = Operand | Expr Op Expr | '(' Expr ')' | Fn '(' Expr ')'
// Op = '+' | '-' | '*' | '/' | '^'
// Fn = 'sin' | 'cos' | 'tg' | 'ctg' | '√'
//
// Every operator is left-associative, including '^': 2^3^2 is (2^3)^2.

// Postfix converts a token sequence in infix order to postfix order using the
// shunting-yard algorithm. Parentheses do not appear in the result. The
// returned error, if any, is a *BracketError, or a *SymbolError for a token
// that is not a valid operand, operation, or function, such as the zero Token.
func Postfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	// stack holds operations and functions along with the positions of open
	// parentheses for error reporting.
	var stack []Token
	var opens []int
	for i, t := range tokens {
		if !t.valid() {
			return nil, &SymbolError{Col: i + 1, Symbol: t.String()}
		}
		switch t.kind {
		case KindOperand:
			out = append(out, t)
		case KindFunction:
			stack = append(stack, t)
		case KindOperation:
			switch t.op {
			case OpParenLeft:
				stack = append(stack, t)
				opens = append(opens, i+1)
			case OpParenRight:
				for {
					if len(stack) == 0 {
						return nil, &BracketError{Col: i + 1, Open: false}
					}
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					if top.is(OpParenLeft) {
						opens = opens[:len(opens)-1]
						break
					}
					out = append(out, top)
				}
			default:
				for len(stack) > 0 && yields(stack[len(stack)-1], t) {
					out = append(out, stack[len(stack)-1])
					stack = stack[:len(stack)-1]
				}
				stack = append(stack, t)
			}
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.is(OpParenLeft) {
			return nil, &BracketError{Col: opens[len(opens)-1], Open: true}
		}
		out = append(out, top)
	}
	return out, nil
}

// yields reports whether the stacked token top must be output before the
// incoming operator op is pushed. Open parentheses never yield.
func yields(top, op Token) bool {
	if top.is(OpParenLeft) {
		return false
	}
	return top.Weight() >= op.Weight()
}
