package calcpad

import "strconv"

// SymbolError is an error indicating an input symbol that is neither numeric
// entry nor any token. It implements InputError.
type SymbolError struct {
	// Col is the position the symbol would have taken.
	Col int
	// Symbol is the symbol that was not understood.
	Symbol string
}

func (err *SymbolError) Error() string {
	return errpos(err.Col, "unknown symbol "+strconv.Quote(err.Symbol))
}

func (err *SymbolError) Pos() int {
	return err.Col
}

// EntryError is an error indicating input that would make the number being
// typed malformed, e.g. a second decimal point, or a number being typed that
// cannot be finalized, e.g. a lone minus sign. It implements InputError.
type EntryError struct {
	// Col is the position of the number being typed.
	Col int
	// Text is the number being typed.
	Text string
	// Symbol is the rejected input.
	Symbol string
}

func (err *EntryError) Error() string {
	if err.Symbol == "" {
		return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "cannot add "+strconv.Quote(err.Symbol)+" to number "+strconv.Quote(err.Text))
}

func (err *EntryError) Pos() int {
	return err.Col
}

// AdjacencyError is an error indicating a token that may not follow the
// previous token. It implements InputError.
type AdjacencyError struct {
	// Col is the position the token would have taken.
	Col int
	// Token is the rejected token.
	Token Token
	// After is the token it would have followed. It is the zero Token if the
	// expression was empty.
	After Token
}

func (err *AdjacencyError) Error() string {
	if err.After.Kind() == KindNone {
		return errpos(err.Col, "token "+err.Token.String()+" cannot start an expression")
	}
	return errpos(err.Col, "token "+err.Token.String()+" cannot follow token "+err.After.String())
}

func (err *AdjacencyError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched parentheses. It implements
// InputError.
type BracketError struct {
	// Col is the position of the parenthesis.
	Col int
	// Open is true for an open parenthesis with no match and false for a
	// close parenthesis with no match.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "missing parenthesis")
	}
	return errpos(err.Col, "unmatched parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// StackError is an error indicating that an operation or function in postfix
// order had too few operands, or that operands were left over. It implements
// InputError.
type StackError struct {
	// Col is the position of the token in postfix order.
	Col int
	// Token is the token that could not be applied, or the zero Token when
	// too many operands remained.
	Token Token
	// Have is the number of operands that were available.
	Have int
}

func (err *StackError) Error() string {
	if err.Token.Kind() == KindNone {
		return errpos(err.Col, "calculation error: "+strconv.Itoa(err.Have)+" values left")
	}
	return errpos(err.Col, "calculation error: not enough operands for "+err.Token.String())
}

func (err *StackError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating evaluation of an empty
// expression. It implements InputError.
type EmptyExpressionError struct{}

func (err *EmptyExpressionError) Error() string {
	return errpos(1, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return 1
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based position of the token or symbol that caused
	// the error. For evaluation errors the position is within postfix order.
	Pos() int
}

var (
	_ InputError = (*SymbolError)(nil)
	_ InputError = (*EntryError)(nil)
	_ InputError = (*AdjacencyError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*StackError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*ScanError)(nil)
)
