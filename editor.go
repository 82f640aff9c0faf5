package calcpad

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Editor builds an expression one input symbol at a time and evaluates it.
// Input that would make the expression ungrammatical is rejected without
// changing the editor. An Editor is not safe for concurrent use.
type Editor struct {
	// tokens is the finalized expression.
	tokens []Token
	// units holds the number of tokens each accepted input appended, so that
	// deletion removes the same group. The sum of units is len(tokens).
	units []int
	// buf is the text of the number being typed.
	buf string
	// result is the text of the last evaluation or rejection.
	result string
	err    error
	// carry is the last result when chain is set and an operator may use it.
	carry   float64
	carried bool
	chain   bool
	log     *slog.Logger
}

// NewEditor creates an empty editor.
func NewEditor(opts ...EditorOption) *Editor {
	e := Editor{log: discard}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.editorOption(&e)
	}
	return &e
}

// Accept feeds one input symbol to the editor: a digit "0" through "9", a
// decimal point, an operator or parenthesis, a function name, or a number.
// The result is true if the editor accepted the symbol. Otherwise the editor
// is unchanged except that Err and Result describe the rejection.
func (e *Editor) Accept(sym string) bool {
	err := e.accept(sym)
	e.err = err
	if err != nil {
		e.result = err.Error()
		e.log.Debug("input rejected", slog.String("symbol", sym), slog.Any("err", err))
		return false
	}
	e.result = ""
	e.carried = false
	return true
}

func (e *Editor) accept(sym string) error {
	if e.numberAllowed() {
		switch {
		case sym == ".", isDigit(sym):
			return e.enter(sym)
		case sym == "-" && e.buf == "" && !e.lastIs(KindOperand) && !e.carried:
			return e.enter(sym)
		}
	}
	t, ok := ParseToken(sym)
	if !ok {
		return &SymbolError{Col: len(e.tokens) + 1, Symbol: sym}
	}
	return e.push(t)
}

// numberAllowed reports whether numeric entry may continue or begin. A number
// never directly follows a close parenthesis.
func (e *Editor) numberAllowed() bool {
	last, ok := e.last()
	return !ok || !last.is(OpParenRight)
}

// enter adds a digit, a decimal point, or a leading minus to the number being
// typed. If no number is being typed and the expression ends in an operand,
// that operand is reopened for editing.
func (e *Editor) enter(sym string) error {
	text, reopen := e.buf, false
	if text == "" {
		if last, ok := e.last(); ok && last.kind == KindOperand {
			text, reopen = last.String(), true
		}
	}
	switch {
	case sym == "-":
		text = "-"
	case sym != ".":
		text += sym
	case text == "":
		text = "0."
	case text == "-":
		text = "-0."
	case strings.Contains(text, "."):
		col := len(e.tokens) + 1
		if reopen {
			col--
		}
		return &EntryError{Col: col, Text: text, Symbol: sym}
	default:
		text += "."
	}
	if reopen {
		e.pop()
	}
	e.buf = text
	return nil
}

// pending returns the tokens that the number being typed finalizes to.
// Negative numbers are wrapped in parentheses.
func (e *Editor) pending() ([]Token, error) {
	if e.buf == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(e.buf, 64)
	if err != nil || math.IsInf(v, 0) {
		return nil, &EntryError{Col: len(e.tokens) + 1, Text: e.buf}
	}
	return operandUnit(v), nil
}

func operandUnit(v float64) []Token {
	if math.Signbit(v) {
		return []Token{Operation(OpParenLeft), Operand(v), Operation(OpParenRight)}
	}
	return []Token{Operand(v)}
}

// push finalizes the number being typed, if any, and then appends t if the
// grammar allows it. Either both happen or neither does.
func (e *Editor) push(t Token) error {
	unit, err := e.pending()
	if err != nil {
		return err
	}
	if unit == nil && e.carried && len(e.tokens) == 0 && t.kind == KindOperation && t.Weight() > 0 {
		unit = operandUnit(e.carry)
	}
	last, _ := e.last()
	if len(unit) > 0 {
		last = unit[len(unit)-1]
	}
	col := len(e.tokens) + len(unit) + 1
	if t.is(OpParenRight) && e.depth(unit) < 1 {
		return &BracketError{Col: col, Open: false}
	}
	if !follows(last, t) {
		return &AdjacencyError{Col: col, Token: t, After: last}
	}
	if unit != nil {
		e.append(unit...)
		e.buf = ""
	}
	switch t.kind {
	case KindFunction:
		e.append(t, Operation(OpParenLeft))
	case KindOperand:
		e.append(operandUnit(t.val)...)
	default:
		e.append(t)
	}
	return nil
}

// follows reports whether t may directly follow last. last is the zero Token
// when the expression is empty.
func follows(last, t Token) bool {
	value := t.kind != KindOperation || t.is(OpParenLeft)
	switch {
	case last.kind == KindNone:
		return value
	case last.kind == KindOperand, last.is(OpParenRight):
		return !value
	case last.kind == KindFunction:
		// Unreachable: functions are always followed by their parenthesis.
		return true
	default:
		return value
	}
}

// depth returns the number of unclosed parentheses in the expression followed
// by extra.
func (e *Editor) depth(extra []Token) int {
	n := 0
	for _, ts := range [2][]Token{e.tokens, extra} {
		for _, t := range ts {
			switch {
			case t.is(OpParenLeft):
				n++
			case t.is(OpParenRight):
				n--
			}
		}
	}
	return n
}

func (e *Editor) append(ts ...Token) {
	e.tokens = append(e.tokens, ts...)
	e.units = append(e.units, len(ts))
}

// pop removes the last accepted unit of tokens.
func (e *Editor) pop() bool {
	if len(e.units) == 0 {
		return false
	}
	n := e.units[len(e.units)-1]
	e.units = e.units[:len(e.units)-1]
	e.tokens = e.tokens[:len(e.tokens)-n]
	return true
}

func (e *Editor) last() (Token, bool) {
	if len(e.tokens) == 0 {
		return Token{}, false
	}
	return e.tokens[len(e.tokens)-1], true
}

func (e *Editor) lastIs(k Kind) bool {
	t, ok := e.last()
	return ok && t.kind == k
}

func isDigit(s string) bool {
	return len(s) == 1 && '0' <= s[0] && s[0] <= '9'
}

// DeleteLast removes the last character of the number being typed, or else
// the last accepted token. A function and the parenthesis opened with it are
// removed together, as is a negative number with its parentheses. The result
// is false if there was nothing to delete.
func (e *Editor) DeleteLast() bool {
	e.carried = false
	if e.buf != "" {
		_, n := utf8.DecodeLastRuneInString(e.buf)
		e.buf = e.buf[:len(e.buf)-n]
		return true
	}
	return e.pop()
}

// Clear empties the expression. The last result remains.
func (e *Editor) Clear() {
	e.tokens = e.tokens[:0]
	e.units = e.units[:0]
	e.buf = ""
	e.carried = false
}

// Evaluate finalizes the number being typed and evaluates the expression. On
// success, Result is the canonical text of the value and the expression is
// emptied. On failure, Result is the error text and the expression remains so
// that it can be corrected.
func (e *Editor) Evaluate() (float64, error) {
	unit, err := e.pending()
	if err == nil && unit != nil {
		e.append(unit...)
		e.buf = ""
	}
	var v float64
	if err == nil {
		v, err = Eval(e.tokens)
	}
	e.err = err
	if err != nil {
		e.result = err.Error()
		e.log.Debug("evaluation failed", slog.String("expr", e.Display()), slog.Any("err", err))
		return 0, err
	}
	e.result = FormatFloat(v)
	e.log.Debug("evaluated", slog.String("expr", e.Display()), slog.String("result", e.result))
	e.Clear()
	e.carry = v
	e.carried = e.chain && !math.IsInf(v, 0) && !math.IsNaN(v)
	return v, nil
}

// Postfix returns the expression, including the number being typed, in postfix
// order without evaluating it or changing the editor.
func (e *Editor) Postfix() ([]Token, error) {
	unit, err := e.pending()
	if err != nil {
		return nil, err
	}
	tokens := append(e.Tokens(), unit...)
	return Postfix(tokens)
}

// Display returns the text of the expression, including the number being
// typed.
func (e *Editor) Display() string {
	var b strings.Builder
	for _, t := range e.tokens {
		b.WriteString(t.String())
	}
	b.WriteString(e.buf)
	return b.String()
}

// String returns the same as Display.
func (e *Editor) String() string {
	return e.Display()
}

// Result returns the text of the last evaluation, or the description of the
// last rejected input. It is empty after accepted input.
func (e *Editor) Result() string {
	return e.result
}

// Err returns the error from the last call to Accept or Evaluate, if any.
func (e *Editor) Err() error {
	return e.err
}

// Tokens returns a copy of the finalized tokens. The number being typed is not
// included.
func (e *Editor) Tokens() []Token {
	return append([]Token(nil), e.tokens...)
}

// Pending returns the text of the number being typed.
func (e *Editor) Pending() string {
	return e.buf
}
