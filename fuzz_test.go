package calcpad_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/zephyrtronium/calcpad"
)

// alphabet is the set of inputs a keypad can produce, plus one that no
// keypad has.
var alphabet = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".",
	"+", "-", "*", "/", "^", "(", ")",
	"sin", "cos", "tg", "ctg", "√",
	calcpad.KeyDelete, calcpad.KeyClear, calcpad.KeyEvaluate,
	"%",
}

// checkGrammar verifies that toks could have been produced by the grammar
// Expr = Operand | Expr Op Expr | '(' Expr ')' | Fn '(' Expr ')' truncated
// at any point. complete reports whether toks is a whole expression.
func checkGrammar(t *testing.T, toks []calcpad.Token) (complete bool) {
	t.Helper()
	value, depth := true, 0
	for i, tok := range toks {
		switch {
		case tok.Kind() == calcpad.KindOperand:
			if !value {
				t.Fatalf("operand at %d in %v", i, toks)
			}
			value = false
		case tok.Kind() == calcpad.KindFunction:
			if !value || i+1 >= len(toks) || toks[i+1].Op() != calcpad.OpParenLeft {
				t.Fatalf("misplaced function at %d in %v", i, toks)
			}
		case tok.Op() == calcpad.OpParenLeft:
			if !value {
				t.Fatalf("open paren at %d in %v", i, toks)
			}
			depth++
		case tok.Op() == calcpad.OpParenRight:
			depth--
			if value || depth < 0 {
				t.Fatalf("close paren at %d in %v", i, toks)
			}
		default:
			if value {
				t.Fatalf("operator at %d in %v", i, toks)
			}
			value = true
		}
	}
	return !value && depth == 0
}

// press presses each key and checks the editor after each one.
func press(t *testing.T, keys []string) {
	e := calcpad.NewEditor(calcpad.Chain(len(keys)%2 == 0))
	for _, k := range keys {
		before := e.Display()
		ok := e.Press(k)
		if !ok && k != calcpad.KeyClear && k != calcpad.KeyDelete && k != calcpad.KeyEvaluate && e.Display() != before {
			t.Fatalf("rejected %q changed %q to %q", k, before, e.Display())
		}
		toks := e.Tokens()
		if checkGrammar(t, toks) && e.Pending() == "" {
			// A whole expression always evaluates.
			if _, err := calcpad.Eval(toks); err != nil {
				t.Fatalf("%v: %v", toks, err)
			}
		}
	}
	_, err := e.Evaluate()
	var se *calcpad.StackError
	if errors.As(err, &se) && se.Token.Kind() == calcpad.KindNone {
		t.Fatalf("%q left %d values", e.Display(), se.Have)
	}
}

func TestRandomKeys(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		keys := make([]string, 1+rng.IntN(40))
		for j := range keys {
			keys[j] = alphabet[rng.IntN(len(alphabet))]
		}
		press(t, keys)
	}
}

func FuzzEditor(f *testing.F) {
	f.Add([]byte{1, 13, 2})
	f.Add([]byte{18, 0, 17, 25})
	f.Add([]byte{16, 12, 5, 17, 23, 23})
	f.Fuzz(func(t *testing.T, b []byte) {
		keys := make([]string, len(b))
		for i, c := range b {
			keys[i] = alphabet[int(c)%len(alphabet)]
		}
		press(t, keys)
	})
}

func FuzzEvalString(f *testing.F) {
	f.Add("3+4*2")
	f.Add("sin(0")
	f.Add("1×2")
	f.Add("--1e-3")
	f.Fuzz(func(t *testing.T, s string) {
		calcpad.EvalString(s)
		if syms, err := calcpad.Scan(strings.NewReader(s)); err == nil {
			e := calcpad.NewEditor()
			for _, sym := range syms {
				e.Accept(sym)
				checkGrammar(t, e.Tokens())
			}
		}
	})
}
