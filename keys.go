package calcpad

// Control keys on the keypad. Every other key is an input symbol for Accept.
const (
	KeyClear    = "C"
	KeyDelete   = "del"
	KeyEvaluate = "="
)

// Keypad is the default keypad layout, row by row.
var Keypad = [][]string{
	{"√", KeyClear, "(", ")", KeyDelete},
	{"sin", "7", "8", "9", "*"},
	{"cos", "4", "5", "6", "/"},
	{"tg", "1", "2", "3", "-"},
	{"ctg", ".", "0", KeyEvaluate, "+"},
}

// Press handles a keypad key. The control keys clear, delete, and evaluate;
// anything else is passed to Accept. The result is whether the key did
// anything: clearing always does, and evaluation does if it succeeded.
func (e *Editor) Press(key string) bool {
	switch key {
	case KeyClear:
		e.Clear()
		return true
	case KeyDelete:
		return e.DeleteLast()
	case KeyEvaluate:
		_, err := e.Evaluate()
		return err == nil
	default:
		return e.Accept(key)
	}
}
