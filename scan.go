package calcpad

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// single lists the runes that are symbols by themselves.
const single = "+-*/^×÷()"

// scanner splits expression text into editor symbols.
type scanner struct {
	in io.RuneReader
	// ahead holds runes pushed back, the last one to be read first.
	ahead []rune
	sym   strings.Builder
	// col is the number of runes read.
	col int
	// last is the previous symbol.
	last string
}

// Scan splits expression text into symbols for Editor.Accept. Numbers are
// scanned whole, with a leading minus where an operand is expected, and a
// parenthesized negative number such as "(-5)" is the single symbol "-5". A
// function name absorbs an open parenthesis immediately following it, since
// the editor opens one itself. Whitespace separates symbols and is otherwise
// ignored. A number directly following another number is an error.
func Scan(src io.RuneScanner) ([]string, error) {
	s := scanner{in: src}
	var syms []string
	for {
		sym, err := s.symbol()
		if errors.Is(err, io.EOF) {
			return syms, nil
		}
		if err != nil {
			return syms, err
		}
		syms = append(syms, sym)
		s.last = sym
	}
}

// ScanString is a shortcut to scan a string.
func ScanString(text string) ([]string, error) {
	return Scan(strings.NewReader(text))
}

func (s *scanner) read() (rune, error) {
	if n := len(s.ahead); n > 0 {
		r := s.ahead[n-1]
		s.ahead = s.ahead[:n-1]
		s.col++
		return r, nil
	}
	r, _, err := s.in.ReadRune()
	if err != nil {
		return 0, err
	}
	s.col++
	return r, nil
}

// unread pushes r back so that it is read next.
func (s *scanner) unread(r rune) {
	s.ahead = append(s.ahead, r)
	s.col--
}

func (s *scanner) peek() (rune, error) {
	r, err := s.read()
	if err == nil {
		s.unread(r)
	}
	return r, err
}

// symbol scans the next symbol. At the end of the input the error is io.EOF.
func (s *scanner) symbol() (string, error) {
	s.sym.Reset()
	r, err := s.read()
	for err == nil && unicode.IsSpace(r) {
		r, err = s.read()
	}
	if err != nil {
		return "", err
	}
	switch {
	case isNumeral(r) && s.afterNumber():
		s.sym.WriteRune(r)
		return "", s.fail("number")
	case isNumeral(r):
		s.unread(r)
		return s.numeral()
	case r == '(':
		if lit, ok := s.negative(); ok {
			return lit, nil
		}
		return "(", nil
	case r == '-' && s.wantOperand():
		next, err := s.peek()
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if !isNumeral(next) {
			return "-", nil
		}
		s.sym.WriteRune(r)
		return s.numeral()
	case r == '√':
		s.sym.WriteRune(r)
		return s.call()
	case unicode.IsLetter(r):
		s.sym.WriteRune(r)
		return s.name()
	case strings.ContainsRune(single, r):
		return string(r), nil
	}
	s.sym.WriteRune(r)
	return "", s.fail("")
}

func isNumeral(r rune) bool {
	return r == '.' || '0' <= r && r <= '9'
}

// wantOperand reports whether the previous symbol leaves the expression
// expecting an operand, so that a minus sign belongs to a number.
func (s *scanner) wantOperand() bool {
	return s.last != ")" && !s.afterNumber()
}

// afterNumber reports whether the previous symbol is a number.
func (s *scanner) afterNumber() bool {
	r, _ := utf8.DecodeRuneInString(strings.TrimPrefix(s.last, "-"))
	return isNumeral(r)
}

// negative scans the rest of a parenthesized negative number after its open
// parenthesis, returning the number without the parentheses. If the text is
// anything else, nothing is consumed.
func (s *scanner) negative() (string, bool) {
	var seen []rune
	restore := func() (string, bool) {
		for i := len(seen) - 1; i >= 0; i-- {
			s.unread(seen[i])
		}
		return "", false
	}
	for {
		r, err := s.read()
		if err != nil {
			return restore()
		}
		seen = append(seen, r)
		switch {
		case len(seen) == 1 && r != '-':
			return restore()
		case r == ')':
			lit := string(seen[:len(seen)-1])
			if t, ok := ParseToken(lit); !ok || t.Kind() != KindOperand {
				return restore()
			}
			return lit, true
		case len(seen) > 1 && !strings.ContainsRune("0123456789.eE+-", r):
			return restore()
		}
	}
}

// numeral scans a number: digits with at most one point, then optionally an
// exponent. A letter or other rune running into the number makes it invalid.
func (s *scanner) numeral() (string, error) {
	const (
		mantissa = iota
		expsign
		exponent
	)
	phase, digits, point, expdigits := mantissa, false, false, false
	for {
		r, err := s.read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		signed := phase == expsign && (r == '+' || r == '-')
		if unicode.IsSpace(r) || (strings.ContainsRune(single, r) && !signed) {
			s.unread(r)
			break
		}
		s.sym.WriteRune(r)
		switch {
		case '0' <= r && r <= '9':
			if phase == mantissa {
				digits = true
			} else {
				phase, expdigits = exponent, true
			}
		case r == '.' && phase == mantissa && !point:
			point = true
		case (r == 'e' || r == 'E') && phase == mantissa && digits:
			phase = expsign
		case signed:
			phase = exponent
		default:
			return "", s.fail("number")
		}
	}
	if !digits || (phase != mantissa && !expdigits) {
		return "", s.fail("number")
	}
	return s.sym.String(), nil
}

// name scans the letters of a function name.
func (s *scanner) name() (string, error) {
	for {
		r, err := s.read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if !unicode.IsLetter(r) {
			s.unread(r)
			break
		}
		s.sym.WriteRune(r)
	}
	return s.call()
}

// call finishes a function name, consuming an open parenthesis right after it.
func (s *scanner) call() (string, error) {
	r, err := s.read()
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		return "", err
	case r != '(':
		s.unread(r)
	}
	return s.sym.String(), nil
}

func (s *scanner) fail(kind string) error {
	return &ScanError{Text: s.sym.String(), Kind: kind, Col: s.col}
}

// ScanError is an error indicating expression text that does not split into
// symbols. It implements InputError.
type ScanError struct {
	// Text is the symbol being scanned, ending with the rune that made it
	// invalid.
	Text string
	// Kind is "number" if a number was being scanned and empty otherwise.
	Kind string
	// Col is the rune column of the rune that made the text invalid.
	Col int
}

func (err *ScanError) Error() string {
	what := err.Kind
	if what == "" {
		what = "symbol"
	}
	return errpos(err.Col, "invalid "+what+" "+strconv.Quote(err.Text))
}

func (err *ScanError) Pos() int {
	return err.Col
}
