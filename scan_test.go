package calcpad

import (
	"reflect"
	"strings"
	"testing"
)

func TestScan(t *testing.T) {
	cases := []struct {
		src  string
		syms []string
		err  bool
	}{
		// spaces
		{"", nil, false},
		{" \t \r\n ", nil, false},
		// numbers
		{"0", []string{"0"}, false},
		{"9876543210", []string{"9876543210"}, false},
		{"1 0", []string{"1"}, true},
		{"12 3", []string{"12"}, true},
		{"12 34", []string{"12"}, true},
		{"1+2 3", []string{"1", "+", "2"}, true},
		{"12.5", []string{"12.5"}, false},
		{".5", []string{".5"}, false},
		{"1e3", []string{"1e3"}, false},
		{"1e-3", []string{"1e-3"}, false},
		{"1.1.1", nil, true},
		{".", nil, true},
		{"1e", nil, true},
		{"1a", nil, true},
		// signs
		{"-1", []string{"-1"}, false},
		{"-.5", []string{"-.5"}, false},
		{"1-1", []string{"1", "-", "1"}, false},
		{"1--1", []string{"1", "-", "-1"}, false},
		{"2*-3", []string{"2", "*", "-3"}, false},
		{"(-1)", []string{"-1"}, false},
		{"((-1))", []string{"(", "-1", ")"}, false},
		{"(-1.5e-3)", []string{"-1.5e-3"}, false},
		{"(-1", []string{"(", "-1"}, false},
		{"(- 1)", []string{"(", "-", "1", ")"}, false},
		{"(-1-2)", []string{"(", "-1", "-", "2", ")"}, false},
		{"(-1)2", []string{"-1"}, true},
		{")-1", []string{")", "-", "1"}, false},
		{"-(1)", []string{"-", "(", "1", ")"}, false},
		{"- 1", []string{"-", "1"}, false},
		{"-", []string{"-"}, false},
		{"2-", []string{"2", "-"}, false},
		{"-1-1", []string{"-1", "-", "1"}, false},
		// operators
		{"1+2", []string{"1", "+", "2"}, false},
		{"2×3÷4^5", []string{"2", "×", "3", "÷", "4", "^", "5"}, false},
		// functions
		{"sin(0)", []string{"sin", "0", ")"}, false},
		{"sin 0", []string{"sin", "0"}, false},
		{"sin (0)", []string{"sin", "(", "0", ")"}, false},
		{"√4", []string{"√", "4"}, false},
		{"√(-4)", []string{"√", "-4", ")"}, false},
		{"tg(x)", []string{"tg", "x", ")"}, false},
		{"2*cos(1)^2", []string{"2", "*", "cos", "1", ")", "^", "2"}, false},
		// erroneous symbols
		{"$", nil, true},
		{"1+$", []string{"1", "+"}, true},
	}
	for _, c := range cases {
		syms, err := Scan(strings.NewReader(c.src))
		if (err != nil) != c.err {
			t.Errorf("scanning %q: want error %t, got %v", c.src, c.err, err)
		}
		if err != nil {
			if _, ok := err.(*ScanError); !ok {
				t.Errorf("scanning %q: error %v has type %T, not *ScanError", c.src, err, err)
			}
		}
		if !reflect.DeepEqual(syms, c.syms) {
			t.Errorf("scanning %q: want %q, got %q", c.src, c.syms, syms)
		}
	}
}

func TestScanErrorPos(t *testing.T) {
	_, err := ScanString("12 + 3$")
	se, ok := err.(*ScanError)
	if !ok {
		t.Fatalf("want *ScanError, got %T: %v", err, err)
	}
	if se.Pos() != 7 {
		t.Errorf("want position 7, got %d", se.Pos())
	}
	if se.Kind != "number" || se.Text != "3$" {
		t.Errorf("wrong error details: %+v", se)
	}
}

func TestScanNumberAfterNumber(t *testing.T) {
	cases := []struct {
		src string
		col int
	}{
		{"1 2", 3},
		{"12 3", 4},
		{"12 34", 4},
		{"(-1) 2", 6},
	}
	for _, c := range cases {
		_, err := ScanString(c.src)
		se, ok := err.(*ScanError)
		if !ok {
			t.Errorf("scanning %q: want *ScanError, got %v", c.src, err)
			continue
		}
		if se.Kind != "number" || se.Pos() != c.col {
			t.Errorf("scanning %q: want number error at %d, got %+v", c.src, c.col, se)
		}
	}
}
