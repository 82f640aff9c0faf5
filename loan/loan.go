// Package loan computes loan repayment plans.
//
// Amounts are computed with big.Float at a fixed precision so that long plans
// do not accumulate rounding error month over month, then reported as
// float64.
package loan

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Method is a repayment method.
type Method int8

const (
	// EqualInstallment repays the same amount every month. Early payments
	// are mostly interest.
	EqualInstallment Method = iota
	// EqualPrincipal repays the same principal every month plus the interest
	// on the remaining balance, so payments decrease.
	EqualPrincipal
)

func (m Method) String() string {
	switch m {
	case EqualInstallment:
		return "installment"
	case EqualPrincipal:
		return "principal"
	default:
		return fmt.Sprintf("Method(%d)", int8(m))
	}
}

// ParseMethod parses the String form of a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "installment", "equal-installment", "interest", "equal-interest":
		return EqualInstallment, nil
	case "principal", "equal-principal":
		return EqualPrincipal, nil
	default:
		return 0, fmt.Errorf("unknown repayment method %q", s)
	}
}

// Prec is the precision in bits of intermediate computations.
const Prec = 128

// MaxMonths is the longest plan Installments lists.
const MaxMonths = 12 * 1000

// Terms describes a loan.
type Terms struct {
	// Years is the length of the loan.
	Years float64
	// Amount is the principal.
	Amount float64
	// Rate is the annual interest rate in percent.
	Rate float64
	// Method is the repayment method.
	Method Method
}

// Summary is the outcome of a loan. For EqualPrincipal, MonthlyPayment is the
// first and largest payment.
type Summary struct {
	MonthlyPayment float64
	TotalInterest  float64
	TotalPayment   float64
}

// Installment is one month of a repayment plan.
type Installment struct {
	// Month counts from 1.
	Month     int
	Payment   float64
	Principal float64
	Interest  float64
	// Balance is the principal remaining after the payment.
	Balance float64
}

func num(x float64) *big.Float {
	return new(big.Float).SetPrec(Prec).SetFloat64(x)
}

func f64(x *big.Float) float64 {
	r, _ := x.Float64()
	return r
}

// months returns the number of monthly payments.
func (t Terms) months() float64 {
	return t.Years * 12
}

// monthlyRate returns the monthly interest rate as a fraction.
func (t Terms) monthlyRate() *big.Float {
	r := num(t.Rate)
	r.Quo(r, num(100*12))
	return r
}

// valid reports whether every input is positive and finite. Plans for invalid
// terms are all zero.
func (t Terms) valid() bool {
	for _, x := range [...]float64{t.months(), t.Rate, t.Amount} {
		if !(x > 0) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// installment returns the fixed monthly payment of an EqualInstallment plan:
// P r (1+r)^n / ((1+r)^n - 1).
func (t Terms) installment() *big.Float {
	r := t.monthlyRate()
	g := num(1)
	g.Add(g, r)
	g = bigfloat.Pow(g, g, num(t.months()))
	p := num(t.Amount)
	p.Mul(p, r)
	if g.IsInf() {
		// (1+r)^n overflowed; the payment is the interest alone.
		return p
	}
	p.Mul(p, g)
	g.Sub(g, num(1))
	return p.Quo(p, g)
}

// Summary computes the payment and totals of the loan.
func (t Terms) Summary() Summary {
	if !t.valid() {
		return Summary{}
	}
	n := num(t.months())
	amount := num(t.Amount)
	switch t.Method {
	case EqualPrincipal:
		r := t.monthlyRate()
		// First payment: P/n + P r.
		pay := new(big.Float).SetPrec(Prec).Quo(amount, n)
		pay.Add(pay, new(big.Float).SetPrec(Prec).Mul(amount, r))
		// Total interest: P r (n+1) / 2.
		interest := new(big.Float).SetPrec(Prec).Mul(amount, r)
		interest.Mul(interest, n.Add(n, num(1)))
		interest.Quo(interest, num(2))
		total := new(big.Float).SetPrec(Prec).Add(amount, interest)
		return Summary{MonthlyPayment: f64(pay), TotalInterest: f64(interest), TotalPayment: f64(total)}
	default:
		pay := t.installment()
		total := new(big.Float).SetPrec(Prec).Mul(pay, n)
		interest := new(big.Float).SetPrec(Prec).Sub(total, amount)
		return Summary{MonthlyPayment: f64(pay), TotalInterest: f64(interest), TotalPayment: f64(total)}
	}
}

// Installments lists every monthly payment of the loan. A fractional number of
// months is rounded to the nearest whole month. The result is nil for invalid
// terms and for plans longer than MaxMonths.
func (t Terms) Installments() []Installment {
	if !t.valid() || t.months() > MaxMonths {
		return nil
	}
	n := int(math.Round(t.months()))
	if n < 1 {
		return nil
	}
	r := t.monthlyRate()
	balance := num(t.Amount)
	var fixed *big.Float
	switch t.Method {
	case EqualPrincipal:
		fixed = num(t.Amount)
		fixed.Quo(fixed, num(float64(n)))
	default:
		// Use the whole-month count so that the plan pays off exactly.
		w := t
		w.Years = float64(n) / 12
		fixed = w.installment()
	}
	plan := make([]Installment, 0, n)
	for m := 1; m <= n; m++ {
		interest := new(big.Float).SetPrec(Prec).Mul(balance, r)
		var principal, pay *big.Float
		if t.Method == EqualPrincipal {
			principal = fixed
			pay = new(big.Float).SetPrec(Prec).Add(fixed, interest)
		} else {
			pay = fixed
			principal = new(big.Float).SetPrec(Prec).Sub(fixed, interest)
		}
		if m == n {
			// Absorb the rounding residue into the last payment.
			principal = new(big.Float).SetPrec(Prec).Set(balance)
			pay = new(big.Float).SetPrec(Prec).Add(principal, interest)
		}
		balance.Sub(balance, principal)
		plan = append(plan, Installment{
			Month:     m,
			Payment:   f64(pay),
			Principal: f64(principal),
			Interest:  f64(interest),
			Balance:   f64(balance),
		})
	}
	return plan
}
