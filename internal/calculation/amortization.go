package calculation

import (
	"errors"
	"fmt"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/pkg/finmath"
	"github.com/shopspring/decimal"
)

// ErrInvalidLoan is wrapped by amortization input errors.
var ErrInvalidLoan = errors.New("invalid loan terms")

// Loan describes a fixed-rate, fixed-term amortized loan
type Loan struct {
	Principal  decimal.Decimal
	AnnualRate decimal.Decimal
	TermMonths int
}

// NewLoan validates and returns a Loan
func NewLoan(principal, annualRate decimal.Decimal, termMonths int) (Loan, error) {
	if termMonths <= 0 {
		return Loan{}, fmt.Errorf("%w: term must be positive, got %d months", ErrInvalidLoan, termMonths)
	}
	if principal.IsNegative() {
		return Loan{}, fmt.Errorf("%w: principal cannot be negative", ErrInvalidLoan)
	}
	if annualRate.IsNegative() {
		return Loan{}, fmt.Errorf("%w: annual rate cannot be negative", ErrInvalidLoan)
	}
	return Loan{Principal: principal, AnnualRate: annualRate, TermMonths: termMonths}, nil
}

func (l Loan) monthlyRate() decimal.Decimal {
	return finmath.MonthlyRate(l.AnnualRate)
}

// MonthlyPayment returns the fixed payment P*r/(1-(1+r)^-n), or P/n for a zero rate
func (l Loan) MonthlyPayment() decimal.Decimal {
	if l.Principal.IsZero() || l.TermMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(l.TermMonths))
	if l.AnnualRate.IsZero() {
		return l.Principal.Div(n)
	}
	r := l.monthlyRate()
	growth := finmath.Compound(r, l.TermMonths)
	// multiplying through by (1+r)^n avoids a negative exponent
	return l.Principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

// RemainingBalance returns the outstanding principal after the given number of payments
func (l Loan) RemainingBalance(paymentsMade int) decimal.Decimal {
	if l.Principal.IsZero() || paymentsMade <= 0 {
		return l.Principal
	}
	if paymentsMade >= l.TermMonths {
		return decimal.Zero
	}
	payment := l.MonthlyPayment()
	if l.AnnualRate.IsZero() {
		return l.Principal.Sub(payment.Mul(decimal.NewFromInt(int64(paymentsMade))))
	}
	r := l.monthlyRate()
	growth := finmath.Compound(r, paymentsMade)
	// B_k = P(1+r)^k - pmt((1+r)^k - 1)/r
	return l.Principal.Mul(growth).Sub(payment.Mul(growth.Sub(decimal.NewFromInt(1))).Div(r))
}

// Portions splits the payment of a 1-based month into principal and interest
func (l Loan) Portions(month int) (principal, interest decimal.Decimal, err error) {
	if month < 1 || month > l.TermMonths {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: month %d outside [1, %d]", ErrInvalidLoan, month, l.TermMonths)
	}
	if l.Principal.IsZero() {
		return decimal.Zero, decimal.Zero, nil
	}
	payment := l.MonthlyPayment()
	if l.AnnualRate.IsZero() {
		return payment, decimal.Zero, nil
	}
	interest = l.RemainingBalance(month - 1).Mul(l.monthlyRate())
	return payment.Sub(interest), interest, nil
}

// PrincipalPortion returns the principal part of a month's payment (zero outside the term)
func (l Loan) PrincipalPortion(month int) decimal.Decimal {
	p, _, err := l.Portions(month)
	if err != nil {
		return decimal.Zero
	}
	return p
}

// InterestPortion returns the interest part of a month's payment (zero outside the term)
func (l Loan) InterestPortion(month int) decimal.Decimal {
	_, i, err := l.Portions(month)
	if err != nil {
		return decimal.Zero
	}
	return i
}

// MonthlyPayment is the functional form of Loan.MonthlyPayment
func MonthlyPayment(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	return Loan{Principal: principal, AnnualRate: annualRate, TermMonths: termMonths}.MonthlyPayment()
}

// PrincipalPortion is the functional form of Loan.PrincipalPortion
func PrincipalPortion(principal, annualRate decimal.Decimal, termMonths, month int) decimal.Decimal {
	return Loan{Principal: principal, AnnualRate: annualRate, TermMonths: termMonths}.PrincipalPortion(month)
}

// InterestPortion is the functional form of Loan.InterestPortion
func InterestPortion(principal, annualRate decimal.Decimal, termMonths, month int) decimal.Decimal {
	return Loan{Principal: principal, AnnualRate: annualRate, TermMonths: termMonths}.InterestPortion(month)
}

// AmortizationSchedule computes the full payment schedule of a loan
func AmortizationSchedule(principal, annualRate decimal.Decimal, termMonths int) ([]domain.Payment, error) {
	loan, err := NewLoan(principal, annualRate, termMonths)
	if err != nil {
		return nil, err
	}

	payment := loan.MonthlyPayment()
	schedule := make([]domain.Payment, 0, termMonths)
	var cumInterest, cumPrincipal decimal.Decimal
	for month := 1; month <= termMonths; month++ {
		prin, interest, err := loan.Portions(month)
		if err != nil {
			return nil, err
		}
		cumInterest = cumInterest.Add(interest)
		cumPrincipal = cumPrincipal.Add(prin)
		schedule = append(schedule, domain.Payment{
			Number:              month,
			Payment:             payment,
			Interest:            interest,
			Principal:           prin,
			RemainingBalance:    loan.RemainingBalance(month),
			CumulativeInterest:  cumInterest,
			CumulativePrincipal: cumPrincipal,
		})
	}
	return schedule, nil
}
