package calculation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var penny = decimal.NewFromFloat(0.01)

func assertClose(t *testing.T, expected, actual, tolerance decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	diff := actual.Sub(expected).Abs()
	if diff.LessThanOrEqual(tolerance) {
		return
	}
	context := ""
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			context = fmt.Sprintf(format, msgAndArgs[1:]...)
		}
	}
	t.Errorf("%s: expected %s, got %s (difference: %s)", context, expected.String(), actual.String(), diff.String())
}

// TestMonthlyPayment verifies the fixed payment against known amortization values
func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name        string
		principal   decimal.Decimal
		rate        decimal.Decimal
		termMonths  int
		expected    decimal.Decimal
		description string
	}{
		{
			name:        "15 year at 2.5%",
			principal:   decimal.NewFromInt(480000),
			rate:        decimal.NewFromFloat(0.025),
			termMonths:  180,
			expected:    decimal.NewFromFloat(3200.59),
			description: "$480k financed after 20% down on $600k",
		},
		{
			name:        "30 year at 9%",
			principal:   decimal.NewFromInt(400000),
			rate:        decimal.NewFromFloat(0.09),
			termMonths:  360,
			expected:    decimal.NewFromFloat(3218.49),
			description: "$500k home with $100k down",
		},
		{
			name:        "zero rate is linear",
			principal:   decimal.NewFromInt(120000),
			rate:        decimal.Zero,
			termMonths:  120,
			expected:    decimal.NewFromInt(1000),
			description: "principal / n",
		},
		{
			name:        "zero principal",
			principal:   decimal.Zero,
			rate:        decimal.NewFromFloat(0.05),
			termMonths:  360,
			expected:    decimal.Zero,
			description: "rent-only scenario",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, tt.rate, tt.termMonths)
			assertClose(t, tt.expected, got, penny, tt.description)
		})
	}
}

func TestMonthlyPayment_NearQuotedFigure(t *testing.T) {
	// The planning figure quoted for this loan is roughly $3,199.50
	got := MonthlyPayment(decimal.NewFromInt(480000), decimal.NewFromFloat(0.025), 180)
	assertClose(t, decimal.NewFromFloat(3199.50), got, decimal.NewFromInt(2))
}

func TestPortions_SumToPaymentEveryMonth(t *testing.T) {
	loans := []Loan{
		{Principal: decimal.NewFromInt(480000), AnnualRate: decimal.NewFromFloat(0.025), TermMonths: 180},
		{Principal: decimal.NewFromInt(400000), AnnualRate: decimal.NewFromFloat(0.09), TermMonths: 360},
		{Principal: decimal.NewFromFloat(0.01), AnnualRate: decimal.NewFromFloat(0.025), TermMonths: 360},
		{Principal: decimal.NewFromInt(90000), AnnualRate: decimal.Zero, TermMonths: 60},
	}

	for _, loan := range loans {
		payment := loan.MonthlyPayment()
		total := decimal.Zero
		for m := 1; m <= loan.TermMonths; m++ {
			p := loan.PrincipalPortion(m)
			i := loan.InterestPortion(m)
			assert.True(t, p.Add(i).Equal(payment), "month %d: %s + %s != %s", m, p, i, payment)
			total = total.Add(p)
		}
		assertClose(t, loan.Principal, total, decimal.NewFromFloat(1e-6), "principal sum for %s", loan.Principal)
	}
}

func TestPortions_InterestDeclinesOverTerm(t *testing.T) {
	loan := Loan{Principal: decimal.NewFromInt(480000), AnnualRate: decimal.NewFromFloat(0.025), TermMonths: 180}

	// first month interest is P * r
	assertClose(t, decimal.NewFromInt(1000), loan.InterestPortion(1), decimal.NewFromFloat(1e-6))
	assert.True(t, loan.InterestPortion(2).LessThan(loan.InterestPortion(1)))
	assert.True(t, loan.PrincipalPortion(180).GreaterThan(loan.PrincipalPortion(1)))
}

func TestPortions_ZeroRate(t *testing.T) {
	loan := Loan{Principal: decimal.NewFromInt(36000), AnnualRate: decimal.Zero, TermMonths: 36}
	for m := 1; m <= 36; m++ {
		assert.True(t, loan.PrincipalPortion(m).Equal(decimal.NewFromInt(1000)))
		assert.True(t, loan.InterestPortion(m).IsZero())
	}
}

func TestPortions_ZeroPrincipal(t *testing.T) {
	loan := Loan{Principal: decimal.Zero, AnnualRate: decimal.NewFromFloat(0.06), TermMonths: 360}
	assert.True(t, loan.MonthlyPayment().IsZero())
	for m := 1; m <= 360; m++ {
		assert.True(t, loan.PrincipalPortion(m).IsZero())
		assert.True(t, loan.InterestPortion(m).IsZero())
	}
}

func TestPortions_OutOfRange(t *testing.T) {
	loan := Loan{Principal: decimal.NewFromInt(1000), AnnualRate: decimal.NewFromFloat(0.05), TermMonths: 12}

	for _, m := range []int{0, -1, 13} {
		_, _, err := loan.Portions(m)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidLoan))
		assert.True(t, loan.PrincipalPortion(m).IsZero())
		assert.True(t, loan.InterestPortion(m).IsZero())
	}
}

func TestRemainingBalance(t *testing.T) {
	loan := Loan{Principal: decimal.NewFromInt(480000), AnnualRate: decimal.NewFromFloat(0.025), TermMonths: 180}

	assert.True(t, loan.RemainingBalance(0).Equal(loan.Principal))
	assert.True(t, loan.RemainingBalance(180).IsZero())
	assertClose(t, loan.Principal.Sub(loan.PrincipalPortion(1)), loan.RemainingBalance(1), decimal.NewFromFloat(1e-8))
	assertClose(t, loan.RemainingBalance(179), loan.PrincipalPortion(180), decimal.NewFromFloat(1e-6))
}

func TestNewLoan_Validation(t *testing.T) {
	_, err := NewLoan(decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 0)
	assert.True(t, errors.Is(err, ErrInvalidLoan))

	_, err = NewLoan(decimal.NewFromInt(-1), decimal.NewFromFloat(0.05), 12)
	assert.True(t, errors.Is(err, ErrInvalidLoan))

	_, err = NewLoan(decimal.NewFromInt(1000), decimal.NewFromFloat(-0.05), 12)
	assert.True(t, errors.Is(err, ErrInvalidLoan))

	loan, err := NewLoan(decimal.Zero, decimal.Zero, 12)
	require.NoError(t, err)
	assert.True(t, loan.MonthlyPayment().IsZero())
}

func TestAmortizationSchedule(t *testing.T) {
	schedule, err := AmortizationSchedule(decimal.NewFromInt(480000), decimal.NewFromFloat(0.025), 180)
	require.NoError(t, err)
	require.Len(t, schedule, 180)

	first := schedule[0]
	last := schedule[179]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 180, last.Number)
	assert.True(t, last.RemainingBalance.IsZero())
	assertClose(t, decimal.NewFromInt(480000), last.CumulativePrincipal, decimal.NewFromFloat(1e-6))
	assertClose(t, last.Payment.Mul(decimal.NewFromInt(180)), last.CumulativeInterest.Add(last.CumulativePrincipal), decimal.NewFromFloat(1e-6))

	_, err = AmortizationSchedule(decimal.NewFromInt(1000), decimal.Zero, -12)
	assert.Error(t, err)
}
