package calculation

import (
	"testing"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/pkg/finmath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// buyScenario is the $600k condo financed at 2.5% over 15 years
func buyScenario() domain.ScenarioParameters {
	return domain.ScenarioParameters{
		Name:                 "buy",
		HomePrice:            decimal.NewFromInt(600000),
		DownPaymentFraction:  d(0.20),
		InterestRate:         d(0.025),
		MortgageYears:        15,
		MonthlyHOA:           decimal.NewFromInt(400),
		PropertyTaxRate:      d(0.0125),
		HomeAppreciationRate: d(0.03),
		FilingJoint:          true,
	}
}

// rentScenario keeps a negligible home, paid in full, and pays rent instead
func rentScenario() domain.ScenarioParameters {
	return domain.ScenarioParameters{
		Name:           "rent",
		HomePrice:      d(0.01),
		DownPayment:    d(0.01),
		InterestRate:   d(0.025),
		MortgageYears:  15,
		MonthlyRent:    decimal.NewFromInt(2200),
		InvestmentRate: d(0.05),
		FilingJoint:    true,
	}
}

func flatIncome(months int) domain.IncomeSeries {
	return FlatIncomeSeries(d(10416.67), months)
}

func runProjection(t *testing.T, params domain.ScenarioParameters, income domain.IncomeSeries) *domain.SimulationResult {
	t.Helper()
	result, err := NewCalculationEngine().GenerateMonthlyProjection(&params, income)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// assertLedgerInvariants checks the identities every record must satisfy
func assertLedgerInvariants(t *testing.T, result *domain.SimulationResult) {
	t.Helper()
	hundred := decimal.NewFromInt(100)
	for i, rec := range result.Records {
		require.Equal(t, i, rec.Month, "records are ordered by month")
		assert.True(t, rec.HomeEquity.Equal(rec.HomeAsset.Sub(rec.HomeDebt)), "month %d: equity != asset - debt", i)
		assert.True(t, rec.Wealth.Equal(rec.Savings.Add(rec.HomeEquity)), "month %d: wealth %s != savings + equity %s",
			i, rec.Wealth, rec.Savings.Add(rec.HomeEquity))

		expectedPct := decimal.Zero
		if !result.OriginalLoan.IsZero() {
			expectedPct = hundred.Mul(decimal.NewFromInt(1).Sub(rec.HomeDebt.Div(result.OriginalLoan)))
		}
		assert.True(t, rec.PctLoanPaid.Equal(expectedPct), "month %d: pct loan paid %s, expected %s", i, rec.PctLoanPaid, expectedPct)

		if i > 0 {
			prev := result.Records[i-1]
			assert.True(t, rec.Wealth.Equal(prev.Wealth.Add(rec.DeltaWealth)), "month %d: wealth does not accumulate its delta", i)
			assert.True(t, rec.Savings.Equal(prev.Savings.Add(rec.DeltaSavings)), "month %d: savings does not accumulate its delta", i)
		}
	}
}

func TestGenerateMonthlyProjection_EndToEndBuy(t *testing.T) {
	params := buyScenario()
	result := runProjection(t, params, flatIncome(181))

	require.Equal(t, 182, result.Len(), "opening row, purchase row and 180 payments")
	assertClose(t, d(3199.50), result.MonthlyPayment, decimal.NewFromInt(2), "monthly payment")
	assert.True(t, result.OriginalLoan.Equal(decimal.NewFromInt(480000)))

	opening := result.Records[0]
	assert.True(t, opening.IsBootstrap())
	assert.True(t, opening.DeltaWealth.IsZero())
	assert.True(t, opening.Wealth.IsZero())
	assert.True(t, opening.PctLoanPaid.Equal(decimal.NewFromInt(100)), "no prior debt against the loan drawn on row 1")

	purchase := result.Records[1]
	assert.True(t, purchase.IsBootstrap())
	assert.True(t, purchase.HomeDebt.Equal(decimal.NewFromInt(480000)), "month 1 debt: %s", purchase.HomeDebt)
	assert.True(t, purchase.HomeAsset.Equal(decimal.NewFromInt(600000)))
	assert.True(t, purchase.DownPayment.Equal(decimal.NewFromInt(120000)))
	assert.True(t, purchase.PctLoanPaid.IsZero())
	assertClose(t, d(3324.376288), purchase.Expenses.IncomeTax, d(0.000001), "purchase month tax")
	assertClose(t, d(-112907.706288), purchase.Savings, d(0.000001), "purchase month savings")
	assertClose(t, d(7092.293712), purchase.Wealth, d(0.000001), "purchase month wealth")

	final, ok := result.RecordForPayment(180)
	require.True(t, ok)
	assert.Equal(t, 181, final.Month)
	assertClose(t, decimal.Zero, final.HomeDebt, penny, "debt after the last payment")
	assertClose(t, decimal.NewFromInt(100), final.PctLoanPaid, d(0.0001), "loan fully paid")
	assertClose(t, d(940459.03), final.HomeEquity, decimal.NewFromInt(1), "equity after 180 months of 3%% appreciation")
	assertClose(t, decimal.NewFromInt(480000), final.TotalPrincipalPaid, d(0.000001), "principal repaid")

	assertLedgerInvariants(t, result)
}

func TestGenerateMonthlyProjection_RegularMonth(t *testing.T) {
	params := buyScenario()
	params.HomeRepairRate = d(0.01)
	params.InvestmentRate = d(0.06)
	params.InitialSavings = decimal.NewFromInt(150000)
	result := runProjection(t, params, flatIncome(181))

	loan, err := NewLoan(params.LoanAmount(), params.InterestRate, params.TermMonths())
	require.NoError(t, err)
	estimator := NewPayrollTaxEstimator()

	for payment := 1; payment <= 180; payment++ {
		rec, ok := result.RecordForPayment(payment)
		require.True(t, ok)
		prior := result.Records[rec.Month-1]

		assertClose(t, loan.MonthlyPayment(), rec.Expenses.MortgagePayment(), d(0.000001), "payment %d split", payment)
		assert.True(t, rec.DeltaDebt.Equal(rec.Expenses.Principal.Neg()), "payment %d", payment)
		assert.True(t, rec.Expenses.PropertyTax.Equal(decimal.NewFromInt(625)), "payment %d property tax", payment)
		assert.True(t, rec.Expenses.Repairs.Equal(decimal.NewFromInt(500)), "payment %d repairs", payment)
		assert.True(t, rec.Expenses.HOA.Equal(decimal.NewFromInt(400)))
		assert.True(t, rec.Expenses.Rent.IsZero())

		// gains and appreciation accrue on the prior month's balances
		assert.True(t, rec.Income.InvestmentGain.Equal(finmath.RoundLedger(prior.Savings.Mul(d(0.005)))), "payment %d gain", payment)
		assert.True(t, rec.DeltaHomeAsset.Equal(finmath.RoundLedger(prior.HomeAsset.Mul(d(0.0025)))), "payment %d appreciation", payment)

		expectedTax := finmath.RoundLedger(estimator.MonthlyIncomeTax(rec.Income.Earned, rec.Expenses.Interest, 12, true))
		assert.True(t, rec.Expenses.IncomeTax.Equal(expectedTax), "payment %d mortgage interest is deductible", payment)

		expectedWealth := rec.DeltaHomeAsset.Add(rec.DeltaSavings).Add(rec.Expenses.Principal)
		assert.True(t, rec.DeltaWealth.Equal(expectedWealth), "payment %d wealth delta", payment)
	}

	assertLedgerInvariants(t, result)
}

func TestGenerateMonthlyProjection_RentScenario(t *testing.T) {
	for _, price := range []decimal.Decimal{d(0.01), decimal.Zero} {
		params := rentScenario()
		params.HomePrice = price
		params.DownPayment = price
		result := runProjection(t, params, flatIncome(181))

		assert.True(t, result.MonthlyPayment.IsZero(), "price %s", price)
		assert.True(t, result.OriginalLoan.IsZero())

		purchase := result.Records[1]
		assert.True(t, purchase.DeltaDebt.IsZero())
		assert.True(t, purchase.DeltaHomeAsset.Equal(price))
		assert.True(t, purchase.DeltaWealth.Equal(purchase.Income.Earned.Sub(purchase.Expenses.IncomeTax)),
			"the down payment moves cash into the home without changing wealth")

		for _, rec := range result.Records[2:] {
			assert.True(t, rec.Expenses.Principal.IsZero(), "month %d", rec.Month)
			assert.True(t, rec.Expenses.Interest.IsZero(), "month %d", rec.Month)
			assert.True(t, rec.DeltaDebt.IsZero(), "month %d", rec.Month)
			assert.True(t, rec.PctLoanPaid.IsZero(), "month %d", rec.Month)
			assert.True(t, rec.Expenses.Rent.Equal(decimal.NewFromInt(2200)), "month %d", rec.Month)

			expected := rec.Income.Earned.Add(rec.Income.InvestmentGain).Sub(rec.Expenses.Rent).Sub(rec.Expenses.IncomeTax)
			assert.True(t, rec.DeltaWealth.Equal(expected), "month %d: %s != %s", rec.Month, rec.DeltaWealth, expected)
		}
		assert.True(t, result.Final().TotalRentPaid.Equal(decimal.NewFromInt(2200*180)))
		assertLedgerInvariants(t, result)
	}
}

func TestGenerateMonthlyProjection_InitialHomeDebtCarried(t *testing.T) {
	params := buyScenario()
	params.InitialSavings = decimal.NewFromInt(200000)
	params.InitialHomeAsset = decimal.NewFromInt(250000)
	params.InitialHomeDebt = decimal.NewFromInt(50000)
	result := runProjection(t, params, flatIncome(181))

	opening := result.Records[0]
	assert.True(t, opening.Wealth.Equal(decimal.NewFromInt(400000)))
	assert.True(t, opening.HomeDebt.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.OriginalLoan.Equal(decimal.NewFromInt(530000)))

	purchase := result.Records[1]
	assert.True(t, purchase.HomeDebt.Equal(decimal.NewFromInt(530000)))
	assert.True(t, purchase.HomeAsset.Equal(decimal.NewFromInt(850000)))

	final := result.Final()
	assertClose(t, decimal.NewFromInt(50000), final.HomeDebt, d(0.000001), "only the new loan is amortized")
	expectedPct := decimal.NewFromInt(100).Mul(decimal.NewFromInt(1).Sub(decimal.NewFromInt(50000).Div(decimal.NewFromInt(530000))))
	assertClose(t, expectedPct, final.PctLoanPaid, d(0.0001), "pct paid")

	assertLedgerInvariants(t, result)
}

func TestGenerateMonthlyProjection_IncomeSeriesTooShort(t *testing.T) {
	params := buyScenario()
	_, err := NewCalculationEngine().GenerateMonthlyProjection(&params, flatIncome(180))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncomeSeriesTooShort)
	assert.Contains(t, err.Error(), "needs 181 months")
}

func TestGenerateMonthlyProjection_LongerIncomeIsIgnored(t *testing.T) {
	params := buyScenario()
	result := runProjection(t, params, flatIncome(400))
	assert.Equal(t, 182, result.Len())
}

func TestGenerateMonthlyProjection_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ScenarioParameters)
	}{
		{"zero term", func(p *domain.ScenarioParameters) { p.MortgageYears = 0 }},
		{"negative term", func(p *domain.ScenarioParameters) { p.MortgageYears = -5 }},
		{"down payment above price", func(p *domain.ScenarioParameters) {
			p.DownPaymentFraction = decimal.Zero
			p.DownPayment = decimal.NewFromInt(700000)
		}},
		{"negative rate", func(p *domain.ScenarioParameters) { p.InterestRate = d(-0.01) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := buyScenario()
			tt.mutate(&params)
			_, err := NewCalculationEngine().GenerateMonthlyProjection(&params, flatIncome(600))
			assert.ErrorIs(t, err, domain.ErrInvalidScenario)
		})
	}
}

func TestGenerateMonthlyProjection_Deterministic(t *testing.T) {
	params := buyScenario()
	income := flatIncome(181)
	a := runProjection(t, params, income)
	b := runProjection(t, params, income)
	for i := range a.Records {
		assert.True(t, a.Records[i].Wealth.Equal(b.Records[i].Wealth), "month %d", i)
	}
}
