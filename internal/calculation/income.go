package calculation

import (
	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/pkg/finmath"
	"github.com/shopspring/decimal"
)

// GenerateIncomeSeries produces months entries of monthly gross income. The annual figure is
// held for twelve months at a time and raised by AnnualRaiseRate at each anniversary.
func GenerateIncomeSeries(assumptions domain.IncomeAssumptions, months int) domain.IncomeSeries {
	if months <= 0 {
		return domain.IncomeSeries{}
	}

	series := make(domain.IncomeSeries, months)
	growth := decimal.NewFromInt(1).Add(assumptions.AnnualRaiseRate)
	annual := assumptions.StartingAnnualIncome
	for i := 0; i < months; i++ {
		if i > 0 && i%finmath.PeriodsPerYear == 0 {
			annual = finmath.RoundLedger(annual.Mul(growth))
		}
		series[i] = finmath.RoundLedger(finmath.Monthly(annual))
	}
	return series
}

// FlatIncomeSeries repeats the same monthly income months times
func FlatIncomeSeries(monthly decimal.Decimal, months int) domain.IncomeSeries {
	if months <= 0 {
		return domain.IncomeSeries{}
	}
	series := make(domain.IncomeSeries, months)
	for i := range series {
		series[i] = monthly
	}
	return series
}
