package finmath

import (
	"github.com/shopspring/decimal"
)

// LedgerPlaces is the number of decimal places every simulated monthly delta is rounded to.
// Cumulative balances are exact sums of rounded deltas.
const LedgerPlaces = 8

// compoundPlaces bounds the precision of intermediate compounding factors.
const compoundPlaces = 24

// PeriodsPerYear is the number of monthly periods in a year.
const PeriodsPerYear = 12

var periodsPerYear = decimal.NewFromInt(PeriodsPerYear)

// MonthlyRate converts an annual rate (fraction) to a monthly rate
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(periodsPerYear)
}

// Monthly converts an annual amount to a monthly amount
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(periodsPerYear)
}

// Annualize converts a monthly amount to an annual amount
func Annualize(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(periodsPerYear)
}

// Compound returns (1+rate)^periods. Negative periods are treated as zero.
//
// Exact decimal multiplication doubles the digit count on every step, so each
// intermediate product is rounded to compoundPlaces.
func Compound(rate decimal.Decimal, periods int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	if periods <= 0 {
		return result
	}
	base := result.Add(rate)
	for n := periods; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Round(compoundPlaces)
		}
		base = base.Mul(base).Round(compoundPlaces)
	}
	return result
}

// RoundLedger rounds an amount to ledger precision
func RoundLedger(d decimal.Decimal) decimal.Decimal {
	return d.Round(LedgerPlaces)
}

// RoundCents rounds an amount to cents for display
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent expresses a fraction as a percentage (0.25 -> 25)
func Percent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(decimal.NewFromInt(100))
}

// FloorZero returns d, or zero when d is negative
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// WithinTolerance reports whether |a-b| <= tolerance
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
