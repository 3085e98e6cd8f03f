package output

import (
	"strconv"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/pkg/finmath"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// money renders a ledger amount for machine-readable output
func money(d decimal.Decimal) string { return d.StringFixed(2) }

// YearEndRecords returns the record closing each whole year of a run, starting at month 12
func YearEndRecords(result *domain.SimulationResult) []domain.MonthlyRecord {
	if result == nil {
		return nil
	}
	var rows []domain.MonthlyRecord
	for m := finmath.PeriodsPerYear; m < result.Len(); m += finmath.PeriodsPerYear {
		rows = append(rows, result.Records[m])
	}
	return rows
}

// scenarioTag labels a run in long-format exports
func scenarioTag(results *domain.ScenarioComparison, r *domain.SimulationResult) string {
	if r == results.Buy {
		return "Own"
	}
	return "Rent"
}
