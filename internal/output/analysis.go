package output

import (
	"github.com/homeequity/buyrent/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates which scenario ends with more wealth.
type Recommendation struct {
	ScenarioName        string          `json:"scenario_name,omitempty"`
	Month               int             `json:"month"`
	FinalWealth         decimal.Decimal `json:"final_wealth"`
	WealthAdvantage     decimal.Decimal `json:"wealth_advantage"`
	PercentageAdvantage decimal.Decimal `json:"percentage_advantage"`
}

// AnalyzeScenarios compares the two runs at the last month both cover. A tie, or a missing
// run, yields the zero Recommendation.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil || results.Buy == nil || results.Rent == nil {
		return Recommendation{}
	}
	month := results.Buy.Len()
	if results.Rent.Len() < month {
		month = results.Rent.Len()
	}
	month--
	if month < 0 {
		return Recommendation{}
	}

	best, other := results.Buy, results.Rent
	if other.Records[month].Wealth.GreaterThan(best.Records[month].Wealth) {
		best, other = other, best
	}
	bestWealth := best.Records[month].Wealth
	otherWealth := other.Records[month].Wealth
	delta := bestWealth.Sub(otherWealth)
	if delta.IsZero() {
		return Recommendation{}
	}

	pct := decimal.Zero
	if !otherWealth.IsZero() {
		pct = delta.Div(otherWealth.Abs()).Mul(decimal.NewFromInt(100))
	}
	return Recommendation{
		ScenarioName:        best.Name,
		Month:               month,
		FinalWealth:         bestWealth,
		WealthAdvantage:     delta,
		PercentageAdvantage: pct,
	}
}
