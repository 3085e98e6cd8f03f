package output

import (
	"encoding/json"

	"github.com/homeequity/buyrent/internal/domain"
)

// JSONFormatter serializes the scenario comparison as pretty-printed JSON. SummaryOnly drops
// the monthly records and keeps checkpoints, break-even and the recommendation.
type JSONFormatter struct {
	SummaryOnly bool
}

func (j JSONFormatter) Name() string {
	if j.SummaryOnly {
		return "json-summary"
	}
	return "json"
}

type jsonReport struct {
	*domain.ScenarioComparison
	Recommendation Recommendation `json:"recommendation"`
}

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	report := jsonReport{ScenarioComparison: results, Recommendation: AnalyzeScenarios(results)}
	if j.SummaryOnly {
		trimmed := *results
		trimmed.Buy = withoutRecords(results.Buy)
		trimmed.Rent = withoutRecords(results.Rent)
		report.ScenarioComparison = &trimmed
	}
	return json.MarshalIndent(report, "", "  ")
}

func withoutRecords(r *domain.SimulationResult) *domain.SimulationResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Records = nil
	return &c
}
