package output

import (
	"bytes"
	"encoding/csv"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVLongExporter writes the debt, equity and wealth series of both runs in long form,
// one (period, variable, value, scenario) row each, ready for a plotting tool to facet on.
type CSVLongExporter struct{}

func (c CSVLongExporter) Name() string { return "long-csv" }

func (c CSVLongExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Period", "Variable", "Value", "Scenario"}); err != nil {
		return nil, err
	}

	series := []struct {
		name  string
		value func(domain.MonthlyRecord) decimal.Decimal
	}{
		{"Debt", func(r domain.MonthlyRecord) decimal.Decimal { return r.HomeDebt }},
		{"Equity", func(r domain.MonthlyRecord) decimal.Decimal { return r.HomeEquity }},
		{"Wealth", func(r domain.MonthlyRecord) decimal.Decimal { return r.Wealth }},
	}

	for _, sc := range results.Results() {
		tag := scenarioTag(results, sc)
		for _, s := range series {
			for _, rec := range sc.Records {
				if err := w.Write([]string{intToString(rec.Month), s.name, money(s.value(rec)), tag}); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
