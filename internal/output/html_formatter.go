package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report with a wealth chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is the per-month data handed to the inline chart script
type chartSeries struct {
	Name   string    `json:"name"`
	Wealth []float64 `json:"wealth"`
	Equity []float64 `json:"equity"`
}

func newChartSeries(r *domain.SimulationResult) chartSeries {
	s := chartSeries{Name: r.Name, Wealth: make([]float64, r.Len()), Equity: make([]float64, r.Len())}
	for i, rec := range r.Records {
		s.Wealth[i] = rec.Wealth.Round(2).InexactFloat64()
		s.Equity[i] = rec.HomeEquity.Round(2).InexactFloat64()
	}
	return s
}

type yearlyRow struct {
	Year       int
	BuyWealth  decimal.Decimal
	BuyEquity  decimal.Decimal
	BuyDebt    decimal.Decimal
	RentWealth decimal.Decimal
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	var series []chartSeries
	for _, r := range results.Results() {
		series = append(series, newChartSeries(r))
	}

	var yearly []yearlyRow
	if results.Buy != nil && results.Rent != nil {
		buyRows, rentRows := YearEndRecords(results.Buy), YearEndRecords(results.Rent)
		for i := 0; i < len(buyRows) && i < len(rentRows); i++ {
			yearly = append(yearly, yearlyRow{
				Year:       buyRows[i].Month / 12,
				BuyWealth:  buyRows[i].Wealth,
				BuyEquity:  buyRows[i].HomeEquity,
				BuyDebt:    buyRows[i].HomeDebt,
				RentWealth: rentRows[i].Wealth,
			})
		}
	}

	data := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation
		Assumptions    []string
		Series         []chartSeries
		Yearly         []yearlyRow
	}{results, AnalyzeScenarios(results), assumptionsFor(results.Assumptions), series, yearly}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
