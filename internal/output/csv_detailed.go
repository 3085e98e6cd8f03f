package output

import (
	"bytes"
	"encoding/csv"

	"github.com/homeequity/buyrent/internal/domain"
)

// CSVDetailedExporter writes every monthly record of both runs.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

var detailedHeader = []string{
	"Scenario", "Month", "PaymentNumber", "Bootstrap",
	"Income", "InvestmentGain",
	"Principal", "Interest", "HOA", "PropertyTax", "IncomeTax", "Repairs", "Rent", "DownPayment",
	"DeltaHomeAsset", "DeltaDebt", "DeltaSavings", "DeltaWealth",
	"HomeAsset", "HomeDebt", "HomeEquity", "PctLoanPaid", "Savings", "Wealth",
	"TotalInterestPaid", "TotalPrincipalPaid", "TotalRentPaid",
}

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(detailedHeader); err != nil {
		return nil, err
	}
	for _, sc := range results.Results() {
		for _, rec := range sc.Records {
			row := []string{
				sc.Name,
				intToString(rec.Month),
				intToString(rec.PaymentNumber),
				boolToString(rec.IsBootstrap()),
				money(rec.Income.Earned),
				money(rec.Income.InvestmentGain),
				money(rec.Expenses.Principal),
				money(rec.Expenses.Interest),
				money(rec.Expenses.HOA),
				money(rec.Expenses.PropertyTax),
				money(rec.Expenses.IncomeTax),
				money(rec.Expenses.Repairs),
				money(rec.Expenses.Rent),
				money(rec.DownPayment),
				money(rec.DeltaHomeAsset),
				money(rec.DeltaDebt),
				money(rec.DeltaSavings),
				money(rec.DeltaWealth),
				money(rec.HomeAsset),
				money(rec.HomeDebt),
				money(rec.HomeEquity),
				rec.PctLoanPaid.StringFixed(4),
				money(rec.Savings),
				money(rec.Wealth),
				money(rec.TotalInterestPaid),
				money(rec.TotalPrincipalPaid),
				money(rec.TotalRentPaid),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
