package output

import (
	"bytes"
	"encoding/csv"

	"github.com/homeequity/buyrent/internal/domain"
)

// CSVSummarizer writes one row per checkpoint year.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Month", "BuyWealth", "RentWealth", "RentMinusBuy", "BuyEquity", "BuyDebt"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, cp := range results.Checkpoints {
		row := []string{
			intToString(cp.Year),
			intToString(cp.Month),
			money(cp.BuyWealth),
			money(cp.RentWealth),
			money(cp.Difference),
			money(cp.BuyEquity),
			money(cp.BuyDebt),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
