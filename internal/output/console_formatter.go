package output

import (
	"bytes"
	"fmt"

	"github.com/homeequity/buyrent/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "BUY VS RENT SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range results.Results() {
		final := sc.Final()
		fmt.Fprintf(&buf, "%s: Payment=%s FinalWealth=%s Equity=%s Savings=%s\n",
			sc.Name,
			FormatCurrency(sc.MonthlyPayment),
			FormatCurrency(final.Wealth),
			FormatCurrency(final.HomeEquity),
			FormatCurrency(final.Savings),
		)
	}
	if len(results.Checkpoints) > 0 {
		fmt.Fprintln(&buf)
		for _, cp := range results.Checkpoints {
			fmt.Fprintf(&buf, "Year %d: rent - buy = %s\n", cp.Year, FormatCurrency(cp.Difference))
		}
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Ahead at month %d: %s (Δ %s / %s)\n", rec.Month, rec.ScenarioName,
			FormatCurrency(rec.WealthAdvantage), FormatPercentage(rec.PercentageAdvantage))
	}
	return buf.Bytes(), nil
}
