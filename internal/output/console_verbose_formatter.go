package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/homeequity/buyrent/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "BUY VS RENT WEALTH ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if results.RunID != "" {
		fmt.Fprintf(&buf, "Run: %s\n", results.RunID)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results.Assumptions) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, sc := range results.Results() {
		writeScenarioBreakdown(&buf, i+1, sc)
	}

	writeCheckpointTable(&buf, results.Checkpoints)
	writeYearlySnapshots(&buf, results)

	fmt.Fprintln(&buf, "BREAK-EVEN")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	if be := results.BreakEven; be != nil {
		fmt.Fprintf(&buf, "Wealth lead changes at month %d (year %s): %s ahead\n", be.Month, be.Year.StringFixed(2), be.Leader)
		fmt.Fprintf(&buf, "  Buy wealth:  %s\n", FormatCurrency(be.BuyWealth))
		fmt.Fprintf(&buf, "  Rent wealth: %s\n", FormatCurrency(be.RentWealth))
	} else {
		fmt.Fprintln(&buf, "The wealth lead never changes hands")
	}
	fmt.Fprintln(&buf)

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintf(&buf, "RECOMMENDATION: %s ends %s (%s) ahead after %d months\n",
			rec.ScenarioName, FormatCurrency(rec.WealthAdvantage), FormatPercentage(rec.PercentageAdvantage), rec.Month)
	}
	return buf.Bytes(), nil
}

func writeScenarioBreakdown(w io.Writer, index int, sc *domain.SimulationResult) {
	fmt.Fprintf(w, "SCENARIO %d: %s\n", index, sc.Name)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	p := sc.Params
	fmt.Fprintf(w, "  Home Price:            %s\n", FormatCurrency(p.HomePrice))
	fmt.Fprintf(w, "  Down Payment:          %s\n", FormatCurrency(p.DownPaymentAmount()))
	fmt.Fprintf(w, "  Loan Amount:           %s\n", FormatCurrency(p.LoanAmount()))
	fmt.Fprintf(w, "  Monthly Payment:       %s\n", FormatCurrency(sc.MonthlyPayment))
	fmt.Fprintf(w, "  Monthly Rent:          %s\n", FormatCurrency(p.MonthlyRent))
	fmt.Fprintf(w, "  Initial Net Worth:     %s\n", FormatCurrency(sc.InitialNetWorth))

	final := sc.Final()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  AFTER %d MONTHS:\n", final.Month)
	fmt.Fprintf(w, "  Home Value:            %s\n", FormatCurrency(final.HomeAsset))
	fmt.Fprintf(w, "  Remaining Debt:        %s\n", FormatCurrency(final.HomeDebt))
	fmt.Fprintf(w, "  Home Equity:           %s\n", FormatCurrency(final.HomeEquity))
	fmt.Fprintf(w, "  Savings:               %s\n", FormatCurrency(final.Savings))
	fmt.Fprintf(w, "  Net Wealth:            %s\n", FormatCurrency(final.Wealth))
	fmt.Fprintf(w, "  Total Interest Paid:   %s\n", FormatCurrency(final.TotalInterestPaid))
	fmt.Fprintf(w, "  Total Rent Paid:       %s\n", FormatCurrency(final.TotalRentPaid))
	fmt.Fprintln(w)
}

func writeCheckpointTable(w io.Writer, checkpoints []domain.Checkpoint) {
	if len(checkpoints) == 0 {
		return
	}
	fmt.Fprintln(w, "CHECKPOINTS (rent minus buy)")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "%-6s %16s %16s %16s %14s\n", "Year", "Buy Wealth", "Rent Wealth", "Difference", "Buy Debt")
	for _, cp := range checkpoints {
		fmt.Fprintf(w, "%-6d %16s %16s %16s %14s\n", cp.Year,
			FormatCurrency(cp.BuyWealth), FormatCurrency(cp.RentWealth),
			FormatCurrency(cp.Difference), FormatCurrency(cp.BuyDebt))
	}
	fmt.Fprintln(w)
}

func writeYearlySnapshots(w io.Writer, results *domain.ScenarioComparison) {
	if results.Buy == nil || results.Rent == nil {
		return
	}
	buyRows := YearEndRecords(results.Buy)
	rentRows := YearEndRecords(results.Rent)
	n := len(buyRows)
	if len(rentRows) < n {
		n = len(rentRows)
	}
	if n == 0 {
		return
	}

	fmt.Fprintln(w, "YEAR-END SNAPSHOTS")
	fmt.Fprintln(w, strings.Repeat("-", 81))
	fmt.Fprintf(w, "%-6s %16s %16s %16s %16s %8s\n", "Year", "Buy Wealth", "Buy Equity", "Buy Debt", "Rent Wealth", "Paid")
	for i := 0; i < n; i++ {
		b, r := buyRows[i], rentRows[i]
		fmt.Fprintf(w, "%-6d %16s %16s %16s %16s %8s\n", b.Month/12,
			FormatCurrency(b.Wealth), FormatCurrency(b.HomeEquity), FormatCurrency(b.HomeDebt),
			FormatCurrency(r.Wealth), FormatPercentage(b.PctLoanPaid))
	}
	fmt.Fprintln(w)
}
