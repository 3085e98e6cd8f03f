package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthlyRecord is one row of simulation output: the month's deltas followed by the
// running balances after applying them.
//
// PctLoanPaid is 100 × (1 − HomeDebt/OriginalLoan) on every row, so the opening row of a
// purchase with no prior home debt reads 100 before the loan is drawn on row 1.
type MonthlyRecord struct {
	Month         int `json:"month"`          // row index, 0 and 1 are bootstrap rows
	PaymentNumber int `json:"payment_number"` // 1-based amortization month, 0 for bootstrap rows

	// Flows
	Income      MonthlyIncome   `json:"income"`
	Expenses    MonthlyExpenses `json:"expenses"`
	DownPayment decimal.Decimal `json:"down_payment"`

	// Deltas
	DeltaHomeAsset decimal.Decimal `json:"delta_home_asset"`
	DeltaDebt      decimal.Decimal `json:"delta_debt"`
	DeltaSavings   decimal.Decimal `json:"delta_savings"`
	DeltaWealth    decimal.Decimal `json:"delta_wealth"`

	// Cumulative balances
	HomeAsset          decimal.Decimal `json:"home_asset"`
	HomeDebt           decimal.Decimal `json:"home_debt"`
	HomeEquity         decimal.Decimal `json:"home_equity"`
	PctLoanPaid        decimal.Decimal `json:"pct_loan_paid"`
	Savings            decimal.Decimal `json:"savings"`
	Wealth             decimal.Decimal `json:"wealth"`
	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid"`
	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid"`
	TotalRentPaid      decimal.Decimal `json:"total_rent_paid"`
}

// IsBootstrap reports whether the row describes the purchase event rather than a payment month
func (mr *MonthlyRecord) IsBootstrap() bool {
	return mr.PaymentNumber == 0
}

// SimulationResult is the ordered output of one run, indexed by month. It is built once and
// read-only afterwards.
type SimulationResult struct {
	Name            string             `json:"name"`
	Params          ScenarioParameters `json:"params"`
	OriginalLoan    decimal.Decimal    `json:"original_loan"`
	MonthlyPayment  decimal.Decimal    `json:"monthly_payment"`
	InitialNetWorth decimal.Decimal    `json:"initial_net_worth"`
	Records         []MonthlyRecord    `json:"records"`
}

// Len returns the number of records
func (sr *SimulationResult) Len() int {
	return len(sr.Records)
}

// At returns the record for a month index
func (sr *SimulationResult) At(month int) (MonthlyRecord, bool) {
	if month < 0 || month >= len(sr.Records) {
		return MonthlyRecord{}, false
	}
	return sr.Records[month], true
}

// WealthAt returns cumulative wealth at a month index
func (sr *SimulationResult) WealthAt(month int) (decimal.Decimal, error) {
	rec, ok := sr.At(month)
	if !ok {
		return decimal.Zero, fmt.Errorf("month %d out of range [0, %d)", month, len(sr.Records))
	}
	return rec.Wealth, nil
}

// Final returns the last record, or the zero record for an empty result
func (sr *SimulationResult) Final() MonthlyRecord {
	if len(sr.Records) == 0 {
		return MonthlyRecord{}
	}
	return sr.Records[len(sr.Records)-1]
}

// RecordForPayment returns the record carrying a given amortization payment number
func (sr *SimulationResult) RecordForPayment(payment int) (MonthlyRecord, bool) {
	// payment m lands on row m+1
	rec, ok := sr.At(payment + 1)
	if !ok || rec.PaymentNumber != payment || payment < 1 {
		return MonthlyRecord{}, false
	}
	return rec, true
}

// Payment is one row of an amortization schedule
type Payment struct {
	Number              int             `json:"number"`
	Payment             decimal.Decimal `json:"payment"`
	Interest            decimal.Decimal `json:"interest"`
	Principal           decimal.Decimal `json:"principal"`
	RemainingBalance    decimal.Decimal `json:"remaining_balance"`
	CumulativeInterest  decimal.Decimal `json:"cumulative_interest"`
	CumulativePrincipal decimal.Decimal `json:"cumulative_principal"`
}

// Checkpoint compares the two scenarios at the end of a given year
type Checkpoint struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	BuyWealth  decimal.Decimal `json:"buy_wealth"`
	RentWealth decimal.Decimal `json:"rent_wealth"`
	Difference decimal.Decimal `json:"difference"` // rent minus buy
	BuyEquity  decimal.Decimal `json:"buy_equity"`
	BuyDebt    decimal.Decimal `json:"buy_debt"`
}

// WealthBreakEven marks the first month where the wealth lead changes hands
type WealthBreakEven struct {
	Month      int             `json:"month"`
	Year       decimal.Decimal `json:"year"` // fractional years since month 0
	BuyWealth  decimal.Decimal `json:"buy_wealth"`
	RentWealth decimal.Decimal `json:"rent_wealth"`
	Leader     string          `json:"leader"` // scenario ahead after the crossover
}

// ScenarioComparison is the buy-vs-rent result handed to the output formatters
type ScenarioComparison struct {
	RunID       string            `json:"run_id"`
	Buy         *SimulationResult `json:"buy"`
	Rent        *SimulationResult `json:"rent"`
	Checkpoints []Checkpoint      `json:"checkpoints"`
	BreakEven   *WealthBreakEven  `json:"break_even,omitempty"`
	Assumptions []string          `json:"assumptions"`
}

// Results returns the two runs in display order
func (sc *ScenarioComparison) Results() []*SimulationResult {
	var out []*SimulationResult
	if sc.Buy != nil {
		out = append(out, sc.Buy)
	}
	if sc.Rent != nil {
		out = append(out, sc.Rent)
	}
	return out
}
