package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeSeries holds one pre-tax income amount per simulated month. Entry 0 is the
// income of month 1 (the purchase month).
type IncomeSeries []decimal.Decimal

// Total sums the series
func (s IncomeSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s {
		total = total.Add(v)
	}
	return total
}

// IncomeAssumptions drives the salary-growth income generator
type IncomeAssumptions struct {
	StartingAnnualIncome decimal.Decimal `yaml:"starting_annual_income" json:"starting_annual_income"`
	AnnualRaiseRate      decimal.Decimal `yaml:"annual_raise_rate,omitempty" json:"annual_raise_rate"`
}

// MonthlyIncome groups the income side of one simulated month
type MonthlyIncome struct {
	Earned         decimal.Decimal `json:"earned"`
	InvestmentGain decimal.Decimal `json:"investment_gain"`
}

// Total returns the month's combined income
func (mi MonthlyIncome) Total() decimal.Decimal {
	return mi.Earned.Add(mi.InvestmentGain)
}

// MonthlyExpenses groups the cash outflows of one simulated month
type MonthlyExpenses struct {
	Principal   decimal.Decimal `json:"principal"`
	Interest    decimal.Decimal `json:"interest"`
	HOA         decimal.Decimal `json:"hoa"`
	PropertyTax decimal.Decimal `json:"property_tax"`
	IncomeTax   decimal.Decimal `json:"income_tax"`
	Repairs     decimal.Decimal `json:"repairs"`
	Rent        decimal.Decimal `json:"rent"`
}

// MortgagePayment is the principal plus interest paid this month
func (me MonthlyExpenses) MortgagePayment() decimal.Decimal {
	return me.Principal.Add(me.Interest)
}

// Total returns the month's combined outflow
func (me MonthlyExpenses) Total() decimal.Decimal {
	return me.MortgagePayment().
		Add(me.HOA).
		Add(me.PropertyTax).
		Add(me.IncomeTax).
		Add(me.Repairs).
		Add(me.Rent)
}
