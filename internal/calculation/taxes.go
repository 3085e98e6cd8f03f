package calculation

import (
	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/pkg/finmath"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal Tax Brackets: a single-year table held constant for every simulated month
//    - Separate single and married-filing-jointly tables
//    - No standard deduction; the only adjustment is deductible mortgage interest
//
// 2. State Tax: 9% flat rate on adjusted gross income
//
// 3. Payroll Tax: 7.65% flat (Social Security + Medicare), no wage base cap
//
// 4. Monthly estimates annualize one month of income and interest, so a month's tax is
//    1/12 of the tax on twelve identical months. There is no annual reconciliation.

// TopBracketCeiling stands in for an unbounded top bracket.
var TopBracketCeiling = decimal.NewFromInt(999999999999)

// DefaultSingleBrackets are the single-filer federal brackets
var DefaultSingleBrackets = []domain.TaxBracket{
	{Rate: decimal.NewFromFloat(0.10), Ceiling: decimal.NewFromInt(9875)},
	{Rate: decimal.NewFromFloat(0.12), Ceiling: decimal.NewFromInt(40125)},
	{Rate: decimal.NewFromFloat(0.22), Ceiling: decimal.NewFromInt(85525)},
	{Rate: decimal.NewFromFloat(0.24), Ceiling: decimal.NewFromInt(163300)},
	{Rate: decimal.NewFromFloat(0.32), Ceiling: decimal.NewFromInt(207340)},
	{Rate: decimal.NewFromFloat(0.35), Ceiling: decimal.NewFromInt(311025)},
	{Rate: decimal.NewFromFloat(0.37), Ceiling: TopBracketCeiling},
}

// DefaultJointBrackets are the married-filing-jointly federal brackets
var DefaultJointBrackets = []domain.TaxBracket{
	{Rate: decimal.NewFromFloat(0.10), Ceiling: decimal.NewFromInt(19750)},
	{Rate: decimal.NewFromFloat(0.12), Ceiling: decimal.NewFromInt(80250)},
	{Rate: decimal.NewFromFloat(0.22), Ceiling: decimal.NewFromInt(171050)},
	{Rate: decimal.NewFromFloat(0.24), Ceiling: decimal.NewFromInt(326600)},
	{Rate: decimal.NewFromFloat(0.32), Ceiling: decimal.NewFromInt(414700)},
	{Rate: decimal.NewFromFloat(0.35), Ceiling: decimal.NewFromInt(622050)},
	{Rate: decimal.NewFromFloat(0.37), Ceiling: TopBracketCeiling},
}

var (
	DefaultStateRate   = decimal.NewFromFloat(0.09)
	DefaultPayrollRate = decimal.NewFromFloat(0.0765)
)

// FederalTaxCalculator handles progressive federal income tax
type FederalTaxCalculator struct {
	Brackets       []domain.TaxBracket // married filing jointly
	BracketsSingle []domain.TaxBracket
}

// NewFederalTaxCalculator creates a federal calculator with the built-in tables
func NewFederalTaxCalculator() *FederalTaxCalculator {
	return &FederalTaxCalculator{
		Brackets:       DefaultJointBrackets,
		BracketsSingle: DefaultSingleBrackets,
	}
}

// NewFederalTaxCalculatorWithConfig creates a federal calculator, falling back to the
// built-in tables for any table the rules leave empty
func NewFederalTaxCalculatorWithConfig(rules domain.TaxRules) *FederalTaxCalculator {
	ftc := NewFederalTaxCalculator()
	if len(rules.JointBrackets) > 0 {
		ftc.Brackets = rules.JointBrackets
	}
	if len(rules.SingleBrackets) > 0 {
		ftc.BracketsSingle = rules.SingleBrackets
	}
	return ftc
}

// CalculateFederalTax walks the brackets in ascending order and stops at the bracket
// containing agi
func (ftc *FederalTaxCalculator) CalculateFederalTax(agi decimal.Decimal, filingJoint bool) decimal.Decimal {
	brackets := ftc.BracketsSingle
	if filingJoint {
		brackets = ftc.Brackets
	}
	return bracketTax(finmath.FloorZero(agi), brackets)
}

func bracketTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	var totalTax decimal.Decimal
	previousCeiling := decimal.Zero
	for i, bracket := range brackets {
		ceiling := bracket.Ceiling
		// the top bracket is open-ended
		if i == len(brackets)-1 && income.GreaterThan(ceiling) {
			ceiling = income
		}
		incomeInBracket := decimal.Min(income, ceiling).Sub(previousCeiling)
		if incomeInBracket.IsPositive() {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
		if income.LessThan(ceiling) {
			break
		}
		previousCeiling = ceiling
	}
	return totalTax
}

// StateTaxCalculator applies a flat state income tax
type StateTaxCalculator struct {
	Rate decimal.Decimal
}

// NewStateTaxCalculator creates a state calculator with the default rate
func NewStateTaxCalculator() *StateTaxCalculator {
	return &StateTaxCalculator{Rate: DefaultStateRate}
}

// CalculateTax returns the flat state tax on agi
func (stc *StateTaxCalculator) CalculateTax(agi decimal.Decimal) decimal.Decimal {
	return finmath.FloorZero(agi).Mul(stc.Rate)
}

// PayrollTaxCalculator applies a combined Social Security and Medicare rate
type PayrollTaxCalculator struct {
	Rate decimal.Decimal
}

// NewPayrollTaxCalculator creates a payroll calculator with the default rate
func NewPayrollTaxCalculator() *PayrollTaxCalculator {
	return &PayrollTaxCalculator{Rate: DefaultPayrollRate}
}

// CalculateTax returns the flat payroll tax on agi
func (ptc *PayrollTaxCalculator) CalculateTax(agi decimal.Decimal) decimal.Decimal {
	return finmath.FloorZero(agi).Mul(ptc.Rate)
}

// AnnualTax is the estimated annual tax split by component
type AnnualTax struct {
	AGI     decimal.Decimal `json:"agi"`
	Federal decimal.Decimal `json:"federal"`
	State   decimal.Decimal `json:"state"`
	Payroll decimal.Decimal `json:"payroll"`
}

// Total sums the three components
func (at AnnualTax) Total() decimal.Decimal {
	return at.Federal.Add(at.State).Add(at.Payroll)
}

// PayrollTaxEstimator aggregates the federal, state and payroll calculators
type PayrollTaxEstimator struct {
	FederalTaxCalc *FederalTaxCalculator
	StateTaxCalc   *StateTaxCalculator
	PayrollTaxCalc *PayrollTaxCalculator
}

// NewPayrollTaxEstimator creates an estimator with the built-in tables and rates
func NewPayrollTaxEstimator() *PayrollTaxEstimator {
	return &PayrollTaxEstimator{
		FederalTaxCalc: NewFederalTaxCalculator(),
		StateTaxCalc:   NewStateTaxCalculator(),
		PayrollTaxCalc: NewPayrollTaxCalculator(),
	}
}

// NewPayrollTaxEstimatorWithConfig creates an estimator from configurable tax rules
func NewPayrollTaxEstimatorWithConfig(rules domain.TaxRules) *PayrollTaxEstimator {
	te := &PayrollTaxEstimator{
		FederalTaxCalc: NewFederalTaxCalculatorWithConfig(rules),
		StateTaxCalc:   NewStateTaxCalculator(),
		PayrollTaxCalc: NewPayrollTaxCalculator(),
	}
	if rules.StateRate != nil {
		te.StateTaxCalc.Rate = *rules.StateRate
	}
	if rules.PayrollRate != nil {
		te.PayrollTaxCalc.Rate = *rules.PayrollRate
	}
	return te
}

// EstimateAnnualTax estimates annual taxes on gross income less deductible adjustments.
// A non-positive AGI produces zero tax in every component.
func (te *PayrollTaxEstimator) EstimateAnnualTax(grossAnnualIncome, annualAdjustments decimal.Decimal, filingJoint bool) AnnualTax {
	agi := grossAnnualIncome.Sub(annualAdjustments)
	return AnnualTax{
		AGI:     agi,
		Federal: te.FederalTaxCalc.CalculateFederalTax(agi, filingJoint),
		State:   te.StateTaxCalc.CalculateTax(agi),
		Payroll: te.PayrollTaxCalc.CalculateTax(agi),
	}
}

// MonthlyIncomeTax annualizes one month of income and deductible interest, estimates the
// annual tax, and spreads it back over periods
func (te *PayrollTaxEstimator) MonthlyIncomeTax(monthlyIncome, monthlyInterestPaid decimal.Decimal, periods int, filingJoint bool) decimal.Decimal {
	if periods <= 0 {
		periods = finmath.PeriodsPerYear
	}
	annual := te.EstimateAnnualTax(finmath.Annualize(monthlyIncome), finmath.Annualize(monthlyInterestPaid), filingJoint)
	return annual.Total().Div(decimal.NewFromInt(int64(periods)))
}
