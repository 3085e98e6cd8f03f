package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidScenario is wrapped by every scenario validation failure.
var ErrInvalidScenario = errors.New("invalid scenario parameters")

// MaxMortgageYears bounds the simulated horizon.
const MaxMortgageYears = 50

// ScenarioParameters is the immutable input to one simulation run.
// All rates are annual fractions; amounts prefixed Monthly are per month.
type ScenarioParameters struct {
	Name                 string          `yaml:"name" json:"name"`
	HomePrice            decimal.Decimal `yaml:"home_price" json:"home_price"`
	DownPayment          decimal.Decimal `yaml:"down_payment,omitempty" json:"down_payment"`
	DownPaymentFraction  decimal.Decimal `yaml:"down_payment_fraction,omitempty" json:"down_payment_fraction"`
	InterestRate         decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
	MortgageYears        int             `yaml:"mortgage_years" json:"mortgage_years"`
	MonthlyRent          decimal.Decimal `yaml:"monthly_rent,omitempty" json:"monthly_rent"`
	MonthlyHOA           decimal.Decimal `yaml:"monthly_hoa,omitempty" json:"monthly_hoa"`
	PropertyTaxRate      decimal.Decimal `yaml:"property_tax_rate,omitempty" json:"property_tax_rate"`
	HomeAppreciationRate decimal.Decimal `yaml:"home_appreciation_rate,omitempty" json:"home_appreciation_rate"`
	InvestmentRate       decimal.Decimal `yaml:"investment_rate,omitempty" json:"investment_rate"`
	HomeRepairRate       decimal.Decimal `yaml:"home_repair_rate,omitempty" json:"home_repair_rate"`
	FilingJoint          bool            `yaml:"filing_joint" json:"filing_joint"`

	// Mid-stream starts: balances held before the simulated purchase
	InitialSavings   decimal.Decimal `yaml:"initial_savings,omitempty" json:"initial_savings"`
	InitialHomeAsset decimal.Decimal `yaml:"initial_home_asset,omitempty" json:"initial_home_asset"`
	InitialHomeDebt  decimal.Decimal `yaml:"initial_home_debt,omitempty" json:"initial_home_debt"`
}

// TermMonths returns the number of monthly mortgage payments
func (sp *ScenarioParameters) TermMonths() int {
	return sp.MortgageYears * 12
}

// DownPaymentAmount resolves the down payment from either the amount or the fraction of price
func (sp *ScenarioParameters) DownPaymentAmount() decimal.Decimal {
	if !sp.DownPaymentFraction.IsZero() {
		return sp.HomePrice.Mul(sp.DownPaymentFraction)
	}
	return sp.DownPayment
}

// LoanAmount is the financed part of the purchase price
func (sp *ScenarioParameters) LoanAmount() decimal.Decimal {
	return sp.HomePrice.Sub(sp.DownPaymentAmount())
}

// OriginalLoan is the total debt the loan-paid percentage is measured against
func (sp *ScenarioParameters) OriginalLoan() decimal.Decimal {
	return sp.InitialHomeDebt.Add(sp.LoanAmount())
}

// InitialNetWorth is the wealth carried into month 0
func (sp *ScenarioParameters) InitialNetWorth() decimal.Decimal {
	return sp.InitialSavings.Add(sp.InitialHomeAsset).Sub(sp.InitialHomeDebt)
}

// IsRenting reports whether the scenario pays rent
func (sp *ScenarioParameters) IsRenting() bool {
	return sp.MonthlyRent.IsPositive()
}

// Validate checks the parameters before any month is simulated
func (sp *ScenarioParameters) Validate() error {
	if sp.MortgageYears <= 0 {
		return invalid("mortgage term must be positive, got %d years", sp.MortgageYears)
	}
	if sp.MortgageYears > MaxMortgageYears {
		return invalid("mortgage term cannot exceed %d years, got %d", MaxMortgageYears, sp.MortgageYears)
	}
	if sp.HomePrice.IsNegative() {
		return invalid("home price cannot be negative")
	}
	if sp.DownPayment.IsNegative() {
		return invalid("down payment cannot be negative")
	}
	if !sp.DownPayment.IsZero() && !sp.DownPaymentFraction.IsZero() {
		return invalid("specify either down payment or down payment fraction, not both")
	}
	if sp.DownPaymentFraction.IsNegative() || sp.DownPaymentFraction.GreaterThan(decimal.NewFromInt(1)) {
		return invalid("down payment fraction must be between 0 and 1")
	}
	if sp.DownPaymentAmount().GreaterThan(sp.HomePrice) {
		return invalid("down payment (%s) cannot exceed home price (%s)",
			sp.DownPaymentAmount().StringFixed(2), sp.HomePrice.StringFixed(2))
	}
	if sp.InterestRate.IsNegative() {
		return invalid("interest rate cannot be negative")
	}

	nonNegative := []struct {
		label string
		value decimal.Decimal
	}{
		{"monthly rent", sp.MonthlyRent},
		{"monthly HOA", sp.MonthlyHOA},
		{"property tax rate", sp.PropertyTaxRate},
		{"home repair rate", sp.HomeRepairRate},
		{"initial savings", sp.InitialSavings},
		{"initial home asset", sp.InitialHomeAsset},
		{"initial home debt", sp.InitialHomeDebt},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return invalid("%s cannot be negative", f.label)
		}
	}

	minusOne := decimal.NewFromInt(-1)
	if sp.HomeAppreciationRate.LessThanOrEqual(minusOne) {
		return invalid("home appreciation rate must be greater than -100%%")
	}
	if sp.InvestmentRate.LessThanOrEqual(minusOne) {
		return invalid("investment rate must be greater than -100%%")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}
