package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is a marginal rate applied up to a cumulative income ceiling
type TaxBracket struct {
	Rate    decimal.Decimal `yaml:"rate" json:"rate"`
	Ceiling decimal.Decimal `yaml:"ceiling" json:"ceiling"`
}

// TaxRules overrides the built-in tax tables; empty fields fall back to defaults
type TaxRules struct {
	SingleBrackets []TaxBracket     `yaml:"single_brackets,omitempty" json:"single_brackets,omitempty"`
	JointBrackets  []TaxBracket     `yaml:"joint_brackets,omitempty" json:"joint_brackets,omitempty"`
	StateRate      *decimal.Decimal `yaml:"state_rate,omitempty" json:"state_rate,omitempty"`
	PayrollRate    *decimal.Decimal `yaml:"payroll_rate,omitempty" json:"payroll_rate,omitempty"`
}

// Configuration represents the complete input configuration
type Configuration struct {
	Income          IncomeAssumptions  `yaml:"income" json:"income"`
	Buy             ScenarioParameters `yaml:"buy" json:"buy"`
	Rent            ScenarioParameters `yaml:"rent" json:"rent"`
	CheckpointYears []int              `yaml:"checkpoint_years,omitempty" json:"checkpoint_years,omitempty"`
	Tax             TaxRules           `yaml:"tax,omitempty" json:"tax,omitempty"`
}

// DefaultCheckpointYears are used when the configuration does not list any
var DefaultCheckpointYears = []int{1, 2, 5, 10}

// Checkpoints returns the configured checkpoint years or the defaults
func (c *Configuration) Checkpoints() []int {
	if len(c.CheckpointYears) == 0 {
		return DefaultCheckpointYears
	}
	return c.CheckpointYears
}

// HorizonMonths is the number of income entries both scenarios need
func (c *Configuration) HorizonMonths() int {
	months := c.Buy.TermMonths()
	if m := c.Rent.TermMonths(); m > months {
		months = m
	}
	// bootstrap purchase month plus one month per payment
	return months + 1
}

// GenerateAssumptions creates dynamic assumptions list from actual config values
func (c *Configuration) GenerateAssumptions() []string {
	pct := func(d decimal.Decimal) float64 { return d.Mul(decimal.NewFromInt(100)).InexactFloat64() }
	filing := "single"
	if c.Buy.FilingJoint {
		filing = "married filing jointly"
	}
	return []string{
		fmt.Sprintf("Starting income: $%s annually, raised %.1f%% each year", c.Income.StartingAnnualIncome.StringFixed(2), pct(c.Income.AnnualRaiseRate)),
		fmt.Sprintf("Mortgage: %.2f%% fixed for %d years", pct(c.Buy.InterestRate), c.Buy.MortgageYears),
		fmt.Sprintf("Home appreciation: %.1f%% annually, compounded monthly", pct(c.Buy.HomeAppreciationRate)),
		fmt.Sprintf("Investment return on savings: %.1f%% (buy) / %.1f%% (rent) annually", pct(c.Buy.InvestmentRate), pct(c.Rent.InvestmentRate)),
		fmt.Sprintf("Property tax: %.2f%% of purchase price annually", pct(c.Buy.PropertyTaxRate)),
		fmt.Sprintf("Tax filing status: %s", filing),
		"Tax brackets: single-year table held constant (no inflation indexing)",
		"Payroll tax: flat rate, no Social Security wage base cap",
	}
}
