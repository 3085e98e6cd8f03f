package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is wrapped by every configuration-level validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Default scenario names used when the file leaves them blank
const (
	DefaultBuyName  = "buy"
	DefaultRentName = "rent"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document. JSON parses as YAML.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// SaveToFile writes the configuration as YAML
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ApplyDefaults fills in scenario names and checkpoint years left blank
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	if config.Buy.Name == "" {
		config.Buy.Name = DefaultBuyName
	}
	if config.Rent.Name == "" {
		config.Rent.Name = DefaultRentName
	}
	if len(config.CheckpointYears) == 0 {
		config.CheckpointYears = append([]int(nil), domain.DefaultCheckpointYears...)
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateIncome(&config.Income); err != nil {
		return fmt.Errorf("income validation failed: %w", err)
	}

	if err := config.Buy.Validate(); err != nil {
		return fmt.Errorf("buy scenario validation failed: %w", err)
	}
	if err := config.Rent.Validate(); err != nil {
		return fmt.Errorf("rent scenario validation failed: %w", err)
	}
	if config.Buy.Name == config.Rent.Name {
		return fmt.Errorf("%w: scenario names must differ, both are %q", ErrInvalidConfiguration, config.Buy.Name)
	}

	for _, year := range config.CheckpointYears {
		if year <= 0 {
			return fmt.Errorf("%w: checkpoint years must be positive, got %d", ErrInvalidConfiguration, year)
		}
	}

	if err := ip.validateTaxRules(&config.Tax); err != nil {
		return fmt.Errorf("tax rules validation failed: %w", err)
	}

	return nil
}

func (ip *InputParser) validateIncome(income *domain.IncomeAssumptions) error {
	if !income.StartingAnnualIncome.IsPositive() {
		return fmt.Errorf("%w: starting annual income must be positive", ErrInvalidConfiguration)
	}
	// allow pay cuts but not a loss of all income
	if income.AnnualRaiseRate.LessThanOrEqual(decimal.NewFromInt(-1)) || income.AnnualRaiseRate.GreaterThan(decimal.NewFromFloat(0.5)) {
		return fmt.Errorf("%w: annual raise rate must be between -100%% and 50%%, got %s%%",
			ErrInvalidConfiguration, income.AnnualRaiseRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}
	return nil
}

func (ip *InputParser) validateTaxRules(rules *domain.TaxRules) error {
	if err := validateBrackets("single", rules.SingleBrackets); err != nil {
		return err
	}
	if err := validateBrackets("joint", rules.JointBrackets); err != nil {
		return err
	}
	if rules.StateRate != nil && !isFraction(*rules.StateRate) {
		return fmt.Errorf("%w: state rate must be between 0 and 1", ErrInvalidConfiguration)
	}
	if rules.PayrollRate != nil && !isFraction(*rules.PayrollRate) {
		return fmt.Errorf("%w: payroll rate must be between 0 and 1", ErrInvalidConfiguration)
	}
	return nil
}

// validateBrackets requires ascending ceilings and rates within [0, 1]
func validateBrackets(label string, brackets []domain.TaxBracket) error {
	previous := decimal.Zero
	for i, b := range brackets {
		if !isFraction(b.Rate) {
			return fmt.Errorf("%w: %s bracket %d rate must be between 0 and 1", ErrInvalidConfiguration, label, i)
		}
		if !b.Ceiling.GreaterThan(previous) {
			return fmt.Errorf("%w: %s bracket %d ceiling %s must exceed %s",
				ErrInvalidConfiguration, label, i, b.Ceiling.String(), previous.String())
		}
		previous = b.Ceiling
	}
	return nil
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}

// CreateExampleConfiguration creates an example configuration for testing
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Income: domain.IncomeAssumptions{
			StartingAnnualIncome: decimal.NewFromInt(125000),
			AnnualRaiseRate:      decimal.NewFromFloat(0.03),
		},
		Buy: domain.ScenarioParameters{
			Name:                 DefaultBuyName,
			HomePrice:            decimal.NewFromInt(600000),
			DownPaymentFraction:  decimal.NewFromFloat(0.20),
			InterestRate:         decimal.NewFromFloat(0.025),
			MortgageYears:        15,
			MonthlyHOA:           decimal.NewFromInt(400),
			PropertyTaxRate:      decimal.NewFromFloat(0.0125),
			HomeAppreciationRate: decimal.NewFromFloat(0.03),
			InvestmentRate:       decimal.NewFromFloat(0.05),
			HomeRepairRate:       decimal.NewFromFloat(0.005),
			FilingJoint:          true,
			InitialSavings:       decimal.NewFromInt(150000),
		},
		Rent: domain.ScenarioParameters{
			Name:           DefaultRentName,
			HomePrice:      decimal.NewFromFloat(0.01),
			DownPayment:    decimal.NewFromFloat(0.01),
			InterestRate:   decimal.NewFromFloat(0.025),
			MortgageYears:  15,
			MonthlyRent:    decimal.NewFromInt(2200),
			InvestmentRate: decimal.NewFromFloat(0.05),
			FilingJoint:    true,
			InitialSavings: decimal.NewFromInt(150000),
		},
		CheckpointYears: append([]int(nil), domain.DefaultCheckpointYears...),
	}
}
