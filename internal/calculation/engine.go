package calculation

import (
	"context"
	"fmt"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/pkg/finmath"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// NetIncomeCalculator derives annual take-home pay from gross income
type NetIncomeCalculator struct {
	TaxCalc *PayrollTaxEstimator
	Logger  Logger
}

func NewNetIncomeCalculator(taxCalc *PayrollTaxEstimator, logger Logger) *NetIncomeCalculator {
	return &NetIncomeCalculator{
		TaxCalc: taxCalc,
		Logger:  logger,
	}
}

// Calculate returns gross income less all three payroll taxes. With debug set, the breakdown is logged.
func (nic *NetIncomeCalculator) Calculate(grossAnnualIncome, annualAdjustments decimal.Decimal, filingJoint, debug bool) decimal.Decimal {
	tax := nic.TaxCalc.EstimateAnnualTax(grossAnnualIncome, annualAdjustments, filingJoint)
	netIncome := grossAnnualIncome.Sub(tax.Total())

	if debug {
		nic.Logger.Debugf("NET INCOME CALCULATION BREAKDOWN:")
		nic.Logger.Debugf("=================================")
		nic.Logger.Debugf("Gross Income:           $%s", grossAnnualIncome.StringFixed(2))
		nic.Logger.Debugf("Adjustments:            $%s", annualAdjustments.StringFixed(2))
		nic.Logger.Debugf("Adjusted Gross Income:  $%s", tax.AGI.StringFixed(2))
		nic.Logger.Debugf("")
		nic.Logger.Debugf("DEDUCTIONS:")
		nic.Logger.Debugf("  Federal Tax:          $%s", tax.Federal.StringFixed(2))
		nic.Logger.Debugf("  State Tax:            $%s", tax.State.StringFixed(2))
		nic.Logger.Debugf("  Payroll Tax:          $%s", tax.Payroll.StringFixed(2))
		nic.Logger.Debugf("  Total Deductions:     $%s", tax.Total().StringFixed(2))
		nic.Logger.Debugf("")
		nic.Logger.Debugf("NET TAKE-HOME:          $%s", netIncome.StringFixed(2))
		nic.Logger.Debugf("Monthly Take-Home:      $%s", finmath.Monthly(netIncome).StringFixed(2))
	}

	return netIncome
}

// CalculationEngine orchestrates the buy and rent simulations
type CalculationEngine struct {
	TaxCalc       *PayrollTaxEstimator
	NetIncomeCalc *NetIncomeCalculator
	Debug         bool // log year-end balances while simulating
	Logger        Logger
}

// NewCalculationEngine creates a new calculation engine with the built-in tax tables
func NewCalculationEngine() *CalculationEngine {
	taxCalc := NewPayrollTaxEstimator()
	logger := NopLogger{}
	return &CalculationEngine{
		TaxCalc:       taxCalc,
		NetIncomeCalc: NewNetIncomeCalculator(taxCalc, logger),
		Logger:        logger,
	}
}

// NewCalculationEngineWithConfig creates a new calculation engine with configurable tax settings
func NewCalculationEngineWithConfig(rules domain.TaxRules) *CalculationEngine {
	taxCalc := NewPayrollTaxEstimatorWithConfig(rules)
	logger := NopLogger{}
	return &CalculationEngine{
		TaxCalc:       taxCalc,
		NetIncomeCalc: NewNetIncomeCalculator(taxCalc, logger),
		Logger:        logger,
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	if ce.NetIncomeCalc != nil {
		ce.NetIncomeCalc.Logger = l
	}
}

// RunScenario simulates one scenario against a precomputed income series
func (ce *CalculationEngine) RunScenario(ctx context.Context, params *domain.ScenarioParameters, income domain.IncomeSeries) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ce.Logger.Infof("simulating %q: price=%s down=%s rate=%s term=%dy",
		params.Name, params.HomePrice.StringFixed(2), params.DownPaymentAmount().StringFixed(2),
		params.InterestRate.String(), params.MortgageYears)

	result, err := ce.GenerateMonthlyProjection(params, income)
	if err != nil {
		ce.Logger.Errorf("scenario %q failed: %v", params.Name, err)
		return nil, fmt.Errorf("scenario %q: %w", params.Name, err)
	}

	final := result.Final()
	ce.Logger.Infof("scenario %q finished after %d months: wealth=%s equity=%s savings=%s",
		params.Name, result.Len()-1, final.Wealth.StringFixed(2), final.HomeEquity.StringFixed(2), final.Savings.StringFixed(2))
	return result, nil
}

// RunComparison simulates the buy and rent scenarios on a shared income series and compares them
func (ce *CalculationEngine) RunComparison(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	for _, params := range []*domain.ScenarioParameters{&config.Buy, &config.Rent} {
		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", params.Name, err)
		}
	}

	income := GenerateIncomeSeries(config.Income, config.HorizonMonths())
	ce.Logger.Debugf("generated %d months of income", len(income))

	var buy, rent *domain.SimulationResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		buy, err = ce.RunScenario(gctx, &config.Buy, income)
		return err
	})
	g.Go(func() error {
		var err error
		rent, err = ce.RunScenario(gctx, &config.Rent, income)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	comparison := &domain.ScenarioComparison{
		RunID:       runIDFunc(),
		Buy:         buy,
		Rent:        rent,
		Checkpoints: CompareAtCheckpoints(buy, rent, config.Checkpoints()),
		Assumptions: config.GenerateAssumptions(),
	}

	breakEven, err := CalculateWealthBreakEven(buy, rent)
	if err != nil {
		return nil, fmt.Errorf("break-even: %w", err)
	}
	comparison.BreakEven = breakEven
	if breakEven != nil {
		ce.Logger.Infof("wealth lead changes at month %d, %s ahead", breakEven.Month, breakEven.Leader)
	}

	return comparison, nil
}
