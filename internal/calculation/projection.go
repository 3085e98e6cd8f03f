package calculation

import (
	"errors"
	"fmt"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/pkg/finmath"
	"github.com/shopspring/decimal"
)

// ErrIncomeSeriesTooShort is returned when the income series does not cover every simulated month.
var ErrIncomeSeriesTooShort = errors.New("income series shorter than simulated term")

// ledger is the running balance state threaded through one run
type ledger struct {
	homeAsset     decimal.Decimal
	homeDebt      decimal.Decimal
	savings       decimal.Decimal
	wealth        decimal.Decimal
	interestPaid  decimal.Decimal
	principalPaid decimal.Decimal
	rentPaid      decimal.Decimal
}

func openingLedger(params *domain.ScenarioParameters) ledger {
	return ledger{
		homeAsset: params.InitialHomeAsset,
		homeDebt:  params.InitialHomeDebt,
		savings:   params.InitialSavings,
		wealth:    params.InitialNetWorth(),
	}
}

// apply folds one month's deltas into the ledger and stamps the resulting balances onto rec
func (l ledger) apply(rec *domain.MonthlyRecord, originalLoan decimal.Decimal) ledger {
	next := ledger{
		homeAsset:     l.homeAsset.Add(rec.DeltaHomeAsset),
		homeDebt:      l.homeDebt.Add(rec.DeltaDebt),
		savings:       l.savings.Add(rec.DeltaSavings),
		wealth:        l.wealth.Add(rec.DeltaWealth),
		interestPaid:  l.interestPaid.Add(rec.Expenses.Interest),
		principalPaid: l.principalPaid.Add(rec.Expenses.Principal),
		rentPaid:      l.rentPaid.Add(rec.Expenses.Rent),
	}
	next.stamp(rec, originalLoan)
	return next
}

func (l ledger) stamp(rec *domain.MonthlyRecord, originalLoan decimal.Decimal) {
	rec.HomeAsset = l.homeAsset
	rec.HomeDebt = l.homeDebt
	rec.HomeEquity = l.homeAsset.Sub(l.homeDebt)
	rec.PctLoanPaid = pctLoanPaid(l.homeDebt, originalLoan)
	rec.Savings = l.savings
	rec.Wealth = l.wealth
	rec.TotalInterestPaid = l.interestPaid
	rec.TotalPrincipalPaid = l.principalPaid
	rec.TotalRentPaid = l.rentPaid
}

func pctLoanPaid(debt, originalLoan decimal.Decimal) decimal.Decimal {
	if originalLoan.IsZero() {
		return decimal.Zero
	}
	return finmath.Percent(decimal.NewFromInt(1).Sub(debt.Div(originalLoan)))
}

// monthlySimulation holds the per-run constants derived from the scenario
type monthlySimulation struct {
	params       *domain.ScenarioParameters
	loan         Loan
	taxCalc      *PayrollTaxEstimator
	originalLoan decimal.Decimal

	// fixed monthly amounts
	hoa         decimal.Decimal
	propertyTax decimal.Decimal
	repairs     decimal.Decimal
	rent        decimal.Decimal

	// monthly rates
	appreciationRate decimal.Decimal
	investmentRate   decimal.Decimal
}

func newMonthlySimulation(params *domain.ScenarioParameters, loan Loan, taxCalc *PayrollTaxEstimator) *monthlySimulation {
	return &monthlySimulation{
		params:           params,
		loan:             loan,
		taxCalc:          taxCalc,
		originalLoan:     params.OriginalLoan(),
		hoa:              finmath.RoundLedger(params.MonthlyHOA),
		propertyTax:      finmath.RoundLedger(finmath.Monthly(params.HomePrice.Mul(params.PropertyTaxRate))),
		repairs:          finmath.RoundLedger(finmath.Monthly(params.HomePrice.Mul(params.HomeRepairRate))),
		rent:             finmath.RoundLedger(params.MonthlyRent),
		appreciationRate: finmath.MonthlyRate(params.HomeAppreciationRate),
		investmentRate:   finmath.MonthlyRate(params.InvestmentRate),
	}
}

func (s *monthlySimulation) incomeTax(income, interest decimal.Decimal) decimal.Decimal {
	return finmath.RoundLedger(s.taxCalc.MonthlyIncomeTax(income, interest, finmath.PeriodsPerYear, s.params.FilingJoint))
}

// purchaseMonth books the home purchase: asset and debt arrive, the down payment leaves savings
func (s *monthlySimulation) purchaseMonth(income decimal.Decimal) domain.MonthlyRecord {
	income = finmath.RoundLedger(income)
	rec := domain.MonthlyRecord{
		Month:          1,
		Income:         domain.MonthlyIncome{Earned: income},
		Expenses:       domain.MonthlyExpenses{IncomeTax: s.incomeTax(income, decimal.Zero)},
		DownPayment:    s.params.DownPaymentAmount(),
		DeltaHomeAsset: s.params.HomePrice,
		DeltaDebt:      s.loan.Principal,
	}
	rec.DeltaSavings = rec.Income.Total().Sub(rec.Expenses.Total()).Sub(rec.DownPayment)
	rec.DeltaWealth = rec.DeltaHomeAsset.Sub(rec.DeltaDebt).Add(rec.DeltaSavings)
	return rec
}

// paymentMonth books one regular month. Investment gain and appreciation accrue on the
// balances before this month's update.
func (s *monthlySimulation) paymentMonth(payment int, income decimal.Decimal, prior ledger) (domain.MonthlyRecord, error) {
	principal, interest, err := s.loan.Portions(payment)
	if err != nil {
		return domain.MonthlyRecord{}, err
	}
	principal = finmath.RoundLedger(principal)
	interest = finmath.RoundLedger(interest)
	income = finmath.RoundLedger(income)

	rec := domain.MonthlyRecord{
		Month:         payment + 1,
		PaymentNumber: payment,
		Income: domain.MonthlyIncome{
			Earned:         income,
			InvestmentGain: finmath.RoundLedger(prior.savings.Mul(s.investmentRate)),
		},
		Expenses: domain.MonthlyExpenses{
			Principal:   principal,
			Interest:    interest,
			HOA:         s.hoa,
			PropertyTax: s.propertyTax,
			IncomeTax:   s.incomeTax(income, interest),
			Repairs:     s.repairs,
			Rent:        s.rent,
		},
		DeltaHomeAsset: finmath.RoundLedger(prior.homeAsset.Mul(s.appreciationRate)),
		DeltaDebt:      principal.Neg(),
	}
	rec.DeltaSavings = rec.Income.Total().Sub(rec.Expenses.Total())
	// principal leaves savings but retires the same amount of debt
	rec.DeltaWealth = rec.DeltaHomeAsset.Add(rec.DeltaSavings).Sub(rec.DeltaDebt)
	return rec, nil
}

// GenerateMonthlyProjection runs one scenario over its full mortgage term. Row 0 holds the
// opening balances, row 1 the purchase, and rows 2..N+1 the N mortgage payments. The
// income series must hold N+1 entries, entry 0 being the purchase month.
func (ce *CalculationEngine) GenerateMonthlyProjection(params *domain.ScenarioParameters, income domain.IncomeSeries) (*domain.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	term := params.TermMonths()
	loan, err := NewLoan(params.LoanAmount(), params.InterestRate, term)
	if err != nil {
		return nil, err
	}
	if required := term + 1; len(income) < required {
		return nil, fmt.Errorf("%w: scenario %q needs %d months of income, got %d",
			ErrIncomeSeriesTooShort, params.Name, required, len(income))
	}

	sim := newMonthlySimulation(params, loan, ce.TaxCalc)
	records := make([]domain.MonthlyRecord, 0, term+2)

	state := openingLedger(params)
	opening := domain.MonthlyRecord{Month: 0}
	state.stamp(&opening, sim.originalLoan)
	records = append(records, opening)

	purchase := sim.purchaseMonth(income[0])
	state = state.apply(&purchase, sim.originalLoan)
	records = append(records, purchase)

	for payment := 1; payment <= term; payment++ {
		rec, err := sim.paymentMonth(payment, income[payment], state)
		if err != nil {
			return nil, fmt.Errorf("payment %d: %w", payment, err)
		}
		state = state.apply(&rec, sim.originalLoan)
		records = append(records, rec)

		if ce.Debug && payment%12 == 0 {
			ce.Logger.Debugf("%s year %d: wealth=%s equity=%s debt=%s savings=%s",
				params.Name, payment/12, rec.Wealth.StringFixed(2), rec.HomeEquity.StringFixed(2),
				rec.HomeDebt.StringFixed(2), rec.Savings.StringFixed(2))
		}
	}

	return &domain.SimulationResult{
		Name:            params.Name,
		Params:          *params,
		OriginalLoan:    sim.originalLoan,
		MonthlyPayment:  loan.MonthlyPayment(),
		InitialNetWorth: params.InitialNetWorth(),
		Records:         records,
	}, nil
}
