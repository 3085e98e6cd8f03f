package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/homeequity/buyrent/internal/calculation"
	"github.com/homeequity/buyrent/internal/config"
	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newCompareCommand(a *app) *cobra.Command {
	var format, outputDir string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the buy and rent scenarios and compare their wealth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.env.Format
			}
			if !cmd.Flags().Changed("output-dir") {
				outputDir = a.env.OutputDir
			}

			cfg, err := a.loadConfiguration()
			if err != nil {
				return err
			}
			comparison, err := a.engine(cfg.Tax).RunComparison(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			a.logger.Info("comparison complete", zap.String("run_id", comparison.RunID),
				zap.Int("checkpoints", len(comparison.Checkpoints)))

			if outputDir != "" {
				files, err := output.GenerateReport(comparison, format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(a.out, "wrote %s\n", f)
				}
				return nil
			}
			return writeFormat(a.out, comparison, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console",
		"output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+", or all (env "+config.EnvFormat+")")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write timestamped report files here instead of stdout (env "+config.EnvOutputDir+")")
	return cmd
}

func writeFormat(w io.Writer, comparison *domain.ScenarioComparison, format string) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		if output.NormalizeFormatName(format) == "all" {
			return errors.New("format all writes several files and needs --output-dir")
		}
		return fmt.Errorf("%w: %q (available: %s)", output.ErrUnsupportedFormat, format,
			strings.Join(output.AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(comparison)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func newSimulateCommand(a *app) *cobra.Command {
	var scenario string
	var monthly bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a single scenario month by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfiguration()
			if err != nil {
				return err
			}

			var params *domain.ScenarioParameters
			switch strings.ToLower(scenario) {
			case "buy", strings.ToLower(cfg.Buy.Name):
				params = &cfg.Buy
			case "rent", strings.ToLower(cfg.Rent.Name):
				params = &cfg.Rent
			default:
				return fmt.Errorf("unknown scenario %q: use buy or rent", scenario)
			}

			income := calculation.GenerateIncomeSeries(cfg.Income, params.TermMonths()+1)
			result, err := a.engine(cfg.Tax).RunScenario(cmd.Context(), params, income)
			if err != nil {
				return err
			}

			rows := result.Records
			if !monthly {
				rows = output.YearEndRecords(result)
			}
			writeSimulation(a.out, result, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "buy", "scenario to run: buy or rent")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "print every month instead of year ends")
	return cmd
}

func writeSimulation(w io.Writer, result *domain.SimulationResult, rows []domain.MonthlyRecord) {
	fmt.Fprintf(w, "%s: monthly payment %s, initial net worth %s\n\n", result.Name,
		output.FormatCurrency(result.MonthlyPayment), output.FormatCurrency(result.InitialNetWorth))
	fmt.Fprintf(w, "%-6s %-6s %14s %14s %16s %16s %16s %16s\n",
		"Month", "Pmt", "Income", "Tax", "Savings", "Equity", "Debt", "Wealth")
	for _, rec := range rows {
		fmt.Fprintf(w, "%-6d %-6d %14s %14s %16s %16s %16s %16s\n",
			rec.Month, rec.PaymentNumber,
			output.FormatCurrency(rec.Income.Earned), output.FormatCurrency(rec.Expenses.IncomeTax),
			output.FormatCurrency(rec.Savings), output.FormatCurrency(rec.HomeEquity),
			output.FormatCurrency(rec.HomeDebt), output.FormatCurrency(rec.Wealth))
	}
}

func newAmortizeCommand(a *app) *cobra.Command {
	var principal, rate decimal.Decimal
	var years, every int

	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Print a fixed-rate amortization schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if every < 1 {
				every = 1
			}
			schedule, err := calculation.AmortizationSchedule(principal, rate, years*12)
			if err != nil {
				return err
			}
			a.logger.Debug("amortization schedule", zap.String("principal", principal.String()),
				zap.String("rate", rate.String()), zap.Int("payments", len(schedule)))

			payment := calculation.MonthlyPayment(principal, rate, years*12)
			fmt.Fprintf(a.out, "Monthly payment: %s over %d payments\n\n", output.FormatCurrency(payment), len(schedule))
			fmt.Fprintf(a.out, "%-6s %14s %14s %16s %16s\n", "Pmt", "Interest", "Principal", "Balance", "Interest Paid")
			for i, p := range schedule {
				if (i+1)%every != 0 && i != len(schedule)-1 {
					continue
				}
				fmt.Fprintf(a.out, "%-6d %14s %14s %16s %16s\n", p.Number,
					output.FormatCurrency(p.Interest), output.FormatCurrency(p.Principal),
					output.FormatCurrency(p.RemainingBalance), output.FormatCurrency(p.CumulativeInterest))
			}
			return nil
		},
	}
	cmd.Flags().Var(newDecimalValue(&principal, decimal.NewFromInt(480000)), "principal", "loan principal")
	cmd.Flags().Var(newDecimalValue(&rate, decimal.NewFromFloat(0.025)), "rate", "annual interest rate as a fraction")
	cmd.Flags().IntVar(&years, "years", 15, "loan term in years")
	cmd.Flags().IntVar(&every, "every", 12, "print every n-th payment")
	return cmd
}

func newTaxCommand(a *app) *cobra.Command {
	var income, adjustments decimal.Decimal
	var joint bool

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Estimate annual federal, state and payroll tax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := domain.TaxRules{}
			if a.configPath != "" {
				cfg, err := a.loadConfiguration()
				if err != nil {
					return err
				}
				rules = cfg.Tax
			}
			engine := a.engine(rules)
			tax := engine.TaxCalc.EstimateAnnualTax(income, adjustments, joint)
			net := engine.NetIncomeCalc.Calculate(income, adjustments, joint, a.debug)

			fmt.Fprintf(a.out, "Adjusted gross income: %s\n", output.FormatCurrency(tax.AGI))
			fmt.Fprintf(a.out, "  Federal tax:         %s\n", output.FormatCurrency(tax.Federal))
			fmt.Fprintf(a.out, "  State tax:           %s\n", output.FormatCurrency(tax.State))
			fmt.Fprintf(a.out, "  Payroll tax:         %s\n", output.FormatCurrency(tax.Payroll))
			fmt.Fprintf(a.out, "  Total tax:           %s\n", output.FormatCurrency(tax.Total()))
			fmt.Fprintf(a.out, "Net income:            %s\n", output.FormatCurrency(net))
			return nil
		},
	}
	cmd.Flags().Var(newDecimalValue(&income, decimal.NewFromInt(125000)), "income", "gross annual income")
	cmd.Flags().Var(newDecimalValue(&adjustments, decimal.Zero), "adjustments", "deductible annual adjustments such as mortgage interest")
	cmd.Flags().BoolVar(&joint, "joint", false, "married filing jointly")
	return cmd
}

func newExampleConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write an example scenario configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			example := parser.CreateExampleConfiguration()
			if len(args) == 1 {
				if err := parser.SaveToFile(example, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "wrote %s\n", args[0])
				return nil
			}
			data, err := yaml.Marshal(example)
			if err != nil {
				return err
			}
			_, err = a.out.Write(data)
			return err
		},
	}
}

func newFormatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and their aliases",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(a.out, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(a.out, "  %s\n", name)
			}
			fmt.Fprintln(a.out, "  all (with --output-dir)")
			fmt.Fprintln(a.out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(a.out, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}
