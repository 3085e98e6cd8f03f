package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/homeequity/buyrent/internal/calculation"
	"github.com/homeequity/buyrent/internal/config"
	"github.com/homeequity/buyrent/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand
type app struct {
	env    *config.Environment
	out    io.Writer
	logger *zap.Logger

	configPath string
	logLevel   string
	debug      bool
}

// NewRootCommand builds the buyrent command tree. Output goes to out; logs go to stderr.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "buyrent",
		Short:         "Compare buying a home against renting and investing",
		Long:          "buyrent simulates monthly cash flow, mortgage amortization, home equity and net wealth for a buy scenario and a rent scenario, then compares them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "scenario configuration file (env "+config.EnvConfigPath+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	flags.BoolVar(&a.debug, "debug", false, "log year-end balances and tax breakdowns (env "+config.EnvDebug+")")

	root.AddCommand(
		newCompareCommand(a),
		newSimulateCommand(a),
		newAmortizeCommand(a),
		newTaxCommand(a),
		newExampleConfigCommand(a),
		newFormatsCommand(a),
	)
	return root
}

// setup resolves env defaults for unset flags and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	env, err := config.LoadEnvironment()
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	a.env = env

	if !cmd.Flags().Changed("config") {
		a.configPath = env.ConfigPath
	}
	if !cmd.Flags().Changed("log-level") {
		a.logLevel = env.LogLevel
	}
	if !cmd.Flags().Changed("debug") {
		a.debug = env.Debug
	}
	if a.debug && !cmd.Flags().Changed("log-level") {
		a.logLevel = "debug"
	}

	logger, err := NewLogger(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// loadConfiguration reads the scenario file, or falls back to the built-in example
func (a *app) loadConfiguration() (*domain.Configuration, error) {
	parser := config.NewInputParser()
	if a.configPath == "" {
		a.logger.Info("no configuration file given, using the example scenarios")
		return parser.CreateExampleConfiguration(), nil
	}
	a.logger.Debug("loading configuration", zap.String("path", a.configPath))
	return parser.LoadFromFile(a.configPath)
}

func (a *app) engine(rules domain.TaxRules) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithConfig(rules)
	engine.Debug = a.debug
	engine.SetLogger(calculation.NewZapLogger(a.logger))
	return engine
}

// Execute runs the command tree against ctx and returns the first error
func Execute(ctx context.Context, out io.Writer, args []string) error {
	root := NewRootCommand(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
