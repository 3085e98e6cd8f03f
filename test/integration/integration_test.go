package integration

import (
	"context"
	"testing"

	"github.com/homeequity/buyrent/internal/calculation"
	"github.com/homeequity/buyrent/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndCalculation(t *testing.T) {
	// Test that we can load a configuration and run calculations
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Buy house", cfg.Buy.Name)
	assert.Equal(t, "Rent house", cfg.Rent.Name)

	engine := calculation.NewCalculationEngineWithConfig(cfg.Tax)
	require.NotNil(t, engine)

	results, err := engine.RunComparison(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, results)
	assert.NotEmpty(t, results.RunID)

	// 360 payments plus the opening and purchase rows
	assert.Equal(t, 362, results.Buy.Len())
	assert.Equal(t, 362, results.Rent.Len())
	assert.Len(t, results.Checkpoints, 6)

	final := results.Buy.Final()
	assert.True(t, final.HomeDebt.Abs().LessThan(decimal.NewFromFloat(0.01)), "mortgage retires: %s", final.HomeDebt)
	assert.True(t, final.HomeAsset.GreaterThan(decimal.NewFromInt(2000000)), "30 years at 3.5%%: %s", final.HomeAsset)

	for _, r := range results.Results() {
		for _, rec := range r.Records {
			require.True(t, rec.Wealth.Equal(rec.Savings.Add(rec.HomeEquity)), "%s month %d", r.Name, rec.Month)
		}
	}
}

func TestBasicCalculations(t *testing.T) {
	// the purchase moves cash into the house without changing net worth
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)

	results, err := calculation.NewCalculationEngine().RunComparison(context.Background(), cfg)
	require.NoError(t, err)

	buy := results.Buy.Records[1]
	rent := results.Rent.Records[1]
	assert.True(t, buy.Wealth.Equal(rent.Wealth), "buy %s rent %s", buy.Wealth, rent.Wealth)
	assert.True(t, buy.Savings.Equal(rent.Savings.Sub(decimal.NewFromInt(170000))))
	assert.True(t, buy.HomeDebt.Equal(decimal.NewFromInt(680000)))
}
