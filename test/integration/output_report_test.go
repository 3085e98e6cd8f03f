package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/homeequity/buyrent/internal/calculation"
	"github.com/homeequity/buyrent/internal/config"
	"github.com/homeequity/buyrent/internal/output"
)

func TestReportGenerator_AllFormats(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	results, err := calculation.NewCalculationEngine().RunComparison(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run comparison: %v", err)
	}

	dir := t.TempDir()
	files, err := output.GenerateReport(results, "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport all: %v", err)
	}
	if len(files) != 6 {
		t.Fatalf("expected 6 report files, got %d", len(files))
	}
	for _, f := range files {
		if filepath.Dir(f) != dir {
			t.Fatalf("report %s written outside %s", f, dir)
		}
		fi, err := os.Stat(f)
		if err != nil {
			t.Fatalf("expected file exists, err: %v", err)
		}
		if fi.Size() == 0 {
			t.Fatalf("expected non-empty file %s", f)
		}
	}
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	out := filepath.Join(t.TempDir(), "config.yaml")
	if err := parser.SaveToFile(cfg, out); err != nil {
		t.Fatalf("SaveToFile error: %v", err)
	}
	reloaded, err := parser.LoadFromFile(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Buy.DownPayment.Equal(cfg.Buy.DownPayment) || reloaded.Rent.Name != cfg.Rent.Name {
		t.Fatalf("round trip changed the configuration")
	}
}

func TestLongFormatTagsBothScenarios(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	results, err := calculation.NewCalculationEngine().RunComparison(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run comparison: %v", err)
	}
	data, err := output.GetFormatterByName("melted").Format(results)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "361,Wealth,") || !strings.Contains(content, ",Own\n") || !strings.Contains(content, ",Rent\n") {
		t.Fatalf("long output missing expected rows")
	}
}
