package output

import (
	"fmt"
	"strings"

	"github.com/homeequity/buyrent/internal/domain"
)

// allFormats is what GenerateReport writes for the "all" pseudo-format
var allFormats = []string{"console", "csv", "detailed-csv", "long-csv", "json", "html"}

// GenerateReport writes the comparison in the named format into dir and returns the files written.
// "all" writes every file-oriented format.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var written []string
		for _, name := range allFormats {
			files, err := GenerateReport(results, name, dir)
			if err != nil {
				return written, err
			}
			written = append(written, files...)
		}
		return written, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, results, dir, FileExtension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
