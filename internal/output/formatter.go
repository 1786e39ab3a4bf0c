// Package output renders simulation results, scenario comparisons and
// sensitivity sweeps as console tables, CSV, or JSON.
package output

import (
	"fmt"
	"strings"

	"github.com/summitpoint/agencysim/internal/domain"
)

// Formatter renders the three report shapes the CLI emits.
type Formatter interface {
	Name() string
	FormatResult(result *domain.SimulationResult) (string, error)
	FormatComparison(cmp *domain.ScenarioComparison) (string, error)
	FormatSweep(sweep *domain.SensitivitySweep) (string, error)
}

// GetFormatterByName returns the formatter for a --format value.
func GetFormatterByName(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "table", "console", "":
		return &TableFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, csv, json)", name)
	}
}
