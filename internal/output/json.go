package output

import (
	json "github.com/goccy/go-json"

	"github.com/summitpoint/agencysim/internal/domain"
)

// JSONFormatter emits indented JSON for machine consumers.
type JSONFormatter struct{}

// Name identifies the formatter.
func (f *JSONFormatter) Name() string { return "json" }

// FormatResult marshals the whole run, advisory reports included.
func (f *JSONFormatter) FormatResult(result *domain.SimulationResult) (string, error) {
	return f.marshal(result)
}

// FormatComparison marshals the comparison table.
func (f *JSONFormatter) FormatComparison(cmp *domain.ScenarioComparison) (string, error) {
	return f.marshal(cmp)
}

// FormatSweep marshals the sweep.
func (f *JSONFormatter) FormatSweep(sweep *domain.SensitivitySweep) (string, error) {
	return f.marshal(sweep)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
