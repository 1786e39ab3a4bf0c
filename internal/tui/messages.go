package tui

import (
	"github.com/summitpoint/agencysim/internal/config"
	"github.com/summitpoint/agencysim/internal/domain"
)

// InputLoadedMsg carries the parsed input file.
type InputLoadedMsg struct {
	Input *config.Input
}

// RunCompletedMsg carries a finished simulation.
type RunCompletedMsg struct {
	Result *domain.SimulationResult
}

// CompareCompletedMsg carries a finished template comparison.
type CompareCompletedMsg struct {
	Comparison *domain.ScenarioComparison
}

// ErrorMsg carries any failure into the update loop.
type ErrorMsg struct {
	Err error
}
