// Package tui is an interactive dashboard over the simulation engine: load an
// input file, run it, and flip between the monthly ledger and the template
// comparison without leaving the terminal.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/config"
	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/scenario"
	"github.com/summitpoint/agencysim/internal/simulation"
)

// Scene identifies which screen is active.
type Scene int

const (
	SceneHome Scene = iota
	SceneResults
	SceneCompare
)

// Model is the entire application state.
type Model struct {
	scene  Scene
	width  int
	height int

	inputPath string
	input     *config.Input

	engine    *simulation.Engine
	generator *scenario.Generator

	result     *domain.SimulationResult
	comparison *domain.ScenarioComparison

	monthsTable table.Model

	loading        bool
	loadingMessage string
	err            error
}

// NewModel creates the application model for one input file.
func NewModel(inputPath string) Model {
	engine := simulation.NewEngine(benchmarks.Default())
	return Model{
		scene:       SceneHome,
		inputPath:   inputPath,
		engine:      engine,
		generator:   scenario.NewGenerator(engine, engine.Tables),
		monthsTable: newMonthsTable(),
		loading:     true,
		width:       80,
		height:      24,
	}
}

// Init loads the input file.
func (m Model) Init() tea.Cmd {
	return loadInputCmd(m.inputPath)
}

func newMonthsTable() table.Model {
	columns := []table.Column{
		{Title: "Mo", Width: 4},
		{Title: "Policies", Width: 9},
		{Title: "Cust", Width: 8},
		{Title: "PPC", Width: 6},
		{Title: "Retention", Width: 10},
		{Title: "Revenue", Width: 11},
		{Title: "Net cash", Width: 11},
		{Title: "Combined", Width: 9},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	return t
}

func loadInputCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{Input: input}
	}
}

func runCmd(engine *simulation.Engine, input *config.Input) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Run(context.Background(), input.Scenario, input.Seed, input.Months)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RunCompletedMsg{Result: result}
	}
}

func compareCmd(generator *scenario.Generator, input *config.Input) tea.Cmd {
	return func() tea.Msg {
		cmp, err := generator.Compare(context.Background(), input.Scenario, input.Seed, input.Months)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return CompareCompletedMsg{Comparison: cmp}
	}
}
