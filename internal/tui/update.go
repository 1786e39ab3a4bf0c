package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/summitpoint/agencysim/internal/domain"
)

// Update handles messages and key bindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := m.height - 12; h > 4 {
			m.monthsTable.SetHeight(h)
		}
		return m, nil

	case InputLoadedMsg:
		m.input = msg.Input
		m.loading = false
		m.err = nil
		return m, nil

	case RunCompletedMsg:
		m.result = msg.Result
		m.monthsTable.SetRows(monthRows(msg.Result))
		m.loading = false
		m.scene = SceneResults
		return m, nil

	case CompareCompletedMsg:
		m.comparison = msg.Comparison
		m.loading = false
		m.scene = SceneCompare
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "h", "esc":
		m.scene = SceneHome
		return m, nil
	case "r":
		if m.input == nil || m.loading {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Running simulation..."
		return m, runCmd(m.engine, m.input)
	case "c":
		if m.input == nil || m.loading {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Comparing scenario templates..."
		return m, compareCmd(m.generator, m.input)
	}

	if m.scene == SceneResults {
		var cmd tea.Cmd
		m.monthsTable, cmd = m.monthsTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func monthRows(result *domain.SimulationResult) []table.Row {
	rows := make([]table.Row, 0, len(result.Snapshots))
	for _, s := range result.Snapshots {
		rows = append(rows, table.Row{
			strconv.Itoa(s.Month),
			strconv.Itoa(s.Policies),
			strconv.Itoa(s.Customers),
			s.PoliciesPerCustomer.StringFixed(2),
			s.AdjustedRetention.StringFixed(4),
			s.Revenue.StringFixed(0),
			s.NetCashFlow.StringFixed(0),
			s.CombinedRatio.StringFixed(3),
		})
	}
	return rows
}
