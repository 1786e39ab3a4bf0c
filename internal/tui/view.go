package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var hundredDec = decimal.NewFromInt(100)

// View renders the active scene.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("agencysim"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(warnStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("h: home  q: quit"))
		return b.String()
	}
	if m.loading {
		msg := m.loadingMessage
		if msg == "" {
			msg = "Loading input..."
		}
		b.WriteString(subtleStyle.Render(msg))
		return b.String()
	}

	switch m.scene {
	case SceneResults:
		b.WriteString(m.viewResults())
	case SceneCompare:
		b.WriteString(m.viewCompare())
	default:
		b.WriteString(m.viewHome())
	}
	return b.String()
}

func (m Model) viewHome() string {
	if m.input == nil {
		return subtleStyle.Render("No input loaded.")
	}
	var b strings.Builder
	s := m.input.Scenario
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Scenario:"), s.Name)
	fmt.Fprintf(&b, "%s %d policies / %d customers @ $%s\n",
		labelStyle.Render("Seed:"),
		m.input.Seed.Policies, m.input.Seed.Customers,
		m.input.Seed.AveragePremium.StringFixed(0))
	fmt.Fprintf(&b, "%s %d  %s %d channels, $%s/month  %s %+.0f%%\n",
		labelStyle.Render("Months:"), m.input.Months,
		labelStyle.Render("Marketing:"), len(s.Channels), s.ChannelSpend.Total().StringFixed(0),
		labelStyle.Render("Rate action:"), rateIncreasePct(m))
	fmt.Fprintf(&b, "%s %d lines  %s %d records\n",
		labelStyle.Render("Product mix:"), len(s.ProductMix),
		labelStyle.Render("Customer file:"), len(s.Customers))

	box := boxStyle.Render(b.String())
	help := helpStyle.Render("r: run simulation  c: compare templates  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, box, help)
}

func rateIncreasePct(m Model) float64 {
	f, _ := m.input.Scenario.RateIncrease.Mul(hundredDec).Float64()
	return f
}

func (m Model) viewResults() string {
	if m.result == nil {
		return subtleStyle.Render("No run yet. Press r.")
	}
	var b strings.Builder
	final := m.result.Final()
	fmt.Fprintf(&b, "%s %s  %s %d -> %d policies  %s $%s\n",
		labelStyle.Render("Run:"), m.result.ScenarioName,
		labelStyle.Render("Book:"), m.result.Seed.Policies, final.Policies,
		labelStyle.Render("Working capital:"), m.result.WorkingCapital.StringFixed(0))

	if warnings := m.result.CashFlowWarnings(); len(warnings) > 0 {
		fmt.Fprintln(&b, warnStyle.Render(fmt.Sprintf("Cash flow negative in months %v", warnings)))
	} else {
		fmt.Fprintln(&b, okStyle.Render("Cash flow positive every month"))
	}
	b.WriteString("\n")
	b.WriteString(m.monthsTable.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("up/down: scroll  c: compare  h: home  q: quit"))
	return b.String()
}

func (m Model) viewCompare() string {
	if m.comparison == nil {
		return subtleStyle.Render("No comparison yet. Press c.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s over %d months\n\n",
		labelStyle.Render("Comparison:"), m.comparison.BaseScenarioName, m.comparison.Months)
	fmt.Fprintf(&b, "%-15s %10s %6s %9s %8s %9s %14s\n",
		"Scenario", "Policies", "PPC", "Combined", "EBITDA%", "LTV:CAC", "Net profit")
	for _, row := range m.comparison.Rows {
		fmt.Fprintf(&b, "%-15s %10d %6s %9s %8s %9s %14s\n",
			row.Name, row.FinalPolicies,
			row.PoliciesPerCustomer.StringFixed(2),
			row.CombinedRatio.StringFixed(3),
			row.EBITDAMargin.Mul(hundredDec).StringFixed(1),
			row.LTVtoCAC.StringFixed(1),
			row.NetProfit.StringFixed(0))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(b.String()),
		helpStyle.Render("r: run  h: home  q: quit"))
}
