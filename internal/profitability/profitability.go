// Package profitability converts premium and claims into loss and combined
// ratios and applies the carrier bonus schedule.
package profitability

import (
	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

// Model evaluates loss-ratio profitability for products and portfolios.
type Model struct {
	tables benchmarks.Tables
}

// New creates a profitability model over the given benchmark tables.
func New(tables benchmarks.Tables) *Model {
	return &Model{tables: tables}
}

// LossRatio returns claimsPaid / premiumEarned, or zero on zero premium (the
// documented sentinel for an empty line).
func LossRatio(claimsPaid, premiumEarned decimal.Decimal) decimal.Decimal {
	if premiumEarned.IsZero() {
		return decimal.Zero
	}
	return claimsPaid.Div(premiumEarned)
}

// CombinedRatio is loss ratio plus expense ratio.
func CombinedRatio(lossRatio, expenseRatio decimal.Decimal) decimal.Decimal {
	return lossRatio.Add(expenseRatio)
}

// LineResult is one product line's contribution to the portfolio.
type LineResult struct {
	Product       domain.ProductType `json:"product"`
	PremiumEarned decimal.Decimal    `json:"premiumEarned"`
	ClaimsPaid    decimal.Decimal    `json:"claimsPaid"`
	LossRatio     decimal.Decimal    `json:"lossRatio"`
	CombinedRatio decimal.Decimal    `json:"combinedRatio"`
}

// PortfolioResult aggregates line results premium-weighted.
type PortfolioResult struct {
	Lines           []LineResult    `json:"lines"`
	LossRatio       decimal.Decimal `json:"lossRatio"`
	CombinedRatio   decimal.Decimal `json:"combinedRatio"`
	BonusMultiplier decimal.Decimal `json:"bonusMultiplier"`
	BonusEligible   bool            `json:"bonusEligible"`
}

// LineInput is one product line's period premium and claims.
type LineInput struct {
	Product       domain.ProductType
	PremiumEarned decimal.Decimal
	ClaimsPaid    decimal.Decimal
	ExpenseRatio  decimal.Decimal
}

// Portfolio computes per-line and premium-weighted portfolio ratios, then the
// bonus multiplier for the portfolio combined ratio.
func (m *Model) Portfolio(lines []LineInput) PortfolioResult {
	out := PortfolioResult{Lines: make([]LineResult, 0, len(lines))}

	totalPremium := decimal.Zero
	weightedLoss := decimal.Zero
	weightedCombined := decimal.Zero

	for _, in := range lines {
		lr := LossRatio(in.ClaimsPaid, in.PremiumEarned)
		cr := CombinedRatio(lr, in.ExpenseRatio)
		out.Lines = append(out.Lines, LineResult{
			Product:       in.Product,
			PremiumEarned: in.PremiumEarned,
			ClaimsPaid:    in.ClaimsPaid,
			LossRatio:     lr,
			CombinedRatio: cr,
		})
		totalPremium = totalPremium.Add(in.PremiumEarned)
		weightedLoss = weightedLoss.Add(lr.Mul(in.PremiumEarned))
		weightedCombined = weightedCombined.Add(cr.Mul(in.PremiumEarned))
	}

	if !totalPremium.IsZero() {
		out.LossRatio = weightedLoss.Div(totalPremium)
		out.CombinedRatio = weightedCombined.Div(totalPremium)
	}

	out.BonusMultiplier = m.BonusMultiplier(out.CombinedRatio)
	out.BonusEligible = out.BonusMultiplier.IsPositive()
	return out
}

// BonusMultiplier walks the bonus schedule: the lowest threshold the combined
// ratio fits under wins. Boundaries are closed on the lower side, so a ratio
// of exactly 0.95 earns the full bonus and 0.9501 drops to the next step.
func (m *Model) BonusMultiplier(combinedRatio decimal.Decimal) decimal.Decimal {
	for _, step := range m.tables.BonusSteps {
		if combinedRatio.LessThanOrEqual(step.Threshold) {
			return step.Multiplier
		}
	}
	return decimal.Zero
}

// ProfitInput parameterizes agency profit for a period.
type ProfitInput struct {
	CommissionRevenue decimal.Decimal
	ClaimsCost        decimal.Decimal // claims-attributable cost borne by the agency
	ServicingCost     decimal.Decimal
	CombinedRatio     decimal.Decimal
	// CommissionDecoupled marks commission structures whose profit is
	// contractually independent of loss experience.
	CommissionDecoupled bool
}

// AgencyProfit returns commission revenue minus claims-attributable and
// servicing cost. When the portfolio combined ratio exceeds the worst bonus
// threshold, profit is reported as at most zero unless the commission
// structure explicitly decouples profit from loss experience.
func (m *Model) AgencyProfit(in ProfitInput) decimal.Decimal {
	profit := in.CommissionRevenue.Sub(in.ClaimsCost).Sub(in.ServicingCost)
	if in.CommissionDecoupled {
		return profit
	}
	worst := m.tables.BonusSteps[len(m.tables.BonusSteps)-1].Threshold
	if in.CombinedRatio.GreaterThan(worst) && profit.IsPositive() {
		return decimal.Zero
	}
	return profit
}
