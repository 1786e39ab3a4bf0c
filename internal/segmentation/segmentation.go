// Package segmentation classifies customers into value tiers and computes
// lifetime value. Classification is a pure function of product count and
// premium; it is recomputed per customer per month and never persisted as
// identity.
package segmentation

import (
	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

// Model evaluates segment tiers and the canonical LTV formula.
type Model struct {
	tables benchmarks.Tables
}

// New creates a segmentation model over the given benchmark tables.
func New(tables benchmarks.Tables) *Model {
	return &Model{tables: tables}
}

// Classify returns the value tier for a customer holding productCount
// policies at the given total annual premium. Thresholds are evaluated in
// descending order; first match wins.
func (m *Model) Classify(productCount int, annualPremium decimal.Decimal) domain.SegmentTier {
	t := m.tables
	switch {
	case productCount >= t.EliteMinProducts && annualPremium.GreaterThanOrEqual(t.EliteMinPremium):
		return domain.TierElite
	case productCount >= t.PremiumMinProducts && annualPremium.GreaterThanOrEqual(t.PremiumMinPremium):
		return domain.TierPremium
	case productCount >= t.StandardMinProducts && annualPremium.GreaterThanOrEqual(t.StandardMinPremium):
		return domain.TierStandard
	default:
		return domain.TierLowValue
	}
}

// ClassifyCustomer classifies a parsed customer record.
func (m *Model) ClassifyCustomer(c domain.Customer) domain.SegmentTier {
	return m.Classify(len(c.Products), c.AnnualPremium)
}

// Distribution tallies a portfolio into tier counts.
func (m *Model) Distribution(customers []domain.Customer) domain.SegmentDistribution {
	dist := domain.SegmentDistribution{}
	for _, c := range customers {
		dist[m.ClassifyCustomer(c)]++
	}
	return dist
}

// LifetimeYears converts annual retention into expected customer lifetime,
// 1/(1-retention), capped so near-perfect retention does not produce
// effectively infinite lifetimes.
func (m *Model) LifetimeYears(annualRetention decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if annualRetention.GreaterThanOrEqual(one) {
		return m.tables.LifetimeYearsCap
	}
	years := one.Div(one.Sub(annualRetention))
	if years.GreaterThan(m.tables.LifetimeYearsCap) {
		return m.tables.LifetimeYearsCap
	}
	return years
}

// LTVInput parameterizes the canonical lifetime-value formula. The same
// formula serves every caller; the only knobs that ever varied between uses
// are premium inflation and the lifetime cap, both carried here.
type LTVInput struct {
	AnnualCommission decimal.Decimal
	ServicingCost    decimal.Decimal // annual, per customer
	AnnualRetention  decimal.Decimal
	PremiumInflation decimal.Decimal // 0 for a static premium
}

// LTV computes lifetime value: commission earned over the expected lifetime
// minus servicing cost over the same lifetime. With premium inflation set,
// each year's commission compounds before it is summed; a static premium is
// never used when inflation is configured.
func (m *Model) LTV(in LTVInput) decimal.Decimal {
	years := m.LifetimeYears(in.AnnualRetention)
	servicing := in.ServicingCost.Mul(years)

	if in.PremiumInflation.IsZero() {
		return in.AnnualCommission.Mul(years).Sub(servicing)
	}

	one := decimal.NewFromInt(1)
	factor := one.Add(in.PremiumInflation)
	whole := years.IntPart()
	fraction := years.Sub(decimal.NewFromInt(whole))

	commission := decimal.Zero
	for y := int64(0); y < whole; y++ {
		commission = commission.Add(in.AnnualCommission.Mul(factor.Pow(decimal.NewFromInt(y))))
	}
	if fraction.IsPositive() {
		commission = commission.Add(in.AnnualCommission.Mul(factor.Pow(decimal.NewFromInt(whole))).Mul(fraction))
	}
	return commission.Sub(servicing)
}

// Representative annual premium per tier, used when valuing a tier in the
// aggregate rather than a concrete customer.
func (m *Model) representativePremium(tier domain.SegmentTier) decimal.Decimal {
	t := m.tables
	switch tier {
	case domain.TierElite:
		return t.EliteMinPremium.Mul(decimal.NewFromFloat(1.2))
	case domain.TierPremium:
		return t.PremiumMinPremium.Mul(decimal.NewFromFloat(1.1))
	case domain.TierStandard:
		return t.StandardMinPremium.Mul(decimal.NewFromFloat(1.5))
	default:
		return t.StandardMinPremium.Mul(decimal.NewFromFloat(0.5))
	}
}

// TierLTV values a whole tier at its representative premium, benchmark
// retention and a blended commission rate.
func (m *Model) TierLTV(tier domain.SegmentTier, commissionRate, servicingCost decimal.Decimal) decimal.Decimal {
	return m.LTV(LTVInput{
		AnnualCommission: m.representativePremium(tier).Mul(commissionRate),
		ServicingCost:    servicingCost,
		AnnualRetention:  m.tables.TierRetention[tier],
	})
}

// AllocateBudget splits a marketing budget across tiers in proportion to each
// tier's LTV:CAC. Tiers below 1.0 get nothing: spending into a segment that
// returns less than it costs is never recommended.
func (m *Model) AllocateBudget(total decimal.Decimal, ltvToCAC map[domain.SegmentTier]decimal.Decimal) map[domain.SegmentTier]decimal.Decimal {
	one := decimal.NewFromInt(1)
	denom := decimal.Zero
	for _, tier := range domain.AllTiers() {
		if ratio, ok := ltvToCAC[tier]; ok && ratio.GreaterThanOrEqual(one) {
			denom = denom.Add(ratio)
		}
	}

	alloc := make(map[domain.SegmentTier]decimal.Decimal, len(ltvToCAC))
	for _, tier := range domain.AllTiers() {
		ratio, ok := ltvToCAC[tier]
		if !ok {
			continue
		}
		if ratio.LessThan(one) || denom.IsZero() {
			alloc[tier] = decimal.Zero
			continue
		}
		alloc[tier] = total.Mul(ratio).Div(denom)
	}
	return alloc
}
