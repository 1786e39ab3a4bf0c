// Package referral scores existing customers for referral propensity and
// projects referral-sourced acquisition, including the viral coefficient.
package referral

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

// Model scores referral propensity over a benchmark table set.
type Model struct {
	tables benchmarks.Tables
}

// New creates a referral model.
func New(tables benchmarks.Tables) *Model {
	return &Model{tables: tables}
}

var hundred = decimal.NewFromInt(100)

// Score computes the 0-100 propensity composite for one customer. Components
// outside [0,100] are clamped; the flag reports that it happened.
func (m *Model) Score(c domain.Customer) (decimal.Decimal, bool) {
	w := m.tables.ReferralScoreWeights
	clamped := false

	comp := func(v decimal.Decimal) decimal.Decimal {
		if v.IsNegative() {
			clamped = true
			return decimal.Zero
		}
		if v.GreaterThan(hundred) {
			clamped = true
			return hundred
		}
		return v
	}

	score := comp(tenureComponent(c)).Mul(w.Tenure).
		Add(comp(productComponent(c)).Mul(w.ProductCount)).
		Add(comp(retentionComponent(c)).Mul(w.Retention)).
		Add(comp(c.Engagement).Mul(w.Engagement)).
		Add(comp(claimsComponent(c)).Mul(w.Claims)).
		Add(comp(c.NPS).Mul(w.Satisfaction))

	return score, clamped
}

// Five years of tenure, four products, or five retained years each saturate
// their component.
func tenureComponent(c domain.Customer) decimal.Decimal {
	v := decimal.NewFromInt(int64(c.TenureDays)).Div(decimal.NewFromInt(1825)).Mul(hundred)
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}

func productComponent(c domain.Customer) decimal.Decimal {
	v := decimal.NewFromInt(int64(len(c.Products))).Div(decimal.NewFromInt(4)).Mul(hundred)
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}

func retentionComponent(c domain.Customer) decimal.Decimal {
	v := c.YearsRetained.Div(decimal.NewFromInt(5)).Mul(hundred)
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}

func claimsComponent(c domain.Customer) decimal.Decimal {
	switch c.ClaimsCount {
	case 0:
		return hundred
	case 1:
		return decimal.NewFromInt(60)
	default:
		return decimal.NewFromInt(20)
	}
}

// TierFor maps a propensity score to its tier profile.
func (m *Model) TierFor(score decimal.Decimal) (domain.ReferralTier, benchmarks.ReferralTierProfile) {
	tiers := []domain.ReferralTier{domain.TierChampion, domain.TierPromoter, domain.TierPassive, domain.TierDetractor}
	for i, profile := range m.tables.ReferralTiers {
		if score.GreaterThanOrEqual(profile.MinScore) {
			return tiers[i], profile
		}
	}
	last := len(m.tables.ReferralTiers) - 1
	return domain.TierDetractor, m.tables.ReferralTiers[last]
}

// Roster scores the whole portfolio and projects referral flow from it.
// Expected referrals are population-in-tier x tier referral rate x average
// referrals per referrer; expected new customers apply the referral
// conversion rate, which is held separately from (and typically above) paid
// conversion. The viral coefficient is always computed and exposed, however
// small; GrowthEngineViable only turns true at or above the viability
// threshold, so no growth-engine claim rides on a k of 0.02.
func (m *Model) Roster(customers []domain.Customer) *domain.ReferralRoster {
	roster := &domain.ReferralRoster{
		TierCounts: map[domain.ReferralTier]int{},
	}

	totalRate := decimal.Zero
	for _, c := range customers {
		score, _ := m.Score(c)
		tier, profile := m.TierFor(score)
		roster.Candidates = append(roster.Candidates, domain.ReferralCandidate{
			CustomerID: c.ID,
			Score:      score,
			Tier:       tier,
			Approach:   profile.Approach,
		})
		roster.TierCounts[tier]++
		roster.ExpectedReferrals = roster.ExpectedReferrals.
			Add(profile.ReferralRate.Mul(m.tables.AvgReferralsPerReferrer))
		totalRate = totalRate.Add(profile.ReferralRate)
	}

	sort.SliceStable(roster.Candidates, func(i, j int) bool {
		return roster.Candidates[i].Score.GreaterThan(roster.Candidates[j].Score)
	})

	roster.ExpectedNewCustomers = roster.ExpectedReferrals.Mul(m.tables.ReferralConversionRate)

	if n := len(customers); n > 0 {
		blendedRate := totalRate.Div(decimal.NewFromInt(int64(n)))
		roster.ViralCoefficient = blendedRate.
			Mul(m.tables.AvgReferralsPerReferrer).
			Mul(m.tables.ReferralConversionRate)
	}
	roster.GrowthEngineViable = roster.ViralCoefficient.GreaterThanOrEqual(m.tables.ViralViabilityThreshold)
	return roster
}
