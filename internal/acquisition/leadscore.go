package acquisition

import (
	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ScoreLead computes the 0-100 composite quality score for a lead and maps it
// to a predicted segment band. Components outside [0,100] are clamped to the
// nearest boundary; the returned flag reports that clamping occurred so the
// caller can surface it.
func (m *Model) ScoreLead(p domain.LeadProfile) (domain.ScoredLead, bool) {
	w := m.tables.LeadWeights
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

	score := comp(p.ProductIntent).Mul(w.ProductIntent).
		Add(comp(p.BundlePotential).Mul(w.BundlePotential)).
		Add(comp(p.PremiumRange).Mul(w.PremiumRange)).
		Add(comp(p.Demographics).Mul(w.Demographics)).
		Add(comp(p.Engagement).Mul(w.Engagement)).
		Add(comp(p.CreditTier).Mul(w.CreditTier)).
		Add(comp(p.SourceQuality).Mul(w.SourceQuality))

	band := m.bandFor(score)
	return domain.ScoredLead{
		Lead:               p,
		Score:              score,
		PredictedSegment:   band.Tier,
		ExpectedConversion: band.ExpectedConversion,
		ExpectedLTV:        band.ExpectedLTV,
		MaxJustifiedCAC:    band.MaxJustifiedCAC,
	}, clamped
}

// ScoreLeads scores a batch and reports how many leads needed clamping.
func (m *Model) ScoreLeads(profiles []domain.LeadProfile) ([]domain.ScoredLead, int) {
	out := make([]domain.ScoredLead, 0, len(profiles))
	clampedCount := 0
	for _, p := range profiles {
		scored, clamped := m.ScoreLead(p)
		if clamped {
			clampedCount++
		}
		out = append(out, scored)
	}
	return out, clampedCount
}

func (m *Model) bandFor(score decimal.Decimal) benchmarks.SegmentBand {
	for _, band := range m.tables.SegmentBands {
		if score.GreaterThanOrEqual(band.MinScore) {
			return band
		}
	}
	return m.tables.SegmentBands[len(m.tables.SegmentBands)-1]
}
