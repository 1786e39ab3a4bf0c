package acquisition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

func uniformLead(v float64) domain.LeadProfile {
	c := d(v)
	return domain.LeadProfile{
		ID: "lead-1", Source: "test",
		ProductIntent: c, BundlePotential: c, PremiumRange: c,
		Demographics: c, Engagement: c, CreditTier: c, SourceQuality: c,
	}
}

func TestScoreLeadUniformComponents(t *testing.T) {
	m := New(benchmarks.Default())

	// With weights summing to one, uniform components score themselves.
	scored, clamped := m.ScoreLead(uniformLead(80))
	got, _ := scored.Score.Float64()
	assert.InDelta(t, 80, got, 1e-9)
	assert.False(t, clamped)
	assert.Equal(t, domain.TierPremium, scored.PredictedSegment)
}

func TestScoreLeadBands(t *testing.T) {
	m := New(benchmarks.Default())

	cases := []struct {
		score float64
		tier  domain.SegmentTier
	}{
		{95, domain.TierElite},
		{90, domain.TierElite},
		{89.9, domain.TierPremium},
		{70, domain.TierPremium},
		{69.9, domain.TierStandard},
		{50, domain.TierStandard},
		{49.9, domain.TierLowValue},
		{10, domain.TierLowValue},
	}
	for _, tc := range cases {
		scored, _ := m.ScoreLead(uniformLead(tc.score))
		assert.Equal(t, tc.tier, scored.PredictedSegment, "score %v", tc.score)
		assert.True(t, scored.ExpectedLTV.IsPositive())
		assert.True(t, scored.MaxJustifiedCAC.IsPositive())
	}
}

func TestScoreLeadClampsComponents(t *testing.T) {
	m := New(benchmarks.Default())

	lead := uniformLead(50)
	lead.Engagement = d(180)
	lead.CreditTier = d(-20)

	scored, clamped := m.ScoreLead(lead)
	assert.True(t, clamped)

	// Engagement clamps to 100, credit tier to 0.
	want := 50*0.25 + 50*0.20 + 50*0.15 + 50*0.15 + 100*0.10 + 0*0.10 + 50*0.05
	got, _ := scored.Score.Float64()
	assert.InDelta(t, want, got, 1e-9)
}

func TestScoreLeadsCountsClamped(t *testing.T) {
	m := New(benchmarks.Default())

	dirty := uniformLead(60)
	dirty.Demographics = d(150)

	scored, clampedCount := m.ScoreLeads([]domain.LeadProfile{uniformLead(40), dirty, uniformLead(90)})
	assert.Len(t, scored, 3)
	assert.Equal(t, 1, clampedCount)
}
