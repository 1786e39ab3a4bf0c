package referral

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func champion() domain.Customer {
	return domain.Customer{
		ID:            "champ",
		Products:      []domain.ProductType{domain.ProductAuto, domain.ProductHome, domain.ProductUmbrella, domain.ProductLife},
		TenureDays:    2000,
		YearsRetained: d(6),
		Engagement:    d(90),
		ClaimsCount:   0,
		NPS:           d(95),
	}
}

func detractor() domain.Customer {
	return domain.Customer{
		ID:            "det",
		Products:      []domain.ProductType{domain.ProductRenters},
		TenureDays:    90,
		YearsRetained: d(0.25),
		Engagement:    d(15),
		ClaimsCount:   3,
		NPS:           d(20),
	}
}

func TestScoreChampion(t *testing.T) {
	m := New(benchmarks.Default())

	score, clamped := m.Score(champion())
	assert.False(t, clamped)

	// Saturated tenure/products/retention/claims, 90 engagement, 95 NPS:
	// 25 + 20 + 20 + 13.5 + 10 + 9.5.
	got, _ := score.Float64()
	assert.InDelta(t, 98, got, 1e-9)

	tier, profile := m.TierFor(score)
	assert.Equal(t, domain.TierChampion, tier)
	assert.True(t, profile.ReferralRate.Equal(d(0.08)))
}

func TestScoreDetractor(t *testing.T) {
	m := New(benchmarks.Default())

	score, _ := m.Score(detractor())
	tier, _ := m.TierFor(score)
	assert.Equal(t, domain.TierDetractor, tier)
}

func TestScoreClampsComponents(t *testing.T) {
	m := New(benchmarks.Default())

	c := champion()
	c.Engagement = d(140)
	_, clamped := m.Score(c)
	assert.True(t, clamped)
}

func TestTierBoundaries(t *testing.T) {
	m := New(benchmarks.Default())

	cases := []struct {
		score float64
		want  domain.ReferralTier
	}{
		{85, domain.TierChampion},
		{80, domain.TierChampion},
		{79.9, domain.TierPromoter},
		{60, domain.TierPromoter},
		{59.9, domain.TierPassive},
		{40, domain.TierPassive},
		{39.9, domain.TierDetractor},
		{5, domain.TierDetractor},
	}
	for _, tc := range cases {
		tier, _ := m.TierFor(d(tc.score))
		assert.Equal(t, tc.want, tier, "score %v", tc.score)
	}
}

func TestRosterExposesSmallViralCoefficient(t *testing.T) {
	m := New(benchmarks.Default())

	roster := m.Roster([]domain.Customer{champion(), detractor()})
	require.Len(t, roster.Candidates, 2)
	assert.Equal(t, "champ", roster.Candidates[0].CustomerID, "candidates sorted by score")
	assert.Equal(t, 1, roster.TierCounts[domain.TierChampion])
	assert.Equal(t, 1, roster.TierCounts[domain.TierDetractor])

	// k is computed and reported even when tiny; viability is a separate claim.
	assert.True(t, roster.ViralCoefficient.IsPositive())
	assert.False(t, roster.GrowthEngineViable)

	// Expected flow: per-customer tier rate x avg referrals, then conversion.
	assert.True(t, roster.ExpectedNewCustomers.Equal(
		roster.ExpectedReferrals.Mul(d(0.35))))
}

func TestRosterViableWithStrongerEconomics(t *testing.T) {
	tables := benchmarks.Default()
	tables.AvgReferralsPerReferrer = d(2.0)
	tables.ReferralConversionRate = d(0.9)
	m := New(tables)

	roster := m.Roster([]domain.Customer{champion(), champion(), champion()})
	k, _ := roster.ViralCoefficient.Float64()
	assert.InDelta(t, 0.144, k, 1e-9) // 0.08 x 2.0 x 0.9
	assert.True(t, roster.GrowthEngineViable)
}

func TestRosterEmptyPortfolio(t *testing.T) {
	m := New(benchmarks.Default())
	roster := m.Roster(nil)
	assert.True(t, roster.ViralCoefficient.IsZero())
	assert.False(t, roster.GrowthEngineViable)
	assert.True(t, roster.ExpectedNewCustomers.IsZero())
}
