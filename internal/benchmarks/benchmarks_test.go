package benchmarks

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/summitpoint/agencysim/internal/domain"
)

func TestLeadWeightsSumToOne(t *testing.T) {
	w := Default().LeadWeights
	sum := w.ProductIntent.
		Add(w.BundlePotential).
		Add(w.PremiumRange).
		Add(w.Demographics).
		Add(w.Engagement).
		Add(w.CreditTier).
		Add(w.SourceQuality)
	assert.True(t, sum.Equal(decimal.NewFromInt(1)), "lead weights sum to %s", sum)
}

func TestReferralWeightsSumToOne(t *testing.T) {
	w := Default().ReferralScoreWeights
	sum := w.Tenure.
		Add(w.ProductCount).
		Add(w.Retention).
		Add(w.Engagement).
		Add(w.Claims).
		Add(w.Satisfaction)
	assert.True(t, sum.Equal(decimal.NewFromInt(1)), "referral weights sum to %s", sum)
}

func TestSeasonalityAveragesToOne(t *testing.T) {
	tables := Default()
	sum := decimal.Zero
	for _, idx := range tables.Seasonality {
		sum = sum.Add(idx)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(12)), "seasonality sums to %s", sum)
}

func TestSeasonalIndexWrapsAcrossYears(t *testing.T) {
	tables := Default()
	assert.True(t, tables.SeasonalIndex(1).Equal(tables.SeasonalIndex(13)))
	assert.True(t, tables.SeasonalIndex(12).Equal(tables.SeasonalIndex(24)))
	assert.True(t, tables.SeasonalIndex(0).Equal(decimal.NewFromInt(1)))
}

func TestProductTableCoversAllLines(t *testing.T) {
	tables := Default()
	for _, pt := range domain.AllProductTypes() {
		p, ok := tables.Product(pt)
		assert.True(t, ok, "missing product %s", pt)
		assert.True(t, p.AveragePremium.IsPositive(), "%s premium", pt)
		assert.True(t, p.CommissionRate.IsPositive(), "%s commission", pt)
	}
}

func TestRetentionBandsDescendAndTerminate(t *testing.T) {
	bands := Default().RetentionBands
	for i := 1; i < len(bands); i++ {
		assert.True(t, bands[i].MinPPC.LessThan(bands[i-1].MinPPC))
		assert.True(t, bands[i].Retention.LessThan(bands[i-1].Retention))
	}
	assert.True(t, bands[len(bands)-1].MinPPC.IsZero(), "last band must catch everything")
}

func TestBonusStepsAscend(t *testing.T) {
	steps := Default().BonusSteps
	for i := 1; i < len(steps); i++ {
		assert.True(t, steps[i].Threshold.GreaterThan(steps[i-1].Threshold))
		assert.True(t, steps[i].Multiplier.LessThan(steps[i-1].Multiplier))
	}
}
