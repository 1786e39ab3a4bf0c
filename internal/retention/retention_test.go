package retention

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestBaseRetentionBands(t *testing.T) {
	m := New(benchmarks.Default())

	cases := []struct {
		ppc  float64
		want float64
	}{
		{2.1, 0.95},
		{1.8, 0.95}, // boundary is inclusive
		{1.79, 0.91},
		{1.5, 0.91},
		{1.49, 0.67},
		{1.0, 0.67},
		{0, 0.67},
	}
	for _, tc := range cases {
		got := m.BaseRetention(d(tc.ppc))
		assert.True(t, got.Equal(d(tc.want)), "ppc %v: got %s want %v", tc.ppc, got, tc.want)
	}
}

func TestBaseRetentionMonotoneInPPC(t *testing.T) {
	m := New(benchmarks.Default())
	prev := decimal.Zero
	for ppc := 0.5; ppc <= 2.5; ppc += 0.05 {
		got := m.BaseRetention(d(ppc))
		assert.True(t, got.GreaterThanOrEqual(prev), "retention dropped at ppc %v", ppc)
		prev = got
	}
}

func TestAdjustModerateRateAction(t *testing.T) {
	m := New(benchmarks.Default())
	override := d(0.85)

	res := m.Adjust(Input{
		PPC:            d(1.9), // would give 0.95, but the override wins
		AnnualOverride: &override,
		RateIncrease:   d(0.12),
		Multiplier:     decimal.NewFromInt(1),
	})

	assert.True(t, res.BaseRetention.Equal(d(0.85)))
	assert.True(t, res.AdditionalChurn.Equal(d(0.036)), "got %s", res.AdditionalChurn)
	assert.True(t, res.AdjustedRetention.Equal(d(0.814)), "got %s", res.AdjustedRetention)
	assert.Equal(t, SeverityModerate, res.Severity)
	assert.False(t, res.Floored)
	assert.False(t, res.Capped)
}

func TestAdjustSeverityBands(t *testing.T) {
	m := New(benchmarks.Default())

	mild := m.Adjust(Input{PPC: d(1.8), RateIncrease: d(0.04)})
	assert.Equal(t, SeverityMild, mild.Severity) // 1.2 points

	moderate := m.Adjust(Input{PPC: d(1.8), RateIncrease: d(0.15)})
	assert.Equal(t, SeverityModerate, moderate.Severity) // 4.5 points, boundary inclusive

	severe := m.Adjust(Input{PPC: d(1.8), RateIncrease: d(0.20)})
	assert.Equal(t, SeveritySevere, severe.Severity) // 6 points
}

func TestAdjustFloorsAtBenchmark(t *testing.T) {
	m := New(benchmarks.Default())
	override := d(0.62)

	res := m.Adjust(Input{
		AnnualOverride: &override,
		RateIncrease:   d(0.12), // 0.62 - 0.036 = 0.584, below the 0.60 floor
	})
	assert.True(t, res.AdjustedRetention.Equal(d(0.60)), "got %s", res.AdjustedRetention)
	assert.True(t, res.Floored)
}

func TestAdjustMultiplierCannotUndercutFloor(t *testing.T) {
	m := New(benchmarks.Default())
	override := d(0.62)

	// (0.62 - 0.036) x 0.97 = 0.56648; the floor applies to the final value,
	// not an intermediate one.
	res := m.Adjust(Input{
		AnnualOverride: &override,
		RateIncrease:   d(0.12),
		Multiplier:     d(0.97),
	})
	assert.True(t, res.Unclamped.Equal(d(0.56648)), "got %s", res.Unclamped)
	assert.True(t, res.AdjustedRetention.Equal(d(0.60)), "got %s", res.AdjustedRetention)
	assert.True(t, res.Floored)
	assert.True(t, res.AdjustedRetention.GreaterThanOrEqual(d(0.60)))
}

func TestAdjustMultiplierCap(t *testing.T) {
	m := New(benchmarks.Default())
	override := d(0.98)

	res := m.Adjust(Input{
		AnnualOverride: &override,
		Multiplier:     d(1.10),
	})
	assert.True(t, res.AdjustedRetention.Equal(decimal.NewFromInt(1)))
	assert.True(t, res.Capped)
}

func TestMonthlyRetention(t *testing.T) {
	got, _ := MonthlyRetention(d(0.91)).Float64()
	assert.InDelta(t, 0.992172, got, 0.00001)

	assert.True(t, MonthlyRetention(decimal.Zero).IsZero())
	assert.True(t, MonthlyRetention(decimal.NewFromInt(1)).Equal(decimal.NewFromInt(1)))
}

func TestChurnTakesWholeRelationship(t *testing.T) {
	m := New(benchmarks.Default())
	state := domain.AgencyState{Policies: 1000, Customers: 600}

	customerChurn, policyChurn := m.Churn(state, d(0.91))

	cc, _ := customerChurn.Float64()
	pc, _ := policyChurn.Float64()
	require.InDelta(t, 4.697, cc, 0.01)
	require.InDelta(t, 7.828, pc, 0.02)

	// Policy churn is exactly customer churn times PPC.
	assert.True(t, policyChurn.Equal(customerChurn.Mul(state.PoliciesPerCustomer())))
}

func TestChurnEmptyBook(t *testing.T) {
	m := New(benchmarks.Default())
	customerChurn, policyChurn := m.Churn(domain.AgencyState{}, d(0.91))
	assert.True(t, customerChurn.IsZero())
	assert.True(t, policyChurn.IsZero())
}
