package simulation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func organicScenario() domain.ScenarioConfig {
	override := d(0.91)
	return domain.ScenarioConfig{
		Name:  "organic-baseline",
		Stage: domain.StageGrowth,
		ProductMix: map[domain.ProductType]domain.ProductMixEntry{
			domain.ProductAuto: {Policies: 600, AveragePremium: d(1650), CommissionRate: d(0.12)},
			domain.ProductHome: {Policies: 400, AveragePremium: d(1450), CommissionRate: d(0.13)},
		},
		AnnualRetentionOverride: &override,
		OrganicPoliciesPerMonth: d(13.5),
		Multipliers:             domain.NeutralMultipliers(),
	}
}

func seedState() domain.AgencyState {
	return domain.AgencyState{Policies: 1000, Customers: 600, AveragePremium: d(1580)}
}

func TestRunOrganicBaselineGrowsEveryMonth(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	result, err := engine.Run(context.Background(), organicScenario(), seedState(), 24)
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 24)

	first := result.Snapshots[0]
	assert.True(t, first.AdjustedRetention.Equal(d(0.91)))

	// 13.5 walk-in policies against roughly 7.8 churned: net growth, monthly.
	pc, _ := first.PolicyChurn.Float64()
	assert.InDelta(t, 7.83, pc, 0.05)

	prev := result.Seed.Policies
	for _, s := range result.Snapshots {
		assert.Greater(t, s.Policies, prev, "month %d shrank", s.Month)
		prev = s.Policies
	}
	assert.True(t, result.NetPolicyChange().IsPositive())
}

func TestRunIsDeterministic(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	a, err := engine.Run(context.Background(), organicScenario(), seedState(), 12)
	require.NoError(t, err)
	b, err := engine.Run(context.Background(), organicScenario(), seedState(), 12)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	for i := range a.Snapshots {
		assert.Equal(t, a.Snapshots[i].Policies, b.Snapshots[i].Policies, "month %d", i+1)
		assert.True(t, a.Snapshots[i].Revenue.Equal(b.Snapshots[i].Revenue), "month %d", i+1)
	}
}

func TestRunPaidChannelOutgrowsOrganicOnly(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	base := organicScenario()
	organic, err := engine.Run(context.Background(), base, seedState(), 12)
	require.NoError(t, err)

	funded := organicScenario()
	funded.Channels = []domain.MarketingChannel{
		{Name: "google_ads", CostPerLead: d(45), ConversionRate: d(0.12)},
	}
	funded.ChannelSpend = domain.ChannelSpend{"google_ads": d(5000)}
	paid, err := engine.Run(context.Background(), funded, seedState(), 12)
	require.NoError(t, err)

	assert.Greater(t, paid.Final().Policies, organic.Final().Policies)
	assert.True(t, paid.Final().PaidCustomers.IsPositive())
	assert.True(t, organic.Final().PaidCustomers.IsZero())
}

func TestRunRetentionFloorRecordedAsClamp(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	scenario := organicScenario()
	override := d(0.61)
	scenario.AnnualRetentionOverride = &override
	scenario.RateIncrease = d(0.12) // 0.61 - 0.036 lands below the 0.60 floor

	result, err := engine.Run(context.Background(), scenario, seedState(), 6)
	require.NoError(t, err)

	require.NotEmpty(t, result.Clamps)
	for _, c := range result.Clamps {
		assert.Equal(t, "adjusted_retention", c.Field)
		assert.True(t, c.Applied.Equal(d(0.60)))
		assert.True(t, c.Attempted.LessThan(c.Applied))
	}
	assert.True(t, result.Snapshots[0].AdjustedRetention.Equal(d(0.60)))
}

func TestRunRetentionMultiplierCannotUndercutFloor(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	scenario := organicScenario()
	override := d(0.62)
	scenario.AnnualRetentionOverride = &override
	scenario.RateIncrease = d(0.12)
	scenario.Multipliers.Retention = d(0.97) // (0.62 - 0.036) x 0.97 = 0.56648

	result, err := engine.Run(context.Background(), scenario, seedState(), 3)
	require.NoError(t, err)

	require.NotEmpty(t, result.Clamps)
	for _, c := range result.Clamps {
		assert.Equal(t, "adjusted_retention", c.Field)
		assert.True(t, c.Attempted.Equal(d(0.56648)), "got %s", c.Attempted)
		assert.True(t, c.Applied.Equal(d(0.60)))
	}
	for _, s := range result.Snapshots {
		assert.True(t, s.AdjustedRetention.GreaterThanOrEqual(d(0.60)), "month %d below floor", s.Month)
	}
}

func TestRunStaffingAssessment(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	scenario := organicScenario()
	scenario.Staffing = domain.StaffingPlan{Producers: d(2), CSRs: d(2)}

	result, err := engine.Run(context.Background(), scenario, seedState(), 6)
	require.NoError(t, err)

	require.NotNil(t, result.Staffing)
	// 2 CSRs x 450 policies per CSR at the growth stage, no technology lift.
	assert.True(t, result.Staffing.CSRCapacity.Equal(d(900)), "got %s", result.Staffing.CSRCapacity)
	assert.Equal(t, result.Final().Policies, result.Staffing.Policies)
	assert.False(t, result.Staffing.Adequate, "a 1000-policy book exceeds 900 capacity")

	scenario.Technology.CRM = true
	scenario.Technology.SelfServicePortal = true
	lifted, err := engine.Run(context.Background(), scenario, seedState(), 6)
	require.NoError(t, err)
	require.NotNil(t, lifted.Staffing)
	// 900 x 1.10 x 1.15 = 1138.5
	assert.True(t, lifted.Staffing.CSRCapacity.Equal(d(1138.5)), "got %s", lifted.Staffing.CSRCapacity)

	unstaffed, err := engine.Run(context.Background(), organicScenario(), seedState(), 6)
	require.NoError(t, err)
	assert.Nil(t, unstaffed.Staffing)
}

func TestRunAggregateOnlySkipsAdvisoryModels(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	result, err := engine.Run(context.Background(), organicScenario(), seedState(), 6)
	require.NoError(t, err)

	assert.Nil(t, result.CrossSellPlan)
	assert.Nil(t, result.ReferralRoster)
	assert.Nil(t, result.VendorReport)
	assert.Nil(t, result.Snapshots[0].SegmentDistribution)
}

func TestRunPortfolioFeedsAdvisoryModels(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	scenario := organicScenario()
	scenario.Customers = []domain.Customer{
		{
			ID:            "c-1",
			Products:      []domain.ProductType{domain.ProductAuto, domain.ProductHome},
			AnnualPremium: d(2800),
			TenureDays:    400,
			YearsRetained: d(3),
			Engagement:    d(85),
			NPS:           d(80),
		},
		{
			ID:            "c-2",
			Products:      []domain.ProductType{domain.ProductAuto},
			AnnualPremium: d(1200),
			TenureDays:    200,
			YearsRetained: d(1),
			Engagement:    d(40),
			NPS:           d(50),
			ClaimsCount:   1,
		},
	}
	scenario.Vendors = []domain.Vendor{
		{Name: "EverQuote", Spend: d(12000), Leads: 240, ConversionRate: d(0.138), AverageLTV: d(11910)},
	}

	result, err := engine.Run(context.Background(), scenario, seedState(), 6)
	require.NoError(t, err)

	require.NotNil(t, result.CrossSellPlan)
	require.NotNil(t, result.ReferralRoster)
	require.NotNil(t, result.VendorReport)
	assert.NotEmpty(t, result.Snapshots[0].SegmentDistribution)
	assert.Equal(t, domain.VendorExcellent, result.VendorReport.Rankings[0].Rating)
}

func TestRunWorkingCapitalPresent(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	scenario := organicScenario()
	scenario.MonthlyExpenses = d(15000)

	result, err := engine.Run(context.Background(), scenario, seedState(), 12)
	require.NoError(t, err)
	assert.True(t, result.WorkingCapital.IsPositive())
}

func TestRunValidation(t *testing.T) {
	engine := NewEngine(benchmarks.Default())
	ctx := context.Background()

	_, err := engine.Run(ctx, organicScenario(), seedState(), 0)
	assert.Error(t, err)

	_, err = engine.Run(ctx, organicScenario(), seedState(), MaxMonths+1)
	assert.Error(t, err)

	_, err = engine.Run(ctx, organicScenario(), domain.AgencyState{Policies: 100}, 12)
	assert.Error(t, err, "policies without customers")

	bad := organicScenario()
	bad.ProductMix = nil
	_, err = engine.Run(ctx, bad, seedState(), 12)
	assert.Error(t, err, "empty product mix")

	negative := organicScenario()
	negative.Channels = []domain.MarketingChannel{{Name: "x", CostPerLead: d(40), ConversionRate: d(0.1)}}
	negative.ChannelSpend = domain.ChannelSpend{"x": d(-100)}
	_, err = engine.Run(ctx, negative, seedState(), 12)
	assert.Error(t, err, "negative spend")

	tooHigh := organicScenario()
	override := d(1.2)
	tooHigh.AnnualRetentionOverride = &override
	_, err = engine.Run(ctx, tooHigh, seedState(), 12)
	assert.Error(t, err, "override outside [0,1]")
}

func TestRunHonorsContextCancellation(t *testing.T) {
	engine := NewEngine(benchmarks.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, organicScenario(), seedState(), 12)
	assert.ErrorIs(t, err, context.Canceled)
}
