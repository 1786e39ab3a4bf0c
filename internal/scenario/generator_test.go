package scenario

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/simulation"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func baseScenario() domain.ScenarioConfig {
	override := d(0.91)
	return domain.ScenarioConfig{
		Name:  "plan-2026",
		Stage: domain.StageGrowth,
		Channels: []domain.MarketingChannel{
			{Name: "google_ads", CostPerLead: d(45), ConversionRate: d(0.12)},
			{Name: "direct_mail", CostPerLead: d(80), ConversionRate: d(0.06)},
		},
		ChannelSpend: domain.ChannelSpend{
			"google_ads":  d(4000),
			"direct_mail": d(2000),
		},
		ProductMix: map[domain.ProductType]domain.ProductMixEntry{
			domain.ProductAuto: {Policies: 600, AveragePremium: d(1650), CommissionRate: d(0.12)},
			domain.ProductHome: {Policies: 400, AveragePremium: d(1450), CommissionRate: d(0.13)},
		},
		AnnualRetentionOverride: &override,
		OrganicPoliciesPerMonth: d(10),
		MonthlyExpenses:         d(20000),
		Multipliers:             domain.NeutralMultipliers(),
	}
}

func seedState() domain.AgencyState {
	return domain.AgencyState{Policies: 1000, Customers: 600, AveragePremium: d(1580)}
}

func newTestGenerator() *Generator {
	engine := simulation.NewEngine(benchmarks.Default())
	return NewGenerator(engine, engine.Tables)
}

func TestCompareDefaultTemplates(t *testing.T) {
	g := newTestGenerator()

	cmp, err := g.Compare(context.Background(), baseScenario(), seedState(), 12)
	require.NoError(t, err)

	require.Len(t, cmp.Rows, 3)
	assert.Equal(t, "conservative", cmp.Rows[0].Name)
	assert.Equal(t, "moderate", cmp.Rows[1].Name)
	assert.Equal(t, "aggressive", cmp.Rows[2].Name)
	assert.Equal(t, "plan-2026", cmp.BaseScenarioName)
	assert.Equal(t, 12, cmp.Months)

	conservative, _ := cmp.RowByName("conservative")
	aggressive, _ := cmp.RowByName("aggressive")
	assert.Greater(t, aggressive.FinalPolicies, conservative.FinalPolicies,
		"aggressive posture must outgrow conservative")

	for _, row := range cmp.Rows {
		assert.True(t, row.PoliciesPerCustomer.IsPositive())
		assert.True(t, row.CombinedRatio.IsPositive())
		assert.True(t, row.LTVtoCAC.IsPositive(), "%s has paid spend, so LTV:CAC must be set", row.Name)
	}
}

func TestCompareUnknownTemplate(t *testing.T) {
	g := newTestGenerator()
	_, err := g.Compare(context.Background(), baseScenario(), seedState(), 12, "reckless")
	assert.Error(t, err)
}

func TestCompareDoesNotMutateBase(t *testing.T) {
	g := newTestGenerator()

	base := baseScenario()
	originalSpend := base.ChannelSpend.Total()

	_, err := g.Compare(context.Background(), base, seedState(), 6)
	require.NoError(t, err)

	assert.True(t, base.ChannelSpend.Total().Equal(originalSpend))
	assert.Equal(t, "plan-2026", base.Name)
	assert.True(t, base.Multipliers.Conversion.Equal(decimal.NewFromInt(1)))
}

func TestLTVtoCACZeroWithoutSpend(t *testing.T) {
	g := newTestGenerator()

	base := baseScenario()
	base.Channels = nil
	base.ChannelSpend = domain.ChannelSpend{}

	cmp, err := g.Compare(context.Background(), base, seedState(), 6, "moderate")
	require.NoError(t, err)
	require.Len(t, cmp.Rows, 1)
	assert.True(t, cmp.Rows[0].LTVtoCAC.IsZero())
}
