package breakeven

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

func solverScenario() domain.ScenarioConfig {
	override := d(0.91)
	return domain.ScenarioConfig{
		Name: "breakeven-base",
		Channels: []domain.MarketingChannel{
			{Name: "google_ads", CostPerLead: d(45), ConversionRate: d(0.12)},
		},
		ChannelSpend: domain.ChannelSpend{"google_ads": d(1000)},
		ProductMix: map[domain.ProductType]domain.ProductMixEntry{
			domain.ProductAuto: {Policies: 1000, AveragePremium: d(1650), CommissionRate: d(0.12)},
		},
		AnnualRetentionOverride: &override,
		Multipliers:             domain.NeutralMultipliers(),
	}
}

func seedState() domain.AgencyState {
	return domain.AgencyState{Policies: 1000, Customers: 600, AveragePremium: d(1580)}
}

func TestRequiredSpendFindsMinimum(t *testing.T) {
	engine := simulation.NewEngine(benchmarks.Default())
	solver := New(engine, SolverOptions{})

	target := 1100
	solution, err := solver.RequiredSpend(context.Background(), solverScenario(), seedState(), 12, target)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, solution.FinalPolicies, target)
	assert.True(t, solution.MonthlySpend.IsPositive())
	assert.Greater(t, solution.Iterations, 2)

	// Spending meaningfully less must miss the target, or the solution was
	// not minimal.
	lean := solverScenario()
	lean.ChannelSpend["google_ads"] = solution.MonthlySpend.Mul(d(0.9))
	leanRun, err := engine.Run(context.Background(), lean, seedState(), 12)
	require.NoError(t, err)
	assert.Less(t, leanRun.Final().Policies, target)
}

func TestRequiredSpendZeroWhenTargetAlreadyMet(t *testing.T) {
	engine := simulation.NewEngine(benchmarks.Default())
	solver := New(engine, SolverOptions{})

	scenario := solverScenario()
	scenario.OrganicPoliciesPerMonth = d(20)

	solution, err := solver.RequiredSpend(context.Background(), scenario, seedState(), 12, 900)
	require.NoError(t, err)
	assert.True(t, solution.MonthlySpend.IsZero())
	assert.GreaterOrEqual(t, solution.FinalPolicies, 900)
}

func TestRequiredSpendUnreachable(t *testing.T) {
	engine := simulation.NewEngine(benchmarks.Default())
	solver := New(engine, SolverOptions{MaxMonthlySpend: d(10000)})

	_, err := solver.RequiredSpend(context.Background(), solverScenario(), seedState(), 12, 5_000_000)
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}

func TestRequiredSpendRejectsBadInputs(t *testing.T) {
	engine := simulation.NewEngine(benchmarks.Default())
	solver := New(engine, SolverOptions{})
	ctx := context.Background()

	_, err := solver.RequiredSpend(ctx, solverScenario(), seedState(), 12, -5)
	assert.Error(t, err)

	noChannels := solverScenario()
	noChannels.Channels = nil
	_, err = solver.RequiredSpend(ctx, noChannels, seedState(), 12, 1100)
	assert.Error(t, err)
}

func TestWithTotalSpendSplitsEvenlyFromZero(t *testing.T) {
	base := solverScenario()
	base.Channels = append(base.Channels, domain.MarketingChannel{
		Name: "direct_mail", CostPerLead: d(80), ConversionRate: d(0.06),
	})
	base.ChannelSpend = domain.ChannelSpend{}

	out := withTotalSpend(base, d(9000))
	assert.True(t, out.ChannelSpend["google_ads"].Equal(d(4500)))
	assert.True(t, out.ChannelSpend["direct_mail"].Equal(d(4500)))
	assert.Empty(t, base.ChannelSpend, "base mutated")
}
