package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/breakeven"
	"github.com/summitpoint/agencysim/internal/config"
	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/output"
	"github.com/summitpoint/agencysim/internal/scenario"
	"github.com/summitpoint/agencysim/internal/simulation"
)

const planPath = "../testdata/growth_plan.yaml"

func TestEndToEnd(t *testing.T) {
	t.Run("input_loading", func(t *testing.T) {
		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(planPath)
		require.NoError(t, err, "Should load input successfully")
		require.NotNil(t, input)

		assert.Equal(t, "growth-plan-2026", input.Scenario.Name)
		assert.Equal(t, 24, input.Months)
		assert.Len(t, input.Scenario.Channels, 2)
		assert.Len(t, input.Scenario.Vendors, 2)
		assert.Len(t, input.Scenario.Customers, 3)
	})

	t.Run("simulation_run", func(t *testing.T) {
		input := loadPlan(t)
		engine := simulation.NewEngine(benchmarks.Default())

		result, err := engine.Run(context.Background(), input.Scenario, input.Seed, input.Months)
		require.NoError(t, err)
		require.Len(t, result.Snapshots, input.Months)

		// Funded channels plus organic flow against 91% retention: the book
		// must grow over two years.
		assert.Greater(t, result.Final().Policies, input.Seed.Policies)
		assert.True(t, result.WorkingCapital.IsPositive())

		require.NotNil(t, result.VendorReport)
		assert.Equal(t, "EverQuote", result.VendorReport.Rankings[0].Vendor.Name)
		require.NotNil(t, result.CrossSellPlan)
		require.NotNil(t, result.ReferralRoster)

		// 3 CSRs x 450 at the growth stage, lifted 10% by the CRM.
		require.NotNil(t, result.Staffing)
		assert.True(t, result.Staffing.CSRCapacity.Equal(decimal.NewFromFloat(1485)),
			"got %s", result.Staffing.CSRCapacity)
	})

	t.Run("scenario_comparison", func(t *testing.T) {
		input := loadPlan(t)
		engine := simulation.NewEngine(benchmarks.Default())
		generator := scenario.NewGenerator(engine, engine.Tables)

		cmp, err := generator.Compare(context.Background(), input.Scenario, input.Seed, input.Months)
		require.NoError(t, err)
		require.Len(t, cmp.Rows, 3)

		conservative, ok := cmp.RowByName("conservative")
		require.True(t, ok)
		aggressive, ok := cmp.RowByName("aggressive")
		require.True(t, ok)
		assert.Greater(t, aggressive.FinalPolicies, conservative.FinalPolicies)
	})

	t.Run("sensitivity_sweep", func(t *testing.T) {
		input := loadPlan(t)
		engine := simulation.NewEngine(benchmarks.Default())
		generator := scenario.NewGenerator(engine, engine.Tables)

		sweep, err := generator.Sweep(context.Background(), input.Scenario, input.Seed, input.Months,
			domain.LeverRetention,
			[]decimal.Decimal{decimal.NewFromFloat(0.85), decimal.NewFromFloat(0.93)})
		require.NoError(t, err)
		require.Len(t, sweep.Points, 2)
		assert.True(t, sweep.Points[1].AnnualNetPolicyChange.GreaterThan(sweep.Points[0].AnnualNetPolicyChange))
	})

	t.Run("breakeven_solver", func(t *testing.T) {
		input := loadPlan(t)
		engine := simulation.NewEngine(benchmarks.Default())
		solver := breakeven.New(engine, breakeven.SolverOptions{})

		target := input.Seed.Policies + 300
		solution, err := solver.RequiredSpend(context.Background(), input.Scenario, input.Seed, input.Months, target)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, solution.FinalPolicies, target)
	})

	t.Run("output_formats", func(t *testing.T) {
		input := loadPlan(t)
		engine := simulation.NewEngine(benchmarks.Default())
		result, err := engine.Run(context.Background(), input.Scenario, input.Seed, input.Months)
		require.NoError(t, err)

		for _, format := range []string{"table", "csv", "json"} {
			formatter, err := output.GetFormatterByName(format)
			require.NoError(t, err, format)
			rendered, err := formatter.FormatResult(result)
			require.NoError(t, err, format)
			assert.NotEmpty(t, rendered, format)
		}
	})
}

func loadPlan(t *testing.T) *config.Input {
	t.Helper()
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(planPath)
	require.NoError(t, err)
	return input
}
