package scenario

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/segmentation"
)

// Runner is the slice of the simulation engine the generator needs.
type Runner interface {
	Run(ctx context.Context, scenario domain.ScenarioConfig, seed domain.AgencyState, months int) (*domain.SimulationResult, error)
}

// Generator turns one base scenario into a comparison across templates, and
// sweeps single levers for sensitivity analysis. Runs are sequential: each
// variant is a full engine run and results are reported in template order.
type Generator struct {
	runner   Runner
	tables   benchmarks.Tables
	seg      *segmentation.Model
	Registry *TemplateRegistry
}

// NewGenerator wires a generator over an engine and benchmark tables.
func NewGenerator(runner Runner, tables benchmarks.Tables) *Generator {
	return &Generator{
		runner:   runner,
		tables:   tables,
		seg:      segmentation.New(tables),
		Registry: NewTemplateRegistry(),
	}
}

// Compare runs the base scenario under each named template and tabulates the
// outcomes. With no names given, the three standard postures are used in
// conservative-moderate-aggressive order.
func (g *Generator) Compare(ctx context.Context, base domain.ScenarioConfig, seed domain.AgencyState, months int, names ...string) (*domain.ScenarioComparison, error) {
	if len(names) == 0 {
		names = []string{"conservative", "moderate", "aggressive"}
	}

	cmp := &domain.ScenarioComparison{
		BaseScenarioName: base.Name,
		Months:           months,
		Rows:             make([]domain.ScenarioRow, 0, len(names)),
	}
	for _, name := range names {
		tmpl, err := g.Registry.Get(name)
		if err != nil {
			return nil, err
		}
		variant := tmpl.Apply(base)
		result, err := g.runner.Run(ctx, variant, seed, months)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		cmp.Rows = append(cmp.Rows, g.row(variant, result))
	}
	return cmp, nil
}

// row derives the comparison metrics from one completed run.
func (g *Generator) row(scenario domain.ScenarioConfig, result *domain.SimulationResult) domain.ScenarioRow {
	row := domain.ScenarioRow{Name: result.ScenarioName}
	if result.Empty() {
		return row
	}

	final := result.Final()
	row.FinalPolicies = final.Policies
	row.PoliciesPerCustomer = final.PoliciesPerCustomer
	row.CombinedRatio = final.CombinedRatio
	row.NetProfit = result.TotalAccrualProfit()

	if revenue := result.TotalRevenue(); !revenue.IsZero() {
		row.EBITDAMargin = row.NetProfit.Div(revenue)
	}
	row.LTVtoCAC = g.ltvToCAC(scenario, result)
	return row
}

// ltvToCAC values the final-month customer against the blended acquisition
// cost of the run's paid channels. Runs with no paid spend or no paid
// acquisitions report zero.
func (g *Generator) ltvToCAC(scenario domain.ScenarioConfig, result *domain.SimulationResult) decimal.Decimal {
	paidCustomers := decimal.Zero
	for i := range result.Snapshots {
		paidCustomers = paidCustomers.Add(result.Snapshots[i].PaidCustomers)
	}
	totalSpend := scenario.ChannelSpend.Total().Mul(decimal.NewFromInt(int64(result.Months)))
	if paidCustomers.IsZero() || totalSpend.IsZero() {
		return decimal.Zero
	}
	cac := totalSpend.Div(paidCustomers)

	final := result.Final()
	premiumPerCustomer := final.AveragePremium.Mul(final.PoliciesPerCustomer)
	ltv := g.seg.LTV(segmentation.LTVInput{
		AnnualCommission: premiumPerCustomer.Mul(scenario.BlendedCommissionRate()),
		ServicingCost:    g.servicingPerPolicy(scenario).Mul(final.PoliciesPerCustomer),
		AnnualRetention:  final.AdjustedRetention,
		PremiumInflation: scenario.PremiumInflation,
	})
	if cac.IsZero() {
		return decimal.Zero
	}
	return ltv.Div(cac)
}

// servicingPerPolicy blends the benchmark per-policy servicing cost across the
// scenario's product mix.
func (g *Generator) servicingPerPolicy(scenario domain.ScenarioConfig) decimal.Decimal {
	total := decimal.Zero
	weighted := decimal.Zero
	for pt, entry := range scenario.ProductMix {
		ref, ok := g.tables.Product(pt)
		if !ok {
			continue
		}
		n := decimal.NewFromInt(int64(entry.Policies))
		total = total.Add(n)
		weighted = weighted.Add(n.Mul(ref.ServicingCost))
	}
	if total.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(total)
}
