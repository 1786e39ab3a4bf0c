// Package breakeven solves for the monthly lead spend required to hit a
// target ending policy count, by binary search over full simulation runs.
// Ending policies are monotonically non-decreasing in spend, which is what
// makes the bisection valid.
package breakeven

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/domain"
)

// ErrTargetUnreachable is returned when even the maximum allowed spend does
// not reach the target policy count over the horizon.
var ErrTargetUnreachable = errors.New("target policy count unreachable within spend ceiling")

// Runner is the slice of the simulation engine the solver needs.
type Runner interface {
	Run(ctx context.Context, scenario domain.ScenarioConfig, seed domain.AgencyState, months int) (*domain.SimulationResult, error)
}

// SolverOptions bound the search.
type SolverOptions struct {
	// MaxMonthlySpend is the spend ceiling; zero selects the default.
	MaxMonthlySpend decimal.Decimal
	// ToleranceDollars stops the bisection once the bracket is this narrow.
	ToleranceDollars decimal.Decimal
	// MaxIterations is a hard stop independent of the tolerance.
	MaxIterations int
}

func (o SolverOptions) withDefaults() SolverOptions {
	if o.MaxMonthlySpend.IsZero() {
		o.MaxMonthlySpend = decimal.NewFromInt(500000)
	}
	if o.ToleranceDollars.IsZero() {
		o.ToleranceDollars = decimal.NewFromInt(1)
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = 60
	}
	return o
}

// Solution is the solved spend level and the run it produced.
type Solution struct {
	MonthlySpend  decimal.Decimal          `json:"monthlySpend"`
	FinalPolicies int                      `json:"finalPolicies"`
	Iterations    int                      `json:"iterations"`
	Result        *domain.SimulationResult `json:"result,omitempty"`
}

// Solver finds the minimum monthly lead spend reaching a policy target.
type Solver struct {
	runner Runner
	opts   SolverOptions
}

// New creates a solver; zero-value options select the defaults.
func New(runner Runner, opts SolverOptions) *Solver {
	return &Solver{runner: runner, opts: opts.withDefaults()}
}

// RequiredSpend returns the smallest total monthly channel spend whose run
// ends at or above targetPolicies. The scenario's channel mix is preserved;
// only the total is scaled.
func (s *Solver) RequiredSpend(ctx context.Context, base domain.ScenarioConfig, seed domain.AgencyState, months, targetPolicies int) (*Solution, error) {
	if targetPolicies < 0 {
		return nil, fmt.Errorf("target policy count cannot be negative, got %d", targetPolicies)
	}
	if len(base.Channels) == 0 {
		return nil, fmt.Errorf("scenario %q has no marketing channels to fund", base.Name)
	}

	iterations := 0
	runAt := func(spend decimal.Decimal) (*domain.SimulationResult, error) {
		iterations++
		variant := withTotalSpend(base, spend)
		return s.runner.Run(ctx, variant, seed, months)
	}

	low := decimal.Zero
	lowResult, err := runAt(low)
	if err != nil {
		return nil, err
	}
	if lowResult.Final().Policies >= targetPolicies {
		return &Solution{
			MonthlySpend:  low,
			FinalPolicies: lowResult.Final().Policies,
			Iterations:    iterations,
			Result:        lowResult,
		}, nil
	}

	high := s.opts.MaxMonthlySpend
	highResult, err := runAt(high)
	if err != nil {
		return nil, err
	}
	if highResult.Final().Policies < targetPolicies {
		return nil, fmt.Errorf("%w: %s/month ends at %d policies, target %d",
			ErrTargetUnreachable, high.StringFixed(0), highResult.Final().Policies, targetPolicies)
	}

	best := highResult
	bestSpend := high
	two := decimal.NewFromInt(2)
	for i := 0; i < s.opts.MaxIterations && high.Sub(low).GreaterThan(s.opts.ToleranceDollars); i++ {
		mid := low.Add(high).Div(two)
		midResult, err := runAt(mid)
		if err != nil {
			return nil, err
		}
		if midResult.Final().Policies >= targetPolicies {
			high = mid
			best = midResult
			bestSpend = mid
		} else {
			low = mid
		}
	}

	return &Solution{
		MonthlySpend:  bestSpend,
		FinalPolicies: best.Final().Policies,
		Iterations:    iterations,
		Result:        best,
	}, nil
}

// withTotalSpend clones the scenario with its channel budget rescaled to the
// given monthly total. A base with no budget entries splits the total across
// channels evenly.
func withTotalSpend(base domain.ScenarioConfig, total decimal.Decimal) domain.ScenarioConfig {
	out := base.Clone()
	current := out.ChannelSpend.Total()
	if !current.IsZero() {
		factor := total.Div(current)
		for channel, v := range out.ChannelSpend {
			out.ChannelSpend[channel] = v.Mul(factor)
		}
		return out
	}
	if out.ChannelSpend == nil {
		out.ChannelSpend = domain.ChannelSpend{}
	}
	names := make([]string, 0, len(out.Channels))
	for _, ch := range out.Channels {
		names = append(names, ch.Name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return out
	}
	share := total.Div(decimal.NewFromInt(int64(len(names))))
	for _, name := range names {
		out.ChannelSpend[name] = share
	}
	return out
}
