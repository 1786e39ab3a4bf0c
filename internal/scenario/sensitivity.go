package scenario

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/domain"
)

// Sweep reruns the base scenario once per lever value, holding everything
// else fixed, and reports the annualized net policy change at each point.
// Values are evaluated in the order given.
func (g *Generator) Sweep(ctx context.Context, base domain.ScenarioConfig, seed domain.AgencyState, months int, lever domain.SensitivityLever, values []decimal.Decimal) (*domain.SensitivitySweep, error) {
	if !lever.IsValid() {
		return nil, fmt.Errorf("unknown sensitivity lever %q", lever)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("sensitivity sweep over %q needs at least one value", lever)
	}

	sweep := &domain.SensitivitySweep{
		Lever:  lever,
		Points: make([]domain.SensitivityPoint, 0, len(values)),
	}
	for _, value := range values {
		variant, err := applyLever(base, lever, value)
		if err != nil {
			return nil, err
		}
		result, err := g.runner.Run(ctx, variant, seed, months)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%s: %w", lever, value, err)
		}
		annualized := result.NetPolicyChange().
			Mul(decimal.NewFromInt(12)).
			Div(decimal.NewFromInt(int64(months)))
		sweep.Points = append(sweep.Points, domain.SensitivityPoint{
			Value:                 value,
			AnnualNetPolicyChange: annualized,
		})
	}
	return sweep, nil
}

// applyLever clones the base scenario with one input replaced.
func applyLever(base domain.ScenarioConfig, lever domain.SensitivityLever, value decimal.Decimal) (domain.ScenarioConfig, error) {
	out := base.Clone()
	switch lever {
	case domain.LeverRetention:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
			return out, fmt.Errorf("retention value %s outside [0,1]", value)
		}
		v := value
		out.AnnualRetentionOverride = &v
	case domain.LeverConversion:
		out.Multipliers.Conversion = value
	case domain.LeverLeadSpend:
		if err := rescaleSpend(out.ChannelSpend, value); err != nil {
			return out, err
		}
	case domain.LeverCostPerLead:
		for i := range out.Channels {
			out.Channels[i].CostPerLead = value
		}
	}
	return out, nil
}

// rescaleSpend sets the total monthly spend to target, preserving the channel
// mix. A zero-spend base puts the whole target on the first channel by name.
func rescaleSpend(spend domain.ChannelSpend, target decimal.Decimal) error {
	if target.IsNegative() {
		return fmt.Errorf("lead spend cannot be negative, got %s", target)
	}
	current := spend.Total()
	if !current.IsZero() {
		factor := target.Div(current)
		for channel, v := range spend {
			spend[channel] = v.Mul(factor)
		}
		return nil
	}
	if len(spend) == 0 {
		if target.IsZero() {
			return nil
		}
		return fmt.Errorf("cannot sweep lead spend: scenario has no channels with budget entries")
	}
	names := make([]string, 0, len(spend))
	for channel := range spend {
		names = append(names, channel)
	}
	sort.Strings(names)
	spend[names[0]] = target
	return nil
}
