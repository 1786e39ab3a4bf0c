package scenario

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitpoint/agencysim/internal/domain"
)

func TestSweepRetentionMonotone(t *testing.T) {
	g := newTestGenerator()

	sweep, err := g.Sweep(context.Background(), baseScenario(), seedState(), 12,
		domain.LeverRetention, []decimal.Decimal{d(0.85), d(0.88), d(0.91), d(0.94)})
	require.NoError(t, err)
	require.Len(t, sweep.Points, 4)
	assert.Equal(t, domain.LeverRetention, sweep.Lever)

	for i := 1; i < len(sweep.Points); i++ {
		assert.True(t,
			sweep.Points[i].AnnualNetPolicyChange.GreaterThan(sweep.Points[i-1].AnnualNetPolicyChange),
			"higher retention must mean more net growth (point %d)", i)
	}
}

func TestSweepConversionMonotone(t *testing.T) {
	g := newTestGenerator()

	sweep, err := g.Sweep(context.Background(), baseScenario(), seedState(), 12,
		domain.LeverConversion, []decimal.Decimal{d(0.8), d(1.0), d(1.2)})
	require.NoError(t, err)

	for i := 1; i < len(sweep.Points); i++ {
		assert.True(t,
			sweep.Points[i].AnnualNetPolicyChange.GreaterThan(sweep.Points[i-1].AnnualNetPolicyChange))
	}
}

func TestSweepLeadSpendPreservesMix(t *testing.T) {
	base := baseScenario()
	variant, err := applyLever(base, domain.LeverLeadSpend, d(12000))
	require.NoError(t, err)

	assert.True(t, variant.ChannelSpend.Total().Equal(d(12000)))
	// google_ads held 2/3 of the budget before; it still does.
	assert.True(t, variant.ChannelSpend["google_ads"].Equal(d(8000)))
	assert.True(t, variant.ChannelSpend["direct_mail"].Equal(d(4000)))

	// The base is untouched.
	assert.True(t, base.ChannelSpend.Total().Equal(d(6000)))
}

func TestSweepCostPerLeadSetsAllChannels(t *testing.T) {
	variant, err := applyLever(baseScenario(), domain.LeverCostPerLead, d(55))
	require.NoError(t, err)
	for _, ch := range variant.Channels {
		assert.True(t, ch.CostPerLead.Equal(d(55)))
	}
}

func TestSweepCostPerLeadMonotoneDown(t *testing.T) {
	g := newTestGenerator()

	sweep, err := g.Sweep(context.Background(), baseScenario(), seedState(), 12,
		domain.LeverCostPerLead, []decimal.Decimal{d(30), d(60), d(90)})
	require.NoError(t, err)

	for i := 1; i < len(sweep.Points); i++ {
		assert.True(t,
			sweep.Points[i].AnnualNetPolicyChange.LessThan(sweep.Points[i-1].AnnualNetPolicyChange),
			"pricier leads must mean less growth")
	}
}

func TestSweepRejectsBadInputs(t *testing.T) {
	g := newTestGenerator()
	ctx := context.Background()

	_, err := g.Sweep(ctx, baseScenario(), seedState(), 12, "budget", []decimal.Decimal{d(1)})
	assert.Error(t, err)

	_, err = g.Sweep(ctx, baseScenario(), seedState(), 12, domain.LeverRetention, nil)
	assert.Error(t, err)

	_, err = g.Sweep(ctx, baseScenario(), seedState(), 12, domain.LeverRetention, []decimal.Decimal{d(1.5)})
	assert.Error(t, err)
}

func TestTemplateRegistry(t *testing.T) {
	r := NewTemplateRegistry()
	assert.Equal(t, []string{"aggressive", "conservative", "moderate"}, r.Names())

	_, err := r.Get("conservative")
	assert.NoError(t, err)
	_, err = r.Get("yolo")
	assert.Error(t, err)
}

func TestTemplateApplyScalesSpend(t *testing.T) {
	r := NewTemplateRegistry()
	tmpl, err := r.Get("aggressive")
	require.NoError(t, err)

	base := baseScenario()
	variant := tmpl.Apply(base)

	assert.Equal(t, "aggressive", variant.Name)
	assert.True(t, variant.ChannelSpend.Total().Equal(d(6000).Mul(d(1.40))))
	assert.True(t, variant.Multipliers.Conversion.Equal(d(1.25)))
	assert.True(t, base.ChannelSpend.Total().Equal(d(6000)), "base mutated")
}
