package domain

import (
	"github.com/shopspring/decimal"
)

// GrowthStage describes where the agency sits in its lifecycle. It drives
// staffing-ratio benchmarks, nothing else.
type GrowthStage string

const (
	StageStartup GrowthStage = "startup"
	StageGrowth  GrowthStage = "growth"
	StageScale   GrowthStage = "scale"
	StageMature  GrowthStage = "mature"
)

// IsValid reports whether gs is a known growth stage.
func (gs GrowthStage) IsValid() bool {
	switch gs {
	case StageStartup, StageGrowth, StageScale, StageMature:
		return true
	}
	return false
}

// ChannelSpend is a monthly marketing budget keyed by channel name.
type ChannelSpend map[string]decimal.Decimal

// Total sums spend across all channels.
func (cs ChannelSpend) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range cs {
		total = total.Add(v)
	}
	return total
}

// ProductMixEntry describes one product line's share of the book at seed time.
type ProductMixEntry struct {
	Policies       int             `json:"policies" yaml:"policies"`
	AveragePremium decimal.Decimal `json:"averagePremium" yaml:"average_premium"`
	CommissionRate decimal.Decimal `json:"commissionRate" yaml:"commission_rate"`
}

// StaffingPlan is the assumed headcount mix. Producers sell, CSRs service.
type StaffingPlan struct {
	Producers decimal.Decimal `json:"producers" yaml:"producers"`
	CSRs      decimal.Decimal `json:"csrs" yaml:"csrs"`
}

// TechnologyFlags capture which efficiency investments the scenario assumes.
type TechnologyFlags struct {
	CRM              bool `json:"crm" yaml:"crm"`
	MarketingAutomation bool `json:"marketingAutomation" yaml:"marketing_automation"`
	SelfServicePortal   bool `json:"selfServicePortal" yaml:"self_service_portal"`
}

// ScenarioMultipliers scale conversion and retention uniformly for a whole
// run. They are applied once before the first month and never re-derived.
type ScenarioMultipliers struct {
	Conversion decimal.Decimal `json:"conversion" yaml:"conversion"`
	Retention  decimal.Decimal `json:"retention" yaml:"retention"`
}

// NeutralMultipliers returns the identity multiplier set.
func NeutralMultipliers() ScenarioMultipliers {
	return ScenarioMultipliers{Conversion: decimal.NewFromInt(1), Retention: decimal.NewFromInt(1)}
}

// ScenarioConfig is the immutable input for one simulation run.
type ScenarioConfig struct {
	Name        string      `json:"name" yaml:"name"`
	Stage       GrowthStage `json:"stage" yaml:"stage"`

	// Channels defines the priced marketing channels; ChannelSpend keys must
	// reference them by name.
	Channels     []MarketingChannel              `json:"channels" yaml:"channels"`
	ChannelSpend ChannelSpend                    `json:"channelSpend" yaml:"channel_spend"`

	// Vendors is the lead-vendor book evaluated for the advisory report.
	Vendors []Vendor `json:"vendors,omitempty" yaml:"vendors,omitempty"`
	ProductMix   map[ProductType]ProductMixEntry `json:"productMix" yaml:"product_mix"`
	Staffing     StaffingPlan                    `json:"staffing" yaml:"staffing"`
	Technology   TechnologyFlags                 `json:"technology" yaml:"technology"`

	// RateIncrease is the planned annual rate action, e.g. 0.08 for +8%.
	RateIncrease decimal.Decimal `json:"rateIncrease" yaml:"rate_increase"`

	// AnnualRetentionOverride, when set, wins over the PPC-derived retention
	// tier. Nil means derive retention from the book's policies-per-customer.
	AnnualRetentionOverride *decimal.Decimal `json:"annualRetentionOverride,omitempty" yaml:"annual_retention_override,omitempty"`

	// OrganicPoliciesPerMonth is the walk-in baseline written with zero spend.
	OrganicPoliciesPerMonth decimal.Decimal `json:"organicPoliciesPerMonth" yaml:"organic_policies_per_month"`

	// PremiumInflation compounds average premium annually, e.g. 0.04.
	PremiumInflation decimal.Decimal `json:"premiumInflation" yaml:"premium_inflation"`

	// MonthlyExpenses is fixed operating expense (rent, payroll, tools).
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses" yaml:"monthly_expenses"`

	Multipliers ScenarioMultipliers `json:"multipliers" yaml:"multipliers"`

	// Customers is the seed portfolio used by the segmentation, cross-sell and
	// referral models. Optional; aggregate-only runs leave it empty.
	Customers []Customer `json:"customers,omitempty" yaml:"customers,omitempty"`
}

// BlendedCommissionRate returns the premium-weighted commission rate across
// the product mix, or zero when the mix is empty (degenerate sentinel).
func (sc ScenarioConfig) BlendedCommissionRate() decimal.Decimal {
	totalPremium := decimal.Zero
	weighted := decimal.Zero
	for _, entry := range sc.ProductMix {
		premium := entry.AveragePremium.Mul(decimal.NewFromInt(int64(entry.Policies)))
		totalPremium = totalPremium.Add(premium)
		weighted = weighted.Add(premium.Mul(entry.CommissionRate))
	}
	if totalPremium.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(totalPremium)
}

// Clone returns a deep copy so templates and sweeps never mutate the base.
func (sc ScenarioConfig) Clone() ScenarioConfig {
	out := sc
	out.Channels = append([]MarketingChannel(nil), sc.Channels...)
	out.Vendors = append([]Vendor(nil), sc.Vendors...)
	out.ChannelSpend = make(ChannelSpend, len(sc.ChannelSpend))
	for k, v := range sc.ChannelSpend {
		out.ChannelSpend[k] = v
	}
	out.ProductMix = make(map[ProductType]ProductMixEntry, len(sc.ProductMix))
	for k, v := range sc.ProductMix {
		out.ProductMix[k] = v
	}
	if sc.AnnualRetentionOverride != nil {
		v := *sc.AnnualRetentionOverride
		out.AnnualRetentionOverride = &v
	}
	out.Customers = append([]Customer(nil), sc.Customers...)
	return out
}
