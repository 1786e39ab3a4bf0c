// Package benchmarks holds the industry benchmark tables every model consumes.
// Tables are plain values constructed once and passed explicitly to model
// constructors, so concurrent runs can use different benchmark sets without
// interference. Nothing in this package is mutable module-level state.
package benchmarks

import (
	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/domain"
)

// RetentionBand maps a policies-per-customer threshold to the annual retention
// the book earns at or above that threshold.
type RetentionBand struct {
	MinPPC    decimal.Decimal
	Retention decimal.Decimal
}

// SegmentBand carries the economics the lead-quality model attaches to a
// predicted segment.
type SegmentBand struct {
	MinScore           decimal.Decimal
	Tier               domain.SegmentTier
	ExpectedConversion decimal.Decimal
	ExpectedLTV        decimal.Decimal
	MaxJustifiedCAC    decimal.Decimal
}

// LeadScoreWeights are the composite weights of the lead-quality score.
// They sum to 1.
type LeadScoreWeights struct {
	ProductIntent   decimal.Decimal
	BundlePotential decimal.Decimal
	PremiumRange    decimal.Decimal
	Demographics    decimal.Decimal
	Engagement      decimal.Decimal
	CreditTier      decimal.Decimal
	SourceQuality   decimal.Decimal
}

// ReferralWeights are the composite weights of the referral propensity score.
type ReferralWeights struct {
	Tenure       decimal.Decimal
	ProductCount decimal.Decimal
	Retention    decimal.Decimal
	Engagement   decimal.Decimal
	Claims       decimal.Decimal
	Satisfaction decimal.Decimal
}

// ReferralTierProfile carries the per-tier referral economics.
type ReferralTierProfile struct {
	MinScore     decimal.Decimal
	ReferralRate decimal.Decimal // referrers per customer per month
	Approach     string
}

// BonusStep is one tier of the carrier bonus schedule: combined ratios at or
// below Threshold earn Multiplier of the full bonus.
type BonusStep struct {
	Threshold  decimal.Decimal
	Multiplier decimal.Decimal
}

// VendorCutoffs are the LTV:CAC boundaries of the vendor rating bands.
type VendorCutoffs struct {
	Excellent decimal.Decimal
	Good      decimal.Decimal
	Fair      decimal.Decimal
	Poor      decimal.Decimal
}

// WorkingCapital parameterizes the required cash buffer.
type WorkingCapital struct {
	BaseMonthsOfExpenses decimal.Decimal
	GrowthBufferFactor   decimal.Decimal // multiplied by MoM growth rate x monthly expenses
	LagBufferPerDay      decimal.Decimal // multiplied by commission lag days x monthly revenue/30
}

// Tables is the complete immutable benchmark set.
type Tables struct {
	// Retention.
	RetentionBands   []RetentionBand // descending MinPPC; last entry is the base band
	RetentionFloor   decimal.Decimal
	ChurnElasticity  decimal.Decimal // retention points lost per RateStep of rate increase
	RateStep         decimal.Decimal
	SeverityMild     decimal.Decimal // retention-impact boundaries, in points
	SeveritySevere   decimal.Decimal

	// Segmentation.
	EliteMinProducts    int
	EliteMinPremium     decimal.Decimal
	PremiumMinProducts  int
	PremiumMinPremium   decimal.Decimal
	StandardMinProducts int
	StandardMinPremium  decimal.Decimal
	TierRetention       map[domain.SegmentTier]decimal.Decimal
	LifetimeYearsCap    decimal.Decimal

	// Acquisition.
	LeadWeights     LeadScoreWeights
	SegmentBands    []SegmentBand // descending MinScore
	VendorRatings   VendorCutoffs
	ReferralPPCCap  decimal.Decimal
	PaidLeadPolicies decimal.Decimal // policies per paid-lead customer

	// Referral growth.
	ReferralScoreWeights     ReferralWeights
	ReferralTiers            []ReferralTierProfile // descending MinScore: champion..detractor
	AvgReferralsPerReferrer  decimal.Decimal
	ReferralConversionRate   decimal.Decimal
	ViralViabilityThreshold  decimal.Decimal

	// Profitability.
	BonusSteps       []BonusStep // ascending Threshold
	TargetLossRatio  decimal.Decimal
	TargetCombined   decimal.Decimal

	// Cash flow.
	ChargebackRecoveryRate decimal.Decimal
	CommissionLagDays      int
	Capital                WorkingCapital

	// Seasonality indices, January..December, mean 1.0. Applied to lead
	// volume and written premium only.
	Seasonality [12]decimal.Decimal

	// Staffing: policies serviced per CSR, by growth stage. Technology
	// investments lift effective capacity.
	PoliciesPerCSR     map[domain.GrowthStage]decimal.Decimal
	CRMCapacityLift    decimal.Decimal
	PortalCapacityLift decimal.Decimal

	// Product reference economics.
	Products map[domain.ProductType]domain.Product
}

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// Default returns the standard benchmark set used across engagements.
func Default() Tables {
	return Tables{
		RetentionBands: []RetentionBand{
			{MinPPC: d(1.8), Retention: d(0.95)},
			{MinPPC: d(1.5), Retention: d(0.91)},
			{MinPPC: decimal.Zero, Retention: d(0.67)},
		},
		RetentionFloor:  d(0.60),
		ChurnElasticity: d(0.03),
		RateStep:        d(0.10),
		SeverityMild:    d(0.015),
		SeveritySevere:  d(0.045),

		EliteMinProducts:    3,
		EliteMinPremium:     d(3000),
		PremiumMinProducts:  2,
		PremiumMinPremium:   d(2000),
		StandardMinProducts: 1,
		StandardMinPremium:  d(800),
		TierRetention: map[domain.SegmentTier]decimal.Decimal{
			domain.TierElite:    d(0.96),
			domain.TierPremium:  d(0.92),
			domain.TierStandard: d(0.85),
			domain.TierLowValue: d(0.70),
		},
		LifetimeYearsCap: d(10),

		LeadWeights: LeadScoreWeights{
			ProductIntent:   d(0.25),
			BundlePotential: d(0.20),
			PremiumRange:    d(0.15),
			Demographics:    d(0.15),
			Engagement:      d(0.10),
			CreditTier:      d(0.10),
			SourceQuality:   d(0.05),
		},
		SegmentBands: []SegmentBand{
			{MinScore: d(90), Tier: domain.TierElite, ExpectedConversion: d(0.22), ExpectedLTV: d(14500), MaxJustifiedCAC: d(1450)},
			{MinScore: d(70), Tier: domain.TierPremium, ExpectedConversion: d(0.16), ExpectedLTV: d(8200), MaxJustifiedCAC: d(820)},
			{MinScore: d(50), Tier: domain.TierStandard, ExpectedConversion: d(0.10), ExpectedLTV: d(3600), MaxJustifiedCAC: d(360)},
			{MinScore: decimal.Zero, Tier: domain.TierLowValue, ExpectedConversion: d(0.05), ExpectedLTV: d(900), MaxJustifiedCAC: d(90)},
		},
		VendorRatings: VendorCutoffs{
			Excellent: d(10),
			Good:      d(6),
			Fair:      d(3),
			Poor:      d(2),
		},
		ReferralPPCCap:   d(1.3),
		PaidLeadPolicies: decimal.NewFromInt(1),

		ReferralScoreWeights: ReferralWeights{
			Tenure:       d(0.25),
			ProductCount: d(0.20),
			Retention:    d(0.20),
			Engagement:   d(0.15),
			Claims:       d(0.10),
			Satisfaction: d(0.10),
		},
		ReferralTiers: []ReferralTierProfile{
			{MinScore: d(80), ReferralRate: d(0.08), Approach: "personal ask plus incentive"},
			{MinScore: d(60), ReferralRate: d(0.04), Approach: "review request and referral card"},
			{MinScore: d(40), ReferralRate: d(0.015), Approach: "nurture before asking"},
			{MinScore: decimal.Zero, ReferralRate: d(0.002), Approach: "resolve issues first"},
		},
		AvgReferralsPerReferrer: d(1.4),
		ReferralConversionRate:  d(0.35),
		ViralViabilityThreshold: d(0.1),

		BonusSteps: []BonusStep{
			{Threshold: d(0.95), Multiplier: decimal.NewFromInt(1)},
			{Threshold: d(1.00), Multiplier: d(0.75)},
			{Threshold: d(1.05), Multiplier: d(0.50)},
		},
		TargetLossRatio: d(0.62),
		TargetCombined:  d(0.95),

		ChargebackRecoveryRate: d(0.95),
		CommissionLagDays:      45,
		Capital: WorkingCapital{
			BaseMonthsOfExpenses: d(2),
			GrowthBufferFactor:   d(3),
			LagBufferPerDay:      d(1),
		},

		Seasonality: [12]decimal.Decimal{
			d(0.92), d(0.90), d(1.02), d(1.06), d(1.08), d(1.05),
			d(1.03), d(1.04), d(1.02), d(0.98), d(0.94), d(0.96),
		},

		PoliciesPerCSR: map[domain.GrowthStage]decimal.Decimal{
			domain.StageStartup: d(350),
			domain.StageGrowth:  d(450),
			domain.StageScale:   d(550),
			domain.StageMature:  d(650),
		},
		CRMCapacityLift:    d(1.10),
		PortalCapacityLift: d(1.15),

		Products: map[domain.ProductType]domain.Product{
			domain.ProductAuto: {
				Type: domain.ProductAuto, AveragePremium: d(1650), CommissionRate: d(0.12),
				LossRatio: d(0.68), ExpenseRatio: d(0.28), RetentionRate: d(0.86),
				ServicingCost: d(55), MinTenureDays: 0, OptimalTenure: 0,
				PreferredMonths: []int{3, 4, 5, 9},
			},
			domain.ProductHome: {
				Type: domain.ProductHome, AveragePremium: d(1450), CommissionRate: d(0.13),
				LossRatio: d(0.60), ExpenseRatio: d(0.30), RetentionRate: d(0.90),
				ServicingCost: d(48), MinTenureDays: 30, OptimalTenure: 60,
				PreferredMonths: []int{4, 5, 6, 7},
			},
			domain.ProductUmbrella: {
				Type: domain.ProductUmbrella, AveragePremium: d(380), CommissionRate: d(0.15),
				LossRatio: d(0.45), ExpenseRatio: d(0.25), RetentionRate: d(0.94),
				ServicingCost: d(20), MinTenureDays: 60, OptimalTenure: 90,
				PreferredMonths: []int{1, 2, 11, 12},
			},
			domain.ProductLife: {
				Type: domain.ProductLife, AveragePremium: d(1100), CommissionRate: d(0.55),
				LossRatio: d(0.40), ExpenseRatio: d(0.35), RetentionRate: d(0.93),
				ServicingCost: d(35), MinTenureDays: 180, OptimalTenure: 240,
				PreferredMonths: []int{1, 9, 10},
			},
			domain.ProductRenters: {
				Type: domain.ProductRenters, AveragePremium: d(240), CommissionRate: d(0.12),
				LossRatio: d(0.52), ExpenseRatio: d(0.30), RetentionRate: d(0.78),
				ServicingCost: d(15), MinTenureDays: 0, OptimalTenure: 30,
				PreferredMonths: []int{6, 7, 8},
			},
			domain.ProductBusiness: {
				Type: domain.ProductBusiness, AveragePremium: d(3200), CommissionRate: d(0.14),
				LossRatio: d(0.58), ExpenseRatio: d(0.32), RetentionRate: d(0.89),
				ServicingCost: d(120), MinTenureDays: 90, OptimalTenure: 150,
				PreferredMonths: []int{1, 12},
			},
		},
	}
}

// SeasonalIndex returns the index for a 1-based simulation month, wrapping
// across years.
func (t Tables) SeasonalIndex(month int) decimal.Decimal {
	if month < 1 {
		return decimal.NewFromInt(1)
	}
	return t.Seasonality[(month-1)%12]
}

// Product returns the reference economics for a product line.
func (t Tables) Product(pt domain.ProductType) (domain.Product, bool) {
	p, ok := t.Products[pt]
	return p, ok
}
