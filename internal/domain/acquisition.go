package domain

import (
	"github.com/shopspring/decimal"
)

// MarketingChannel is per-month transient reference data for one paid channel.
type MarketingChannel struct {
	Name           string          `json:"name" yaml:"name"`
	CostPerLead    decimal.Decimal `json:"costPerLead" yaml:"cost_per_lead"`
	ConversionRate decimal.Decimal `json:"conversionRate" yaml:"conversion_rate"`
}

// LeadProfile is the raw attributes scored by the lead-quality model. Each
// component is on a 0-100 scale.
type LeadProfile struct {
	ID             string          `json:"id"`
	Source         string          `json:"source"`
	ProductIntent  decimal.Decimal `json:"productIntent"`
	BundlePotential decimal.Decimal `json:"bundlePotential"`
	PremiumRange   decimal.Decimal `json:"premiumRange"`
	Demographics   decimal.Decimal `json:"demographics"`
	Engagement     decimal.Decimal `json:"engagement"`
	CreditTier     decimal.Decimal `json:"creditTier"`
	SourceQuality  decimal.Decimal `json:"sourceQuality"`
}

// ScoredLead is a lead with its composite quality score and the segment the
// score predicts.
type ScoredLead struct {
	Lead             LeadProfile     `json:"lead"`
	Score            decimal.Decimal `json:"score"` // 0-100
	PredictedSegment SegmentTier     `json:"predictedSegment"`
	ExpectedConversion decimal.Decimal `json:"expectedConversion"`
	ExpectedLTV      decimal.Decimal `json:"expectedLtv"`
	MaxJustifiedCAC  decimal.Decimal `json:"maxJustifiedCac"`
}

// VendorRating buckets a lead vendor by LTV:CAC.
type VendorRating string

const (
	VendorExcellent       VendorRating = "excellent"
	VendorGood            VendorRating = "good"
	VendorFair            VendorRating = "fair"
	VendorPoor            VendorRating = "poor"
	VendorUnderperforming VendorRating = "underperforming"
)

// Vendor aggregates one lead vendor's month of activity.
type Vendor struct {
	Name           string          `json:"name" yaml:"name"`
	Spend          decimal.Decimal `json:"spend" yaml:"spend"`
	Leads          int             `json:"leads" yaml:"leads"`
	ConversionRate decimal.Decimal `json:"conversionRate" yaml:"conversion_rate"`
	AverageLTV     decimal.Decimal `json:"averageLtv" yaml:"average_ltv"`
}

// VendorMetrics is the computed unit economics for one vendor.
type VendorMetrics struct {
	Vendor      Vendor          `json:"vendor"`
	Conversions decimal.Decimal `json:"conversions"`
	CAC         decimal.Decimal `json:"cac"`         // zero when no conversions
	LTVtoCAC    decimal.Decimal `json:"ltvToCac"`    // zero when CAC is zero
	Revenue     decimal.Decimal `json:"revenue"`
	ROI         decimal.Decimal `json:"roi"`
	Rating      VendorRating    `json:"rating"`
}

// BudgetShift is one advisory reallocation step.
type BudgetShift struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// VendorReport ranks vendors and recommends budget reallocation. Advisory
// only: the simulation never applies the shifts itself.
type VendorReport struct {
	Rankings   []VendorMetrics `json:"rankings"` // descending LTV:CAC
	Eliminated []string        `json:"eliminated,omitempty"`
	Shifts     []BudgetShift   `json:"shifts,omitempty"`
}

// AcquisitionBreakdown is one month's new business by source.
type AcquisitionBreakdown struct {
	PaidCustomers     decimal.Decimal `json:"paidCustomers"`
	PaidPolicies      decimal.Decimal `json:"paidPolicies"`
	ReferralCustomers decimal.Decimal `json:"referralCustomers"`
	ReferralPolicies  decimal.Decimal `json:"referralPolicies"`
	CrossSellPolicies decimal.Decimal `json:"crossSellPolicies"`
	OrganicPolicies   decimal.Decimal `json:"organicPolicies"`
}

// TotalCustomers returns new customers from all sources. Cross-sell adds
// policies to existing customers only.
func (ab AcquisitionBreakdown) TotalCustomers() decimal.Decimal {
	return ab.PaidCustomers.Add(ab.ReferralCustomers)
}

// TotalPolicies returns new policies from all sources.
func (ab AcquisitionBreakdown) TotalPolicies() decimal.Decimal {
	return ab.PaidPolicies.Add(ab.ReferralPolicies).Add(ab.CrossSellPolicies).Add(ab.OrganicPolicies)
}
