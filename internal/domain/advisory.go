package domain

import (
	"github.com/shopspring/decimal"
)

// CrossSellOpportunity recommends one product to one customer.
type CrossSellOpportunity struct {
	CustomerID         string          `json:"customerId"`
	CurrentProducts    []ProductType   `json:"currentProducts"`
	RecommendedProduct ProductType     `json:"recommendedProduct"`
	Priority           decimal.Decimal `json:"priority"` // 0-100
	TimingDays         int             `json:"timingDays"` // 0 means act now
	ExpectedConversion decimal.Decimal `json:"expectedConversion"`
	LTVDelta           decimal.Decimal `json:"ltvDelta"`
}

// CrossSellPlan is the ordered opportunity list plus the aggregate the
// simulation feeds back into the following month's acquisition.
type CrossSellPlan struct {
	Opportunities          []CrossSellOpportunity `json:"opportunities"` // descending priority
	ExpectedMonthlyPolicies decimal.Decimal       `json:"expectedMonthlyPolicies"`
	ExpectedLTVGain        decimal.Decimal        `json:"expectedLtvGain"`
}

// ReferralTier buckets customers by referral propensity.
type ReferralTier string

const (
	TierChampion  ReferralTier = "champion"
	TierPromoter  ReferralTier = "promoter"
	TierPassive   ReferralTier = "passive"
	TierDetractor ReferralTier = "detractor"
)

// ReferralCandidate is one scored customer with the recommended outreach.
type ReferralCandidate struct {
	CustomerID string          `json:"customerId"`
	Score      decimal.Decimal `json:"score"` // 0-100
	Tier       ReferralTier    `json:"tier"`
	Approach   string          `json:"approach"`
}

// StaffingAssessment compares the ending book to the CSR servicing capacity
// benchmarked for the scenario's growth stage.
type StaffingAssessment struct {
	Policies    int             `json:"policies"`
	CSRCapacity decimal.Decimal `json:"csrCapacity"`
	Utilization decimal.Decimal `json:"utilization"` // policies / capacity
	Adequate    bool            `json:"adequate"`
}

// ReferralRoster is the advisory output of the referral model along with the
// projection aggregates the simulation consumes.
type ReferralRoster struct {
	Candidates           []ReferralCandidate          `json:"candidates"` // descending score
	TierCounts           map[ReferralTier]int         `json:"tierCounts"`
	ExpectedReferrals    decimal.Decimal              `json:"expectedReferrals"`    // per month
	ExpectedNewCustomers decimal.Decimal              `json:"expectedNewCustomers"` // per month
	ViralCoefficient     decimal.Decimal              `json:"viralCoefficient"`
	GrowthEngineViable   bool                         `json:"growthEngineViable"` // k >= 0.1
}
