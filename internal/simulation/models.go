package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/acquisition"
	"github.com/summitpoint/agencysim/internal/cashflow"
	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/profitability"
	"github.com/summitpoint/agencysim/internal/retention"
)

// Each sub-model sits behind its own small interface so the monthly loop can
// be tested against fakes and each model swapped independently.

// RetentionModel derives rate-adjusted retention and churn.
type RetentionModel interface {
	Adjust(in retention.Input) retention.Result
	Churn(state domain.AgencyState, annualRetention decimal.Decimal) (customerChurn, policyChurn decimal.Decimal)
}

// AcquisitionModel converts spend and referral/cross-sell flow into new
// business, and ranks vendors.
type AcquisitionModel interface {
	Acquire(in acquisition.Input) domain.AcquisitionBreakdown
	OrganicCustomers(organicPolicies, ppc decimal.Decimal) decimal.Decimal
	EvaluateVendors(vendors []domain.Vendor) *domain.VendorReport
}

// ProfitabilityModel evaluates loss-ratio economics.
type ProfitabilityModel interface {
	Portfolio(lines []profitability.LineInput) profitability.PortfolioResult
}

// CashFlowModel separates accrual from realized cash.
type CashFlowModel interface {
	Compute(in cashflow.Input) cashflow.Result
	WorkingCapital(in cashflow.WorkingCapitalInput) decimal.Decimal
}

// SegmentationModel tallies the portfolio into value tiers.
type SegmentationModel interface {
	Distribution(customers []domain.Customer) domain.SegmentDistribution
}

// CrossSellModel produces the month's upgrade plan.
type CrossSellModel interface {
	Plan(customers []domain.Customer, month int) *domain.CrossSellPlan
}

// ReferralModel scores referral propensity and projects referral flow.
type ReferralModel interface {
	Roster(customers []domain.Customer) *domain.ReferralRoster
}
