package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlySnapshot is the immutable record appended for each simulated month.
type MonthlySnapshot struct {
	Month     int `json:"month"` // 1-based
	Policies  int `json:"policies"`
	Customers int `json:"customers"`

	PoliciesPerCustomer decimal.Decimal `json:"policiesPerCustomer"`
	AveragePremium      decimal.Decimal `json:"averagePremium"`

	// Flow for the month.
	NewPolicies     decimal.Decimal `json:"newPolicies"`
	NewCustomers    decimal.Decimal `json:"newCustomers"`
	PaidCustomers   decimal.Decimal `json:"paidCustomers"` // acquired through paid channels only
	PolicyChurn     decimal.Decimal `json:"policyChurn"`
	CustomerChurn   decimal.Decimal `json:"customerChurn"`
	AdjustedRetention decimal.Decimal `json:"adjustedRetention"` // annual, post rate action

	// Financials.
	Revenue        decimal.Decimal `json:"revenue"`        // accrual commission revenue
	AccrualProfit  decimal.Decimal `json:"accrualProfit"`
	NetCashFlow    decimal.Decimal `json:"netCashFlow"`
	Chargebacks    decimal.Decimal `json:"chargebacks"`
	LossRatio      decimal.Decimal `json:"lossRatio"`
	CombinedRatio  decimal.Decimal `json:"combinedRatio"`
	BonusMultiplier decimal.Decimal `json:"bonusMultiplier"`
	BonusEligible  bool            `json:"bonusEligible"`
	CashFlowWarning bool           `json:"cashFlowWarning"`

	SegmentDistribution SegmentDistribution `json:"segmentDistribution,omitempty"`

	CumulativeChurn       decimal.Decimal `json:"cumulativeChurn"`
	CumulativeNewBusiness decimal.Decimal `json:"cumulativeNewBusiness"`
}

// ClampEvent records an out-of-domain value that was clamped to the nearest
// valid boundary, so callers and tests can observe that clamping occurred.
type ClampEvent struct {
	Month     int             `json:"month"`
	Field     string          `json:"field"`
	Attempted decimal.Decimal `json:"attempted"`
	Applied   decimal.Decimal `json:"applied"`
}

// SimulationResult is the complete output of one run: the ordered snapshot
// sequence plus the advisory reports produced alongside it.
type SimulationResult struct {
	RunID        uuid.UUID         `json:"runId"`
	ScenarioName string            `json:"scenarioName"`
	Months       int               `json:"months"`
	Seed         AgencyState       `json:"seed"`
	Snapshots    []MonthlySnapshot `json:"snapshots"`
	Clamps       []ClampEvent      `json:"clamps,omitempty"`

	// WorkingCapital is the recommended cash buffer as of the final month.
	WorkingCapital decimal.Decimal `json:"workingCapital"`

	VendorReport   *VendorReport       `json:"vendorReport,omitempty"`
	CrossSellPlan  *CrossSellPlan      `json:"crossSellPlan,omitempty"`
	ReferralRoster *ReferralRoster     `json:"referralRoster,omitempty"`
	Staffing       *StaffingAssessment `json:"staffing,omitempty"`
}

// Final returns the last snapshot; callers must check Empty first on
// zero-month runs.
func (r *SimulationResult) Final() MonthlySnapshot {
	return r.Snapshots[len(r.Snapshots)-1]
}

// Empty reports whether the run produced no months.
func (r *SimulationResult) Empty() bool { return len(r.Snapshots) == 0 }

// NetPolicyChange returns final policies minus seed policies.
func (r *SimulationResult) NetPolicyChange() decimal.Decimal {
	if r.Empty() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(r.Final().Policies - r.Seed.Policies))
}

// TotalRevenue sums accrual revenue across the run.
func (r *SimulationResult) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Snapshots {
		total = total.Add(r.Snapshots[i].Revenue)
	}
	return total
}

// TotalAccrualProfit sums accrual profit across the run.
func (r *SimulationResult) TotalAccrualProfit() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Snapshots {
		total = total.Add(r.Snapshots[i].AccrualProfit)
	}
	return total
}

// CashFlowWarnings returns the months flagged with negative net cash flow.
func (r *SimulationResult) CashFlowWarnings() []int {
	months := []int{}
	for i := range r.Snapshots {
		if r.Snapshots[i].CashFlowWarning {
			months = append(months, r.Snapshots[i].Month)
		}
	}
	return months
}
