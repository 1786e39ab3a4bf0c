package domain

import (
	"github.com/shopspring/decimal"
)

// AgencyState is the mutable book-of-business position for a single simulated
// month. It is owned by the simulation engine; sub-models receive copies.
type AgencyState struct {
	Policies       int             `json:"policies"`
	Customers      int             `json:"customers"`
	AveragePremium decimal.Decimal `json:"averagePremium"` // annual premium per policy
	MonthIndex     int             `json:"monthIndex"`
}

// PoliciesPerCustomer returns policies/customers, or zero when the book is
// empty (the zero value is the documented sentinel for the degenerate case).
func (s AgencyState) PoliciesPerCustomer() decimal.Decimal {
	if s.Customers == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Policies)).Div(decimal.NewFromInt(int64(s.Customers)))
}

// AnnualWrittenPremium returns policies x average annual premium.
func (s AgencyState) AnnualWrittenPremium() decimal.Decimal {
	return s.AveragePremium.Mul(decimal.NewFromInt(int64(s.Policies)))
}

// MonthlyWrittenPremium returns the annual written premium spread evenly
// across twelve months, before seasonality.
func (s AgencyState) MonthlyWrittenPremium() decimal.Decimal {
	return s.AnnualWrittenPremium().Div(decimal.NewFromInt(12))
}
