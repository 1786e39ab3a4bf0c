package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioRow is one scenario's line in the comparison table.
type ScenarioRow struct {
	Name                string          `json:"name"`
	FinalPolicies       int             `json:"finalPolicies"`
	PoliciesPerCustomer decimal.Decimal `json:"policiesPerCustomer"`
	CombinedRatio       decimal.Decimal `json:"combinedRatio"`
	EBITDAMargin        decimal.Decimal `json:"ebitdaMargin"`
	LTVtoCAC            decimal.Decimal `json:"ltvToCac"`
	NetProfit           decimal.Decimal `json:"netProfit"`
}

// ScenarioComparison is the table produced by running the engine once per
// scenario variant.
type ScenarioComparison struct {
	BaseScenarioName string        `json:"baseScenarioName"`
	Rows             []ScenarioRow `json:"rows"`
	Months           int           `json:"months"`
}

// RowByName returns the row for a scenario name, if present.
func (c *ScenarioComparison) RowByName(name string) (ScenarioRow, bool) {
	for _, row := range c.Rows {
		if row.Name == name {
			return row, true
		}
	}
	return ScenarioRow{}, false
}

// SensitivityLever names a single swept input.
type SensitivityLever string

const (
	LeverRetention   SensitivityLever = "retention"
	LeverConversion  SensitivityLever = "conversion"
	LeverLeadSpend   SensitivityLever = "lead_spend"
	LeverCostPerLead SensitivityLever = "cost_per_lead"
)

// IsValid reports whether the lever is a supported sweep target.
func (l SensitivityLever) IsValid() bool {
	switch l {
	case LeverRetention, LeverConversion, LeverLeadSpend, LeverCostPerLead:
		return true
	}
	return false
}

// SensitivityPoint pairs one lever value with the annualized net policy
// change it produced, holding everything else constant.
type SensitivityPoint struct {
	Value                 decimal.Decimal `json:"value"`
	AnnualNetPolicyChange decimal.Decimal `json:"annualNetPolicyChange"`
}

// SensitivitySweep is the ordered result of a single-lever sweep.
type SensitivitySweep struct {
	Lever  SensitivityLever   `json:"lever"`
	Points []SensitivityPoint `json:"points"`
}
