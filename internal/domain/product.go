package domain

import (
	"github.com/shopspring/decimal"
)

// ProductType identifies an insurance product line.
type ProductType string

const (
	ProductAuto     ProductType = "auto"
	ProductHome     ProductType = "home"
	ProductUmbrella ProductType = "umbrella"
	ProductLife     ProductType = "life"
	ProductRenters  ProductType = "renters"
	ProductBusiness ProductType = "business"
)

// AllProductTypes lists every supported product line.
func AllProductTypes() []ProductType {
	return []ProductType{ProductAuto, ProductHome, ProductUmbrella, ProductLife, ProductRenters, ProductBusiness}
}

// IsValid reports whether pt is a known product line.
func (pt ProductType) IsValid() bool {
	switch pt {
	case ProductAuto, ProductHome, ProductUmbrella, ProductLife, ProductRenters, ProductBusiness:
		return true
	}
	return false
}

// Product is static reference data for one product line. Immutable for a run.
type Product struct {
	Type            ProductType     `json:"type" yaml:"type"`
	AveragePremium  decimal.Decimal `json:"averagePremium" yaml:"average_premium"` // annual
	CommissionRate  decimal.Decimal `json:"commissionRate" yaml:"commission_rate"`
	LossRatio       decimal.Decimal `json:"lossRatio" yaml:"loss_ratio"`
	ExpenseRatio    decimal.Decimal `json:"expenseRatio" yaml:"expense_ratio"`
	RetentionRate   decimal.Decimal `json:"retentionRate" yaml:"retention_rate"` // annual
	ServicingCost   decimal.Decimal `json:"servicingCost" yaml:"servicing_cost"` // annual, per policy
	MinTenureDays   int             `json:"minTenureDays" yaml:"min_tenure_days"`
	OptimalTenure   int             `json:"optimalTenureDays" yaml:"optimal_tenure_days"`
	PreferredMonths []int           `json:"preferredMonths" yaml:"preferred_months"` // 1..12
}

// AnnualCommission returns the annual commission earned on one policy.
func (p Product) AnnualCommission() decimal.Decimal {
	return p.AveragePremium.Mul(p.CommissionRate)
}

// CombinedRatio returns loss ratio plus expense ratio for the line.
func (p Product) CombinedRatio() decimal.Decimal {
	return p.LossRatio.Add(p.ExpenseRatio)
}
