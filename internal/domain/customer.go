package domain

import (
	"github.com/shopspring/decimal"
)

// Customer is one parsed customer record from the (external) ingestion layer.
// The engine never mutates customers; models derive tiers, opportunities and
// propensity scores from read-only slices of them.
type Customer struct {
	ID             string          `json:"id" yaml:"id"`
	Products       []ProductType   `json:"products" yaml:"products"`
	AnnualPremium  decimal.Decimal `json:"annualPremium" yaml:"annual_premium"`
	TenureDays     int             `json:"tenureDays" yaml:"tenure_days"`
	LastPurchase   map[ProductType]int `json:"lastPurchaseDays,omitempty" yaml:"last_purchase_days,omitempty"` // product -> days since purchase
	Engagement     decimal.Decimal `json:"engagement" yaml:"engagement"`     // 0-100
	ClaimsCount    int             `json:"claimsCount" yaml:"claims_count"`
	NPS            decimal.Decimal `json:"nps" yaml:"nps"`                   // 0-100
	YearsRetained  decimal.Decimal `json:"yearsRetained" yaml:"years_retained"`
	TriggerEvents  []string        `json:"triggerEvents,omitempty" yaml:"trigger_events,omitempty"` // e.g. "new_home", "new_driver"
}

// Owns reports whether the customer already holds the given product line.
func (c Customer) Owns(pt ProductType) bool {
	for _, p := range c.Products {
		if p == pt {
			return true
		}
	}
	return false
}

// DaysSincePurchase returns days since the most recent purchase of pt, falling
// back to account tenure when no per-product date is known.
func (c Customer) DaysSincePurchase(pt ProductType) int {
	if d, ok := c.LastPurchase[pt]; ok {
		return d
	}
	return c.TenureDays
}

// DaysSinceLatestPurchase returns days since the most recent purchase of any
// owned product, falling back to account tenure.
func (c Customer) DaysSinceLatestPurchase() int {
	latest := c.TenureDays
	for _, p := range c.Products {
		if d, ok := c.LastPurchase[p]; ok && d < latest {
			latest = d
		}
	}
	return latest
}
