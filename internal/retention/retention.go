// Package retention derives annual retention from the shape of the book and
// the month's rate action, and converts it into customer and policy churn.
package retention

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

// Severity labels how hard a rate action hits retention.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Model computes rate-adjusted retention and monthly churn.
type Model struct {
	tables benchmarks.Tables
}

// New creates a retention model over the given benchmark tables.
func New(tables benchmarks.Tables) *Model {
	return &Model{tables: tables}
}

// Input is everything retention depends on for one run.
type Input struct {
	PPC decimal.Decimal // policies per customer

	// AnnualOverride, when non-nil, wins over the PPC-derived band.
	AnnualOverride *decimal.Decimal

	// RateIncrease is the planned annual rate action, e.g. 0.12 for +12%.
	RateIncrease decimal.Decimal

	// Multiplier scales the adjusted retention; 1 means neutral.
	Multiplier decimal.Decimal
}

// Result is the adjusted retention with its derivation made visible.
type Result struct {
	BaseRetention     decimal.Decimal
	AdditionalChurn   decimal.Decimal // retention points lost to the rate action
	Unclamped         decimal.Decimal // annual, before the floor and cap
	AdjustedRetention decimal.Decimal // annual
	Severity          Severity
	Floored           bool // adjusted retention hit the floor
	Capped            bool // multiplier pushed retention above 1 and was capped
}

// BaseRetention returns the retention band for a policies-per-customer value.
// Bands are monotone: more policies per customer never lowers retention.
func (m *Model) BaseRetention(ppc decimal.Decimal) decimal.Decimal {
	for _, band := range m.tables.RetentionBands {
		if ppc.GreaterThanOrEqual(band.MinPPC) {
			return band.Retention
		}
	}
	// Bands always terminate in a zero-threshold base band; negative PPC
	// cannot occur past config validation.
	return m.tables.RetentionBands[len(m.tables.RetentionBands)-1].Retention
}

// Adjust derives the rate-adjusted annual retention. Rate-driven churn is
// additive: every RateStep of rate increase costs ChurnElasticity points of
// retention. The scenario multiplier scales the result before clamping, so
// the returned retention never leaves [floor, 1].
func (m *Model) Adjust(in Input) Result {
	base := m.BaseRetention(in.PPC)
	if in.AnnualOverride != nil {
		base = *in.AnnualOverride
	}

	additional := in.RateIncrease.Div(m.tables.RateStep).Mul(m.tables.ChurnElasticity)
	adjusted := base.Sub(additional)
	if in.Multiplier.IsPositive() && !in.Multiplier.Equal(decimal.NewFromInt(1)) {
		adjusted = adjusted.Mul(in.Multiplier)
	}

	res := Result{
		BaseRetention:   base,
		AdditionalChurn: additional,
		Unclamped:       adjusted,
		Severity:        m.severity(additional),
	}

	one := decimal.NewFromInt(1)
	if adjusted.GreaterThan(one) {
		adjusted = one
		res.Capped = true
	}
	if adjusted.LessThan(m.tables.RetentionFloor) {
		adjusted = m.tables.RetentionFloor
		res.Floored = true
	}

	res.AdjustedRetention = adjusted
	return res
}

func (m *Model) severity(additionalChurn decimal.Decimal) Severity {
	switch {
	case additionalChurn.LessThan(m.tables.SeverityMild):
		return SeverityMild
	case additionalChurn.LessThanOrEqual(m.tables.SeveritySevere):
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// MonthlyRetention converts annual retention to its monthly equivalent,
// annual^(1/12). This is the one place the package leaves decimal arithmetic:
// shopspring/decimal has no fractional exponent, so the root is taken in
// float64 and converted back.
func MonthlyRetention(annual decimal.Decimal) decimal.Decimal {
	f, _ := annual.Float64()
	if f <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Pow(f, 1.0/12.0))
}

// Churn returns the month's expected customer and policy churn for a state.
// A departing customer takes all of their policies, so policy churn is
// customer churn times policies per customer, exactly. An empty book churns
// nothing.
func (m *Model) Churn(state domain.AgencyState, annualRetention decimal.Decimal) (customerChurn, policyChurn decimal.Decimal) {
	if state.Customers == 0 {
		return decimal.Zero, decimal.Zero
	}
	monthly := MonthlyRetention(annualRetention)
	customers := decimal.NewFromInt(int64(state.Customers))
	customerChurn = customers.Mul(decimal.NewFromInt(1).Sub(monthly))
	if customerChurn.GreaterThan(customers) {
		customerChurn = customers
	}
	policyChurn = customerChurn.Mul(state.PoliciesPerCustomer())
	return customerChurn, policyChurn
}
