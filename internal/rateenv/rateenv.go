// Package rateenv models the rate environment: how a planned rate action
// moves written premium over time and how revenue growth splits between
// organic policy growth and rate-driven growth.
package rateenv

import (
	"math"

	"github.com/shopspring/decimal"
)

// GrowthDecomposition splits year-over-year revenue growth into its policy
// and rate components.
type GrowthDecomposition struct {
	PolicyGrowth decimal.Decimal `json:"policyGrowth"`
	RateGrowth   decimal.Decimal `json:"rateGrowth"`
	TotalGrowth  decimal.Decimal `json:"totalGrowth"`
	OrganicShare decimal.Decimal `json:"organicShare"`
}

// DecomposeRevenueGrowth decomposes revenue growth between two years.
// Revenue is policies x premium, so total growth is the product of the two
// component factors minus one. OrganicShare is policy growth's share of the
// summed components; a zero denominator yields zero, the documented sentinel.
func DecomposeRevenueGrowth(policiesY1, policiesY2 int64, premiumY1, premiumY2 decimal.Decimal) GrowthDecomposition {
	one := decimal.NewFromInt(1)
	out := GrowthDecomposition{}

	if policiesY1 == 0 || premiumY1.IsZero() {
		return out
	}

	p1 := decimal.NewFromInt(policiesY1)
	p2 := decimal.NewFromInt(policiesY2)

	out.PolicyGrowth = p2.Div(p1).Sub(one)
	out.RateGrowth = premiumY2.Div(premiumY1).Sub(one)
	out.TotalGrowth = p2.Mul(premiumY2).Div(p1.Mul(premiumY1)).Sub(one)

	denom := out.PolicyGrowth.Add(out.RateGrowth)
	if !denom.IsZero() {
		out.OrganicShare = out.PolicyGrowth.Div(denom)
	}
	return out
}

// MonthlyFactor converts an annual growth rate into the equivalent monthly
// compounding factor, (1+rate)^(1/12). Fractional exponents are unavailable
// in decimal, so the root is taken in float64.
func MonthlyFactor(annualRate decimal.Decimal) decimal.Decimal {
	f, _ := annualRate.Float64()
	base := 1 + f
	if base <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Pow(base, 1.0/12.0))
}

// PremiumAtMonth returns the average premium in effect at a 1-based month,
// compounding the combined annual rate action and premium inflation monthly
// from the seed premium. Month 1 is the seed premium unchanged.
func PremiumAtMonth(seedPremium, rateIncrease, premiumInflation decimal.Decimal, month int) decimal.Decimal {
	if month <= 1 {
		return seedPremium
	}
	annual := rateIncrease.Add(premiumInflation)
	if annual.IsZero() {
		return seedPremium
	}
	factor := MonthlyFactor(annual)
	return seedPremium.Mul(factor.Pow(decimal.NewFromInt(int64(month - 1))))
}
