// Package acquisition converts marketing spend into scored leads, new
// customers and new policies, and ranks lead vendors by unit economics.
package acquisition

import (
	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/domain"
)

// Model is the acquisition funnel over a benchmark table set.
type Model struct {
	tables benchmarks.Tables
}

// New creates an acquisition model.
func New(tables benchmarks.Tables) *Model {
	return &Model{tables: tables}
}

// Input is one month's acquisition context.
type Input struct {
	Channels             []domain.MarketingChannel
	Spend                domain.ChannelSpend
	ConversionMultiplier decimal.Decimal
	SeasonalIndex        decimal.Decimal
	PPC                  decimal.Decimal // current policies per customer

	OrganicPolicies           decimal.Decimal // walk-in baseline, spend-independent
	ExpectedReferralCustomers decimal.Decimal // from the referral model
	ExpectedCrossSellPolicies decimal.Decimal // from the cross-sell plan
}

// Acquire converts the month's spend and expected referral/cross-sell flow
// into a new-business breakdown.
//
// Policy contribution differs by source: a paid-lead customer starts with one
// policy, referral customers bundle better and bring min(PPC, cap) policies,
// organic walk-ins mirror the book's current PPC, and cross-sell adds
// policies to customers the agency already has.
func (m *Model) Acquire(in Input) domain.AcquisitionBreakdown {
	out := domain.AcquisitionBreakdown{
		CrossSellPolicies: in.ExpectedCrossSellPolicies,
		OrganicPolicies:   in.OrganicPolicies,
	}

	seasonal := in.SeasonalIndex
	if seasonal.IsZero() {
		seasonal = decimal.NewFromInt(1)
	}
	multiplier := in.ConversionMultiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}

	for _, ch := range in.Channels {
		spend, ok := in.Spend[ch.Name]
		if !ok || spend.IsZero() || ch.CostPerLead.IsZero() {
			// Zero cost-per-lead means the channel is unpriced; no leads
			// rather than infinite leads.
			continue
		}
		leads := spend.Div(ch.CostPerLead).Mul(seasonal)
		customers := leads.Mul(ch.ConversionRate).Mul(multiplier)
		out.PaidCustomers = out.PaidCustomers.Add(customers)
		out.PaidPolicies = out.PaidPolicies.Add(customers.Mul(m.tables.PaidLeadPolicies))
	}

	if in.ExpectedReferralCustomers.IsPositive() {
		bundle := in.PPC
		if bundle.GreaterThan(m.tables.ReferralPPCCap) {
			bundle = m.tables.ReferralPPCCap
		}
		out.ReferralCustomers = in.ExpectedReferralCustomers
		out.ReferralPolicies = in.ExpectedReferralCustomers.Mul(bundle)
	}

	return out
}

// OrganicCustomers converts walk-in policies to walk-in customers at the
// book's current PPC. Walk-ins resemble the existing book; with an empty book
// each walk-in policy is its own customer.
func (m *Model) OrganicCustomers(organicPolicies, ppc decimal.Decimal) decimal.Decimal {
	if organicPolicies.IsZero() {
		return decimal.Zero
	}
	if ppc.LessThanOrEqual(decimal.Zero) {
		return organicPolicies
	}
	return organicPolicies.Div(ppc)
}
