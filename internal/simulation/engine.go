// Package simulation advances agency state month by month, invoking the
// sub-models in a fixed order and accumulating immutable snapshots. The fold
// over months is inherently sequential; everything a month reads is frozen
// before the month starts.
package simulation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/acquisition"
	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/cashflow"
	"github.com/summitpoint/agencysim/internal/crosssell"
	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/profitability"
	"github.com/summitpoint/agencysim/internal/rateenv"
	"github.com/summitpoint/agencysim/internal/referral"
	"github.com/summitpoint/agencysim/internal/retention"
	"github.com/summitpoint/agencysim/internal/segmentation"
)

// MaxMonths bounds a single run.
const MaxMonths = 120

// Engine orchestrates one simulation run. Sub-models are injected; the
// zero-config constructor wires the defaults over one benchmark table set.
type Engine struct {
	Tables benchmarks.Tables

	Retention     RetentionModel
	Acquisition   AcquisitionModel
	Profitability ProfitabilityModel
	CashFlow      CashFlowModel
	Segmentation  SegmentationModel
	CrossSell     CrossSellModel
	Referral      ReferralModel

	Logger Logger
}

// NewEngine wires the default sub-models over the given benchmark tables.
func NewEngine(tables benchmarks.Tables) *Engine {
	return &Engine{
		Tables:        tables,
		Retention:     retention.New(tables),
		Acquisition:   acquisition.New(tables),
		Profitability: profitability.New(tables),
		CashFlow:      cashflow.New(tables),
		Segmentation:  segmentation.New(tables),
		CrossSell:     crosssell.New(tables),
		Referral:      referral.New(tables),
		Logger:        NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Run simulates months of agency activity from the seed state under one
// scenario. The returned snapshot sequence is ordered by month; the seed and
// scenario are never mutated.
func (e *Engine) Run(ctx context.Context, scenario domain.ScenarioConfig, seed domain.AgencyState, months int) (*domain.SimulationResult, error) {
	if err := e.validate(scenario, seed, months); err != nil {
		return nil, err
	}

	result := &domain.SimulationResult{
		RunID:        uuid.New(),
		ScenarioName: scenario.Name,
		Months:       months,
		Seed:         seed,
		Snapshots:    make([]domain.MonthlySnapshot, 0, months),
	}

	commissionRate := scenario.BlendedCommissionRate()
	spendTotal := scenario.ChannelSpend.Total()
	expenses := scenario.MonthlyExpenses.Add(spendTotal)

	// The book is tracked in exact decimals; snapshots expose rounded counts.
	bookPolicies := decimal.NewFromInt(int64(seed.Policies))
	bookCustomers := decimal.NewFromInt(int64(seed.Customers))

	priorWritten := decimal.Zero
	cumulativeChurn := decimal.Zero
	cumulativeNew := decimal.Zero

	// Referral and cross-sell aggregates feed the following month.
	carryReferralCustomers := decimal.Zero
	carryCrossSellPolicies := decimal.Zero

	var lastPlan *domain.CrossSellPlan
	var lastRoster *domain.ReferralRoster

	e.Logger.Infof("run %s: scenario %q, %d months, seed %d policies / %d customers",
		result.RunID, scenario.Name, months, seed.Policies, seed.Customers)

	for m := 1; m <= months; m++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation aborted at month %d: %w", m, err)
		}

		premium := rateenv.PremiumAtMonth(seed.AveragePremium, scenario.RateIncrease, scenario.PremiumInflation, m)
		state := domain.AgencyState{
			Policies:       int(bookPolicies.Round(0).IntPart()),
			Customers:      int(bookCustomers.Round(0).IntPart()),
			AveragePremium: premium,
			MonthIndex:     m,
		}
		ppc := state.PoliciesPerCustomer()
		seasonal := e.Tables.SeasonalIndex(m)

		// Portfolio-derived advisory models read the same frozen month.
		if len(scenario.Customers) > 0 {
			lastPlan = e.CrossSell.Plan(scenario.Customers, m)
			lastRoster = e.Referral.Roster(scenario.Customers)
		}

		retRes := e.Retention.Adjust(retention.Input{
			PPC:            ppc,
			AnnualOverride: scenario.AnnualRetentionOverride,
			RateIncrease:   scenario.RateIncrease,
			Multiplier:     scenario.Multipliers.Retention,
		})
		if retRes.Floored || retRes.Capped {
			result.Clamps = append(result.Clamps, domain.ClampEvent{
				Month:     m,
				Field:     "adjusted_retention",
				Attempted: retRes.Unclamped,
				Applied:   retRes.AdjustedRetention,
			})
		}

		breakdown := e.Acquisition.Acquire(acquisition.Input{
			Channels:                  scenario.Channels,
			Spend:                     scenario.ChannelSpend,
			ConversionMultiplier:      scenario.Multipliers.Conversion,
			SeasonalIndex:             seasonal,
			PPC:                       ppc,
			OrganicPolicies:           scenario.OrganicPoliciesPerMonth,
			ExpectedReferralCustomers: carryReferralCustomers,
			ExpectedCrossSellPolicies: carryCrossSellPolicies,
		})
		organicCustomers := e.Acquisition.OrganicCustomers(breakdown.OrganicPolicies, ppc)
		newCustomers := breakdown.TotalCustomers().Add(organicCustomers)
		newPolicies := breakdown.TotalPolicies()

		customerChurn, policyChurn := e.Retention.Churn(state, retRes.AdjustedRetention)

		bookPolicies = bookPolicies.Add(newPolicies).Sub(policyChurn)
		bookCustomers = bookCustomers.Add(newCustomers).Sub(customerChurn)
		if bookPolicies.IsNegative() {
			result.Clamps = append(result.Clamps, domain.ClampEvent{
				Month: m, Field: "policies", Attempted: bookPolicies, Applied: decimal.Zero,
			})
			bookPolicies = decimal.Zero
		}
		if bookCustomers.IsNegative() {
			result.Clamps = append(result.Clamps, domain.ClampEvent{
				Month: m, Field: "customers", Attempted: bookCustomers, Applied: decimal.Zero,
			})
			bookCustomers = decimal.Zero
		}

		written := bookPolicies.Mul(premium).Div(decimal.NewFromInt(12)).Mul(seasonal)
		cancelled := policyChurn.Mul(premium).Div(decimal.NewFromInt(12))

		portfolio := e.Profitability.Portfolio(e.portfolioLines(scenario, bookPolicies))
		cash := e.CashFlow.Compute(cashflow.Input{
			WrittenPremium:      written,
			PriorWrittenPremium: priorWritten,
			CancelledPremium:    cancelled,
			CommissionRate:      commissionRate,
			Expenses:            expenses,
		})

		snapshot := domain.MonthlySnapshot{
			Month:               m,
			Policies:            int(bookPolicies.Round(0).IntPart()),
			Customers:           int(bookCustomers.Round(0).IntPart()),
			PoliciesPerCustomer: safeDiv(bookPolicies, bookCustomers),
			AveragePremium:      premium,
			NewPolicies:         newPolicies,
			NewCustomers:        newCustomers,
			PaidCustomers:       breakdown.PaidCustomers,
			PolicyChurn:         policyChurn,
			CustomerChurn:       customerChurn,
			AdjustedRetention:   retRes.AdjustedRetention,
			Revenue:             cash.CommissionRevenue,
			AccrualProfit:       cash.AccrualProfit,
			NetCashFlow:         cash.NetCashFlow,
			Chargebacks:         cash.Chargebacks,
			LossRatio:           portfolio.LossRatio,
			CombinedRatio:       portfolio.CombinedRatio,
			BonusMultiplier:     portfolio.BonusMultiplier,
			BonusEligible:       portfolio.BonusEligible,
			CashFlowWarning:     cash.Warning,
		}
		if len(scenario.Customers) > 0 {
			snapshot.SegmentDistribution = e.Segmentation.Distribution(scenario.Customers)
		}

		cumulativeChurn = cumulativeChurn.Add(policyChurn)
		cumulativeNew = cumulativeNew.Add(newPolicies)
		snapshot.CumulativeChurn = cumulativeChurn
		snapshot.CumulativeNewBusiness = cumulativeNew

		result.Snapshots = append(result.Snapshots, snapshot)

		if cash.Warning {
			e.Logger.Warnf("month %d: net cash flow %s with accrual profit %s",
				m, cash.NetCashFlow.StringFixed(2), cash.AccrualProfit.StringFixed(2))
		}

		// Feed next month.
		priorWritten = written
		if lastRoster != nil {
			carryReferralCustomers = lastRoster.ExpectedNewCustomers
		}
		if lastPlan != nil {
			carryCrossSellPolicies = lastPlan.ExpectedMonthlyPolicies
		}
	}

	if len(scenario.Vendors) > 0 {
		result.VendorReport = e.Acquisition.EvaluateVendors(scenario.Vendors)
	}
	result.CrossSellPlan = lastPlan
	result.ReferralRoster = lastRoster

	if n := len(result.Snapshots); n > 0 {
		last := result.Snapshots[n-1]
		growth := decimal.Zero
		if n > 1 {
			prev := result.Snapshots[n-2]
			if !prev.Revenue.IsZero() {
				growth = last.Revenue.Sub(prev.Revenue).Div(prev.Revenue)
			}
		}
		result.WorkingCapital = e.CashFlow.WorkingCapital(cashflow.WorkingCapitalInput{
			MonthlyExpenses: expenses,
			MonthlyRevenue:  last.Revenue,
			GrowthRate:      growth,
		})
		result.Staffing = e.staffingAssessment(scenario, last.Policies)
	}

	return result, nil
}

// staffingAssessment compares the ending book to CSR servicing capacity for
// the scenario's growth stage. Technology investments lift effective
// capacity. Returns nil when the scenario carries no stage or no CSRs.
func (e *Engine) staffingAssessment(scenario domain.ScenarioConfig, policies int) *domain.StaffingAssessment {
	perCSR, ok := e.Tables.PoliciesPerCSR[scenario.Stage]
	if !ok || !scenario.Staffing.CSRs.IsPositive() {
		return nil
	}
	capacity := scenario.Staffing.CSRs.Mul(perCSR)
	if scenario.Technology.CRM {
		capacity = capacity.Mul(e.Tables.CRMCapacityLift)
	}
	if scenario.Technology.SelfServicePortal {
		capacity = capacity.Mul(e.Tables.PortalCapacityLift)
	}
	utilization := decimal.Zero
	if capacity.IsPositive() {
		utilization = decimal.NewFromInt(int64(policies)).Div(capacity)
	}
	return &domain.StaffingAssessment{
		Policies:    policies,
		CSRCapacity: capacity,
		Utilization: utilization,
		Adequate:    utilization.LessThanOrEqual(decimal.NewFromInt(1)),
	}
}

// portfolioLines scales the seed product mix to the current book so line
// premium shares stay fixed while volume moves.
func (e *Engine) portfolioLines(scenario domain.ScenarioConfig, bookPolicies decimal.Decimal) []profitability.LineInput {
	seedTotal := 0
	for _, entry := range scenario.ProductMix {
		seedTotal += entry.Policies
	}
	if seedTotal == 0 {
		return nil
	}

	twelve := decimal.NewFromInt(12)
	lines := make([]profitability.LineInput, 0, len(scenario.ProductMix))
	for _, pt := range domain.AllProductTypes() {
		entry, ok := scenario.ProductMix[pt]
		if !ok || entry.Policies == 0 {
			continue
		}
		ref, ok := e.Tables.Product(pt)
		if !ok {
			continue
		}
		share := decimal.NewFromInt(int64(entry.Policies)).Div(decimal.NewFromInt(int64(seedTotal)))
		linePolicies := bookPolicies.Mul(share)
		premiumEarned := linePolicies.Mul(entry.AveragePremium).Div(twelve)
		lines = append(lines, profitability.LineInput{
			Product:       pt,
			PremiumEarned: premiumEarned,
			ClaimsPaid:    premiumEarned.Mul(ref.LossRatio),
			ExpenseRatio:  ref.ExpenseRatio,
		})
	}
	return lines
}

func (e *Engine) validate(scenario domain.ScenarioConfig, seed domain.AgencyState, months int) error {
	if months < 1 || months > MaxMonths {
		return fmt.Errorf("months must be between 1 and %d, got %d", MaxMonths, months)
	}
	if seed.Policies < 0 || seed.Customers < 0 {
		return fmt.Errorf("seed state cannot have negative counts (policies=%d, customers=%d)", seed.Policies, seed.Customers)
	}
	if seed.Customers == 0 && seed.Policies > 0 {
		return fmt.Errorf("seed state has %d policies but no customers", seed.Policies)
	}
	if seed.Policies > 0 && seed.AveragePremium.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("average premium must be positive, got %s", seed.AveragePremium)
	}
	if len(scenario.ProductMix) == 0 {
		return fmt.Errorf("scenario %q has an empty product mix", scenario.Name)
	}
	for name, spend := range scenario.ChannelSpend {
		if spend.IsNegative() {
			return fmt.Errorf("channel %q has negative spend %s", name, spend)
		}
	}
	if scenario.OrganicPoliciesPerMonth.IsNegative() {
		return fmt.Errorf("organic policy baseline cannot be negative")
	}
	if o := scenario.AnnualRetentionOverride; o != nil {
		if o.IsNegative() || o.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("annual retention override must be within [0,1], got %s", o)
		}
	}
	return nil
}

func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
