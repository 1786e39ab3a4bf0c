package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/rateenv"
)

var hundred = decimal.NewFromInt(100)

// TableFormatter renders fixed-width console tables.
type TableFormatter struct{}

// Name identifies the formatter.
func (f *TableFormatter) Name() string { return "table" }

// FormatResult renders the month-by-month run plus any advisory reports.
func (f *TableFormatter) FormatResult(result *domain.SimulationResult) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "SIMULATION: %s (run %s)\n", result.ScenarioName, result.RunID)
	fmt.Fprintf(&b, "Seed: %d policies, %d customers @ $%s avg premium | %d months\n\n",
		result.Seed.Policies, result.Seed.Customers, result.Seed.AveragePremium.StringFixed(0), result.Months)

	fmt.Fprintf(&b, "%-5s %9s %9s %6s %10s %12s %12s %12s %8s %5s\n",
		"Month", "Policies", "Cust", "PPC", "Retention", "Revenue", "Accrual", "NetCash", "Combined", "Flag")
	fmt.Fprintln(&b, strings.Repeat("-", 98))
	for _, s := range result.Snapshots {
		flag := ""
		if s.CashFlowWarning {
			flag = "CASH"
		}
		fmt.Fprintf(&b, "%-5d %9d %9d %6s %10s %12s %12s %12s %8s %5s\n",
			s.Month, s.Policies, s.Customers,
			s.PoliciesPerCustomer.StringFixed(2),
			s.AdjustedRetention.StringFixed(4),
			s.Revenue.StringFixed(0),
			s.AccrualProfit.StringFixed(0),
			s.NetCashFlow.StringFixed(0),
			s.CombinedRatio.StringFixed(3),
			flag)
	}

	if !result.Empty() {
		final := result.Final()
		fmt.Fprintf(&b, "\nNet policy change: %s | Total revenue: $%s | Total accrual profit: $%s\n",
			result.NetPolicyChange().StringFixed(0),
			result.TotalRevenue().StringFixed(0),
			result.TotalAccrualProfit().StringFixed(0))
		fmt.Fprintf(&b, "Working capital needed: $%s | Final combined ratio: %s\n",
			result.WorkingCapital.StringFixed(0), final.CombinedRatio.StringFixed(3))
		if warnings := result.CashFlowWarnings(); len(warnings) > 0 {
			fmt.Fprintf(&b, "Cash flow warnings in months %v: accrual profit overstates collectible cash there.\n", warnings)
		}
		writeStaffing(&b, result.Staffing)
		writeGrowthDecomposition(&b, result)
	}
	if len(result.Clamps) > 0 {
		fmt.Fprintf(&b, "\nClamped values (%d):\n", len(result.Clamps))
		for _, c := range result.Clamps {
			fmt.Fprintf(&b, "  month %d %s: %s -> %s\n", c.Month, c.Field, c.Attempted.StringFixed(4), c.Applied.StringFixed(4))
		}
	}

	f.writeVendorReport(&b, result.VendorReport)
	f.writeCrossSellPlan(&b, result.CrossSellPlan)
	f.writeReferralRoster(&b, result.ReferralRoster)
	return b.String(), nil
}

// writeGrowthDecomposition splits year-over-year revenue growth into policy
// and rate components once the run covers at least two years.
func writeGrowthDecomposition(b *strings.Builder, result *domain.SimulationResult) {
	if len(result.Snapshots) < 24 {
		return
	}
	y1 := result.Snapshots[11]
	y2 := result.Snapshots[23]
	decomp := rateenv.DecomposeRevenueGrowth(
		int64(y1.Policies), int64(y2.Policies),
		y1.AveragePremium, y2.AveragePremium)
	fmt.Fprintf(b, "Year 2 revenue growth %s%%: %s%% from policies, %s%% from rate (organic share %s%%)\n",
		decomp.TotalGrowth.Mul(hundred).StringFixed(1),
		decomp.PolicyGrowth.Mul(hundred).StringFixed(1),
		decomp.RateGrowth.Mul(hundred).StringFixed(1),
		decomp.OrganicShare.Mul(hundred).StringFixed(1))
}

// writeStaffing flags whether the ending book still fits the CSR capacity
// the scenario staffed for.
func writeStaffing(b *strings.Builder, s *domain.StaffingAssessment) {
	if s == nil {
		return
	}
	state := "within capacity"
	if !s.Adequate {
		state = "over capacity, hire or invest"
	}
	fmt.Fprintf(b, "Staffing: %d policies against %s CSR capacity (%s%% utilized, %s)\n",
		s.Policies, s.CSRCapacity.StringFixed(0),
		s.Utilization.Mul(hundred).StringFixed(0), state)
}

// FormatVendorReport renders the vendor rankings on their own.
func (f *TableFormatter) FormatVendorReport(report *domain.VendorReport) (string, error) {
	var b strings.Builder
	f.writeVendorReport(&b, report)
	return b.String(), nil
}

// FormatCrossSellPlan renders the cross-sell plan on its own.
func (f *TableFormatter) FormatCrossSellPlan(plan *domain.CrossSellPlan) (string, error) {
	var b strings.Builder
	f.writeCrossSellPlan(&b, plan)
	return b.String(), nil
}

// FormatReferralRoster renders the referral roster on its own.
func (f *TableFormatter) FormatReferralRoster(roster *domain.ReferralRoster) (string, error) {
	var b strings.Builder
	f.writeReferralRoster(&b, roster)
	return b.String(), nil
}

func (f *TableFormatter) writeVendorReport(b *strings.Builder, report *domain.VendorReport) {
	if report == nil {
		return
	}
	fmt.Fprintf(b, "\nVENDOR RANKINGS\n")
	fmt.Fprintf(b, "%-20s %10s %8s %10s %10s %12s %-15s\n",
		"Vendor", "Spend", "Conv", "CAC", "LTV:CAC", "ROI", "Rating")
	for _, m := range report.Rankings {
		fmt.Fprintf(b, "%-20s %10s %8s %10s %10s %12s %-15s\n",
			m.Vendor.Name,
			m.Vendor.Spend.StringFixed(0),
			m.Conversions.StringFixed(1),
			m.CAC.StringFixed(0),
			m.LTVtoCAC.StringFixed(1),
			m.ROI.StringFixed(2),
			m.Rating)
	}
	if len(report.Eliminated) > 0 {
		fmt.Fprintf(b, "Eliminate: %s\n", strings.Join(report.Eliminated, ", "))
	}
	for _, s := range report.Shifts {
		fmt.Fprintf(b, "Shift $%s from %s to %s (%s)\n", s.Amount.StringFixed(0), s.From, s.To, s.Reason)
	}
}

func (f *TableFormatter) writeCrossSellPlan(b *strings.Builder, plan *domain.CrossSellPlan) {
	if plan == nil || len(plan.Opportunities) == 0 {
		return
	}
	fmt.Fprintf(b, "\nCROSS-SELL PLAN (expected %s policies/month, $%s LTV gain)\n",
		plan.ExpectedMonthlyPolicies.StringFixed(2), plan.ExpectedLTVGain.StringFixed(0))
	fmt.Fprintf(b, "%-12s %-12s %8s %8s %10s %12s\n",
		"Customer", "Recommend", "Priority", "In days", "Conv", "LTV delta")
	for _, o := range plan.Opportunities {
		fmt.Fprintf(b, "%-12s %-12s %8s %8d %10s %12s\n",
			o.CustomerID, o.RecommendedProduct,
			o.Priority.StringFixed(0), o.TimingDays,
			o.ExpectedConversion.StringFixed(2), o.LTVDelta.StringFixed(0))
	}
}

func (f *TableFormatter) writeReferralRoster(b *strings.Builder, roster *domain.ReferralRoster) {
	if roster == nil || len(roster.Candidates) == 0 {
		return
	}
	viable := "no"
	if roster.GrowthEngineViable {
		viable = "yes"
	}
	fmt.Fprintf(b, "\nREFERRAL ROSTER (k=%s, self-sustaining: %s, expected %s new customers/month)\n",
		roster.ViralCoefficient.StringFixed(3), viable, roster.ExpectedNewCustomers.StringFixed(2))
	fmt.Fprintf(b, "%-12s %7s %-10s %s\n", "Customer", "Score", "Tier", "Approach")
	for _, c := range roster.Candidates {
		fmt.Fprintf(b, "%-12s %7s %-10s %s\n", c.CustomerID, c.Score.StringFixed(0), c.Tier, c.Approach)
	}
}

// FormatComparison renders the scenario comparison table.
func (f *TableFormatter) FormatComparison(cmp *domain.ScenarioComparison) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "SCENARIO COMPARISON: %s over %d months\n\n", cmp.BaseScenarioName, cmp.Months)
	fmt.Fprintf(&b, "%-15s %10s %6s %9s %8s %9s %14s\n",
		"Scenario", "Policies", "PPC", "Combined", "EBITDA%", "LTV:CAC", "Net profit")
	fmt.Fprintln(&b, strings.Repeat("-", 76))
	for _, row := range cmp.Rows {
		fmt.Fprintf(&b, "%-15s %10d %6s %9s %8s %9s %14s\n",
			row.Name, row.FinalPolicies,
			row.PoliciesPerCustomer.StringFixed(2),
			row.CombinedRatio.StringFixed(3),
			row.EBITDAMargin.Mul(hundred).StringFixed(1),
			row.LTVtoCAC.StringFixed(1),
			row.NetProfit.StringFixed(0))
	}
	return b.String(), nil
}

// FormatSweep renders the sensitivity sweep as a two-column table.
func (f *TableFormatter) FormatSweep(sweep *domain.SensitivitySweep) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "SENSITIVITY: %s\n\n", sweep.Lever)
	fmt.Fprintf(&b, "%12s %24s\n", "Value", "Annual net policy chg")
	fmt.Fprintln(&b, strings.Repeat("-", 37))
	for _, p := range sweep.Points {
		fmt.Fprintf(&b, "%12s %24s\n", p.Value.StringFixed(4), p.AnnualNetPolicyChange.StringFixed(1))
	}
	return b.String(), nil
}
