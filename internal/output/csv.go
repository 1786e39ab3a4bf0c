package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/summitpoint/agencysim/internal/domain"
)

// CSVFormatter emits one row per month, scenario, or sweep point.
type CSVFormatter struct{}

// Name identifies the formatter.
func (f *CSVFormatter) Name() string { return "csv" }

// FormatResult emits the monthly snapshot series.
func (f *CSVFormatter) FormatResult(result *domain.SimulationResult) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"month", "policies", "customers", "policies_per_customer", "average_premium",
		"new_policies", "new_customers", "policy_churn", "customer_churn",
		"adjusted_retention", "revenue", "accrual_profit", "net_cash_flow",
		"chargebacks", "loss_ratio", "combined_ratio", "bonus_multiplier",
		"cash_flow_warning",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, s := range result.Snapshots {
		row := []string{
			strconv.Itoa(s.Month),
			strconv.Itoa(s.Policies),
			strconv.Itoa(s.Customers),
			s.PoliciesPerCustomer.StringFixed(4),
			s.AveragePremium.StringFixed(2),
			s.NewPolicies.StringFixed(2),
			s.NewCustomers.StringFixed(2),
			s.PolicyChurn.StringFixed(2),
			s.CustomerChurn.StringFixed(2),
			s.AdjustedRetention.StringFixed(4),
			s.Revenue.StringFixed(2),
			s.AccrualProfit.StringFixed(2),
			s.NetCashFlow.StringFixed(2),
			s.Chargebacks.StringFixed(2),
			s.LossRatio.StringFixed(4),
			s.CombinedRatio.StringFixed(4),
			s.BonusMultiplier.StringFixed(2),
			strconv.FormatBool(s.CashFlowWarning),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// FormatComparison emits one row per scenario.
func (f *CSVFormatter) FormatComparison(cmp *domain.ScenarioComparison) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"scenario", "final_policies", "policies_per_customer",
		"combined_ratio", "ebitda_margin", "ltv_to_cac", "net_profit",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, row := range cmp.Rows {
		record := []string{
			row.Name,
			strconv.Itoa(row.FinalPolicies),
			row.PoliciesPerCustomer.StringFixed(4),
			row.CombinedRatio.StringFixed(4),
			row.EBITDAMargin.StringFixed(4),
			row.LTVtoCAC.StringFixed(2),
			row.NetProfit.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// FormatSweep emits one row per lever value.
func (f *CSVFormatter) FormatSweep(sweep *domain.SensitivitySweep) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{string(sweep.Lever), "annual_net_policy_change"}); err != nil {
		return "", err
	}
	for _, p := range sweep.Points {
		record := []string{p.Value.StringFixed(4), p.AnnualNetPolicyChange.StringFixed(2)}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
