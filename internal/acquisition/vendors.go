package acquisition

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/domain"
)

// EvaluateVendor computes one vendor's unit economics. Degenerate inputs
// (zero conversions, zero spend) yield zero CAC/ratio/ROI rather than a
// division failure, and such vendors always rate underperforming.
func (m *Model) EvaluateVendor(v domain.Vendor) domain.VendorMetrics {
	metrics := domain.VendorMetrics{Vendor: v}

	metrics.Conversions = decimal.NewFromInt(int64(v.Leads)).Mul(v.ConversionRate)
	if metrics.Conversions.IsPositive() {
		metrics.CAC = v.Spend.Div(metrics.Conversions)
	}
	if metrics.CAC.IsPositive() {
		metrics.LTVtoCAC = v.AverageLTV.Div(metrics.CAC)
	}
	metrics.Revenue = metrics.Conversions.Mul(v.AverageLTV)
	if v.Spend.IsPositive() {
		metrics.ROI = metrics.Revenue.Sub(v.Spend).Div(v.Spend)
	}

	metrics.Rating = m.rateVendor(metrics.LTVtoCAC)
	return metrics
}

func (m *Model) rateVendor(ltvToCAC decimal.Decimal) domain.VendorRating {
	cut := m.tables.VendorRatings
	switch {
	case ltvToCAC.GreaterThanOrEqual(cut.Excellent):
		return domain.VendorExcellent
	case ltvToCAC.GreaterThanOrEqual(cut.Good):
		return domain.VendorGood
	case ltvToCAC.GreaterThanOrEqual(cut.Fair):
		return domain.VendorFair
	case ltvToCAC.GreaterThanOrEqual(cut.Poor):
		return domain.VendorPoor
	default:
		return domain.VendorUnderperforming
	}
}

// EvaluateVendors ranks vendors by LTV:CAC descending and recommends budget
// reallocation: underperforming vendors are eliminated outright with their
// whole budget moved to the top vendor, and poor vendors give up half. The
// report is advisory; the simulation never applies it.
func (m *Model) EvaluateVendors(vendors []domain.Vendor) *domain.VendorReport {
	report := &domain.VendorReport{Rankings: make([]domain.VendorMetrics, 0, len(vendors))}
	for _, v := range vendors {
		report.Rankings = append(report.Rankings, m.EvaluateVendor(v))
	}

	sort.SliceStable(report.Rankings, func(i, j int) bool {
		return report.Rankings[i].LTVtoCAC.GreaterThan(report.Rankings[j].LTVtoCAC)
	})

	if len(report.Rankings) == 0 {
		return report
	}
	top := report.Rankings[0]
	if top.Rating == domain.VendorUnderperforming {
		// Nothing worth shifting budget toward.
		for _, r := range report.Rankings {
			report.Eliminated = append(report.Eliminated, r.Vendor.Name)
		}
		return report
	}

	half := decimal.NewFromFloat(0.5)
	for _, r := range report.Rankings[1:] {
		switch r.Rating {
		case domain.VendorUnderperforming:
			report.Eliminated = append(report.Eliminated, r.Vendor.Name)
			if r.Vendor.Spend.IsPositive() {
				report.Shifts = append(report.Shifts, domain.BudgetShift{
					From:   r.Vendor.Name,
					To:     top.Vendor.Name,
					Amount: r.Vendor.Spend,
					Reason: "LTV:CAC below 2x; eliminate and redeploy",
				})
			}
		case domain.VendorPoor:
			if r.Vendor.Spend.IsPositive() {
				report.Shifts = append(report.Shifts, domain.BudgetShift{
					From:   r.Vendor.Name,
					To:     top.Vendor.Name,
					Amount: r.Vendor.Spend.Mul(half),
					Reason: "LTV:CAC between 2x and 3x; scale back",
				})
			}
		}
	}
	return report
}
