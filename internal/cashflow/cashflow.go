// Package cashflow separates accrual profit from realized cash. Commission is
// recognized the month premium is written but collected on a lag, and early
// cancellations claw commission back, so a growing agency can be profitable
// on paper and cash-negative at the same time.
package cashflow

import (
	"github.com/shopspring/decimal"

	"github.com/summitpoint/agencysim/internal/benchmarks"
)

// Model converts written premium into accrual profit and lagged cash flow.
type Model struct {
	tables benchmarks.Tables
}

// New creates a cash flow model over the given benchmark tables.
func New(tables benchmarks.Tables) *Model {
	return &Model{tables: tables}
}

// Input is one month's cash-relevant activity. The commission lag is modeled
// at monthly resolution: this month's collections are last month's writings,
// which matches the benchmark 45-60 day carrier remittance cycle.
type Input struct {
	WrittenPremium      decimal.Decimal // current month
	PriorWrittenPremium decimal.Decimal // month m-1; zero for the first month
	CancelledPremium    decimal.Decimal // premium on policies cancelled this month
	CommissionRate      decimal.Decimal
	Expenses            decimal.Decimal // operating expenses for the month
}

// Result is the month's accrual and cash views side by side.
type Result struct {
	CommissionRevenue decimal.Decimal `json:"commissionRevenue"` // accrual
	AccrualProfit     decimal.Decimal `json:"accrualProfit"`
	CashCollected     decimal.Decimal `json:"cashCollected"`
	Chargebacks       decimal.Decimal `json:"chargebacks"`
	NetCashFlow       decimal.Decimal `json:"netCashFlow"`
	// Warning is set whenever net cash flow is negative, including months
	// where accrual profit is positive. The divergence is the signal.
	Warning bool `json:"warning"`
}

// Compute evaluates one month.
func (m *Model) Compute(in Input) Result {
	res := Result{}
	res.CommissionRevenue = in.WrittenPremium.Mul(in.CommissionRate)
	res.AccrualProfit = res.CommissionRevenue.Sub(in.Expenses)

	res.CashCollected = in.PriorWrittenPremium.Mul(in.CommissionRate)
	res.Chargebacks = in.CancelledPremium.Mul(in.CommissionRate).Mul(m.tables.ChargebackRecoveryRate)
	res.NetCashFlow = res.CashCollected.Sub(res.Chargebacks).Sub(in.Expenses)
	res.Warning = res.NetCashFlow.IsNegative()
	return res
}

// WorkingCapitalInput parameterizes the required cash buffer.
type WorkingCapitalInput struct {
	MonthlyExpenses decimal.Decimal
	MonthlyRevenue  decimal.Decimal
	GrowthRate      decimal.Decimal // month-over-month, e.g. 0.15
	LagDays         int             // 0 means the benchmark default
}

// WorkingCapital returns the recommended buffer: a base number of months of
// expenses, a growth buffer proportional to the month-over-month growth rate,
// and a lag buffer proportional to the days of commission float outstanding.
func (m *Model) WorkingCapital(in WorkingCapitalInput) decimal.Decimal {
	cap := m.tables.Capital
	lagDays := in.LagDays
	if lagDays == 0 {
		lagDays = m.tables.CommissionLagDays
	}

	base := in.MonthlyExpenses.Mul(cap.BaseMonthsOfExpenses)

	growth := decimal.Zero
	if in.GrowthRate.IsPositive() {
		growth = in.MonthlyExpenses.Mul(in.GrowthRate).Mul(cap.GrowthBufferFactor)
	}

	dailyRevenue := decimal.Zero
	if !in.MonthlyRevenue.IsZero() {
		dailyRevenue = in.MonthlyRevenue.Div(decimal.NewFromInt(30))
	}
	lag := dailyRevenue.Mul(decimal.NewFromInt(int64(lagDays))).Mul(cap.LagBufferPerDay)

	return base.Add(growth).Add(lag)
}
