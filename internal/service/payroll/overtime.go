package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// OvertimeCalculator prices overtime for a period. supplied is the overtime pay
// entered by the caller for the period (zero when none was given).
type OvertimeCalculator interface {
	OvertimePay(emp payroll.Employee, summary payroll.AttendanceSummary, supplied int64) int64
}

// SuppliedOvertime pays exactly the caller-supplied amount.
type SuppliedOvertime struct{}

func (SuppliedOvertime) OvertimePay(_ payroll.Employee, _ payroll.AttendanceSummary, supplied int64) int64 {
	return supplied
}

// PerMinuteOvertime pays aggregated overtime minutes at a flat per-minute rate.
// A supplied amount is paid on top as a manual adjustment.
type PerMinuteOvertime struct {
	Rate decimal.Decimal
}

func (o PerMinuteOvertime) OvertimePay(_ payroll.Employee, summary payroll.AttendanceSummary, supplied int64) int64 {
	return roundAmount(int64(summary.OvertimeMinutes), o.Rate) + supplied
}
