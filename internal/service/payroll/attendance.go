package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

// StandardWorkdayMinutes is the fixed length of a work day: hourly base pay counts 8 hours per day
// and worked minutes beyond it are reported as overtime minutes.
const StandardWorkdayMinutes = 8 * 60

// AggregateAttendance reduces one employee's records for the period into day counts.
// A record with a clock-in is a work day even if the day is not closed yet; a record
// without one is an absence. Paid leave has no attendance signal and is passed through.
func AggregateAttendance(
	employeeNumber string,
	period payroll.Period,
	records []payroll.AttendanceRecord,
	paidLeaveDays int,
) payroll.AttendanceSummary {
	summary := payroll.AttendanceSummary{PaidLeaveDays: paidLeaveDays}

	for _, rec := range records {
		if rec.EmployeeNumber != employeeNumber || !period.Contains(rec.Date) {
			continue
		}

		if rec.ClockIn == nil {
			summary.AbsenceDays++
			continue
		}
		summary.WorkDays++

		if rec.ClockOut != nil {
			worked := int(rec.ClockOut.Sub(*rec.ClockIn).Minutes())
			if worked > StandardWorkdayMinutes {
				summary.OvertimeMinutes += worked - StandardWorkdayMinutes
			}
		}
	}

	return summary
}
