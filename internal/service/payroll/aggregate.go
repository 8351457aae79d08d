package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

// AggregatePeriods sums one employee's statements column by column.
// Input order only matters for display; the totals do not depend on it.
// Empty input yields zero totals with no From or To.
func AggregatePeriods(statements []payroll.Statement) (payroll.PeriodTotals, error) {
	var totals payroll.PeriodTotals
	if len(statements) == 0 {
		return totals, nil
	}

	seen := make(map[payroll.Period]bool, len(statements))
	first := statements[0]
	totals.EmployeeID = first.EmployeeID
	totals.EmployeeNumber = first.EmployeeNumber
	totals.From = first.Period
	totals.To = first.Period

	for _, s := range statements {
		if s.EmployeeNumber != first.EmployeeNumber {
			return payroll.PeriodTotals{}, fmt.Errorf("%w: %w: %s and %s",
				payroll.ErrInvalidInput, payroll.ErrMixedEmployees, first.EmployeeNumber, s.EmployeeNumber)
		}
		if seen[s.Period] {
			return payroll.PeriodTotals{}, fmt.Errorf("%w: %w: %s",
				payroll.ErrInvalidInput, payroll.ErrDuplicatePeriod, s.Period)
		}
		seen[s.Period] = true

		if s.Period.Before(totals.From) {
			totals.From = s.Period
		}
		if totals.To.Before(s.Period) {
			totals.To = s.Period
		}

		totals.Months++
		totals.WorkDays += s.WorkDays
		totals.AbsenceDays += s.AbsenceDays
		totals.PaidLeaveDays += s.PaidLeaveDays
		totals.OvertimeMinutes += s.OvertimeMinutes
		totals.BasePay += s.BasePay
		totals.TransportationAllowance += s.TransportationAllowance
		totals.AllowancesTotal += s.AllowancesTotal
		totals.OvertimePay += s.OvertimePay
		totals.GrossPay += s.GrossPay
		totals.Deductions = totals.Deductions.Add(s.Deductions)
		totals.DeductionsTotal += s.DeductionsTotal
		totals.NetPay += s.NetPay
	}

	return totals, nil
}

// SummarizeRoster sums one period's statements across employees.
func SummarizeRoster(period payroll.Period, statements []payroll.Statement) payroll.RosterSummary {
	summary := payroll.RosterSummary{Period: period}

	for _, s := range statements {
		summary.EmployeeCount++
		summary.BasePay += s.BasePay
		summary.TransportationAllowance += s.TransportationAllowance
		summary.AllowancesTotal += s.AllowancesTotal
		summary.OvertimePay += s.OvertimePay
		summary.GrossPay += s.GrossPay
		summary.Deductions = summary.Deductions.Add(s.Deductions)
		summary.DeductionsTotal += s.DeductionsTotal
		summary.NetPay += s.NetPay
	}

	return summary
}
