package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

// hoursPerWorkDay is the fixed day length used for hourly employees.
// Hours are not derived from clock-in/clock-out deltas.
const hoursPerWorkDay = 8

// CalculateBasePay applies the salary type policy to the period's work days.
func CalculateBasePay(salaryType payroll.SalaryType, baseSalary int64, workDays int) int64 {
	days := int64(workDays)

	switch salaryType {
	case payroll.SalaryTypeHourly:
		return baseSalary * hoursPerWorkDay * days
	case payroll.SalaryTypeDailyMonthly:
		return baseSalary * days
	case payroll.SalaryTypeFixed:
		return baseSalary
	default:
		// Unspecified salary type is paid per work day, same as daily-monthly.
		return baseSalary * days
	}
}
