package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return &parsed
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func worked(t *testing.T, number, date, in, out string) payroll.AttendanceRecord {
	t.Helper()
	rec := payroll.AttendanceRecord{ID: number + "-" + date, EmployeeNumber: number, Date: day(t, date)}
	if in != "" {
		rec.ClockIn = clock(t, date+" "+in)
	}
	if out != "" {
		rec.ClockOut = clock(t, date+" "+out)
	}
	return rec
}

func testEmployee() payroll.Employee {
	return payroll.Employee{
		ID:                      "b9a4c3e2-0f1d-4d8e-9a7b-1c2d3e4f5a6b",
		EmployeeNumber:          "E001",
		Name:                    "Sato Hanako",
		SalaryType:              payroll.SalaryTypeDailyMonthly,
		BaseSalary:              10000,
		TransportationAllowance: 15000,
		Allowances: []payroll.Allowance{
			{Name: "Housing", Amount: 20000},
			{Name: "", Amount: 999},
			{Name: "Family", Amount: 5000},
		},
		Dependents:       1,
		HealthInsurance:  12000,
		NursingInsurance: 2000,
		PensionInsurance: 18000,
		ResidentTax:      payroll.ResidentTax{June: 9000, Other: 8000},
	}
}

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}
