package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/google/uuid"
)

// statementNamespace scopes the name-based statement IDs.
var statementNamespace = uuid.MustParse("3b0f8e52-6a1d-4c9e-9f27-51d0c2a7e8b4")

// StatementID is stable across recalculations of the same employee and period.
func StatementID(employeeNumber string, period payroll.Period) string {
	return uuid.NewSHA1(statementNamespace, []byte(employeeNumber+"/"+period.String())).String()
}

// StatementInput - Everything the builder composes into a statement
type StatementInput struct {
	Employee    payroll.Employee
	Period      payroll.Period
	Attendance  payroll.AttendanceSummary
	BasePay     int64
	OvertimePay int64
	Deductions  payroll.Deductions
}

// SumAllowances totals named allowances and returns them in input order. Unnamed slots are skipped.
func SumAllowances(allowances []payroll.Allowance) (int64, []payroll.Allowance) {
	var total int64
	detail := make([]payroll.Allowance, 0, len(allowances))
	for _, a := range allowances {
		if !a.IsUsed() {
			continue
		}
		total += a.Amount
		detail = append(detail, a)
	}
	return total, detail
}

// GrossPay is base pay plus transportation allowance, named allowances and overtime pay.
func GrossPay(emp payroll.Employee, basePay, overtimePay int64) int64 {
	allowancesTotal, _ := SumAllowances(emp.Allowances)
	return basePay + emp.TransportationAllowance + allowancesTotal + overtimePay
}

// BuildStatement composes the itemized statement. Same input, same statement.
func BuildStatement(in StatementInput) payroll.Statement {
	allowancesTotal, allowancesDetail := SumAllowances(in.Employee.Allowances)
	gross := in.BasePay + in.Employee.TransportationAllowance + allowancesTotal + in.OvertimePay
	deductionsTotal := in.Deductions.Total()
	windowStart, windowEnd := in.Period.Window()

	return payroll.Statement{
		ID:                      StatementID(in.Employee.EmployeeNumber, in.Period),
		Period:                  in.Period,
		WindowStart:             windowStart,
		WindowEnd:               windowEnd,
		EmployeeID:              in.Employee.ID,
		EmployeeNumber:          in.Employee.EmployeeNumber,
		EmployeeName:            in.Employee.Name,
		SalaryType:              in.Employee.SalaryType,
		WorkDays:                in.Attendance.WorkDays,
		AbsenceDays:             in.Attendance.AbsenceDays,
		PaidLeaveDays:           in.Attendance.PaidLeaveDays,
		OvertimeMinutes:         in.Attendance.OvertimeMinutes,
		BasePay:                 in.BasePay,
		TransportationAllowance: in.Employee.TransportationAllowance,
		AllowancesTotal:         allowancesTotal,
		AllowancesDetail:        allowancesDetail,
		OvertimePay:             in.OvertimePay,
		GrossPay:                gross,
		Deductions:              in.Deductions,
		InsuranceTotal:          in.Deductions.InsuranceTotal(),
		DeductionsTotal:         deductionsTotal,
		NetPay:                  gross - deductionsTotal,
	}
}
