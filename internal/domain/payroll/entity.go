package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SalaryType enum
type SalaryType string

const (
	SalaryTypeHourly       SalaryType = "hourly"
	SalaryTypeDailyMonthly SalaryType = "daily_monthly"
	SalaryTypeFixed        SalaryType = "fixed"
)

func (t SalaryType) IsValid() bool {
	switch t {
	case SalaryTypeHourly, SalaryTypeDailyMonthly, SalaryTypeFixed:
		return true
	}
	return false
}

// Allowance is a named, fixed monthly payment. An empty name marks an unused slot.
type Allowance struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

func (a Allowance) IsUsed() bool {
	return !validator.IsEmpty(a.Name)
}

// ResidentTax is re-assessed every June, so June withholding differs from the other months.
type ResidentTax struct {
	June  int64 `json:"june"`
	Other int64 `json:"other"`
}

// Employee - Employee master record as read from the employee store
type Employee struct {
	ID                      string      `json:"id"`
	EmployeeNumber          string      `json:"employee_number"`
	Name                    string      `json:"name"`
	SalaryType              SalaryType  `json:"salary_type"`
	BaseSalary              int64       `json:"base_salary"` // hourly rate, daily rate or monthly salary
	TransportationAllowance int64       `json:"transportation_allowance"`
	Allowances              []Allowance `json:"allowances"`
	Dependents              int         `json:"dependents"`
	HealthInsurance         int64       `json:"health_insurance"`
	NursingInsurance        int64       `json:"nursing_insurance"`
	PensionInsurance        int64       `json:"pension_insurance"`
	ResidentTax             ResidentTax `json:"resident_tax"`
	PaidLeaveRemaining      int         `json:"paid_leave_remaining"`
}

// NewEmployee validates e and returns it unchanged.
func NewEmployee(e Employee) (Employee, error) {
	if err := e.Validate(); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Validate rejects negative money and count fields.
func (e Employee) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(e.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{Field: "employee_number", Message: "is required"})
	}

	amounts := []struct {
		field string
		value int64
	}{
		{"base_salary", e.BaseSalary},
		{"transportation_allowance", e.TransportationAllowance},
		{"dependents", int64(e.Dependents)},
		{"health_insurance", e.HealthInsurance},
		{"nursing_insurance", e.NursingInsurance},
		{"pension_insurance", e.PensionInsurance},
		{"resident_tax.june", e.ResidentTax.June},
		{"resident_tax.other", e.ResidentTax.Other},
		{"paid_leave_remaining", int64(e.PaidLeaveRemaining)},
	}
	for _, a := range amounts {
		if a.value < 0 {
			errs = append(errs, validator.ValidationError{Field: a.field, Message: "must be non-negative"})
		}
	}
	for i, a := range e.Allowances {
		if a.Amount < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("allowances[%d].amount", i),
				Message: "must be non-negative",
			})
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}

// AttendanceRecord - One attendance entry per employee per date.
// A nil ClockIn records an absence; a nil ClockOut means the day is not closed yet.
type AttendanceRecord struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employee_number"`
	Date           time.Time  `json:"date"`
	ClockIn        *time.Time `json:"clock_in_time"`
	ClockOut       *time.Time `json:"clock_out_time"`
}

// NewAttendanceRecord parses a YYYY-MM-DD date and validates the clock pair.
func NewAttendanceRecord(id, employeeNumber, date string, clockIn, clockOut *time.Time) (AttendanceRecord, error) {
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return AttendanceRecord{}, fmt.Errorf("%w: %w", ErrInvalidInput, validator.ValidationErrors{
			{Field: "date", Message: "must be in YYYY-MM-DD format"},
		})
	}

	rec := AttendanceRecord{
		ID:             id,
		EmployeeNumber: employeeNumber,
		Date:           parsed,
		ClockIn:        clockIn,
		ClockOut:       clockOut,
	}
	if err := rec.Validate(); err != nil {
		return AttendanceRecord{}, err
	}
	return rec, nil
}

func (r AttendanceRecord) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{Field: "employee_number", Message: "is required"})
	}
	if r.Date.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "is required"})
	}
	if r.ClockOut != nil {
		switch {
		case r.ClockIn == nil:
			errs = append(errs, validator.ValidationError{Field: "clock_out_time", Message: "requires clock_in_time"})
		case !r.ClockOut.After(*r.ClockIn):
			errs = append(errs, validator.ValidationError{Field: "clock_out_time", Message: "must be after clock_in_time"})
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}

// AttendanceSummary - Per-period reduction of one employee's attendance
type AttendanceSummary struct {
	WorkDays        int `json:"work_days"`
	AbsenceDays     int `json:"absence_days"`
	PaidLeaveDays   int `json:"paid_leave_days"`
	OvertimeMinutes int `json:"overtime_minutes"`
}

// Deductions - One amount per deduction line on the pay statement
type Deductions struct {
	HealthInsurance     int64 `json:"health_insurance"`
	NursingInsurance    int64 `json:"nursing_insurance"`
	PensionInsurance    int64 `json:"pension_insurance"`
	EmploymentInsurance int64 `json:"employment_insurance"`
	IncomeTax           int64 `json:"income_tax"`
	ResidentTax         int64 `json:"resident_tax"`
}

func (d Deductions) Total() int64 {
	return d.HealthInsurance + d.NursingInsurance + d.PensionInsurance +
		d.EmploymentInsurance + d.IncomeTax + d.ResidentTax
}

// InsuranceTotal is the social insurance subtotal shown on pay stubs.
func (d Deductions) InsuranceTotal() int64 {
	return d.HealthInsurance + d.NursingInsurance + d.PensionInsurance
}

func (d Deductions) Add(o Deductions) Deductions {
	return Deductions{
		HealthInsurance:     d.HealthInsurance + o.HealthInsurance,
		NursingInsurance:    d.NursingInsurance + o.NursingInsurance,
		PensionInsurance:    d.PensionInsurance + o.PensionInsurance,
		EmploymentInsurance: d.EmploymentInsurance + o.EmploymentInsurance,
		IncomeTax:           d.IncomeTax + o.IncomeTax,
		ResidentTax:         d.ResidentTax + o.ResidentTax,
	}
}

// Statement - Itemized pay statement for one employee and one period.
// GrossPay = BasePay + TransportationAllowance + AllowancesTotal + OvertimePay
// NetPay = GrossPay - DeductionsTotal, and may be negative.
type Statement struct {
	ID                      string      `json:"id"`
	Period                  Period      `json:"period"`
	WindowStart             time.Time   `json:"window_start"`
	WindowEnd               time.Time   `json:"window_end"`
	EmployeeID              string      `json:"employee_id"`
	EmployeeNumber          string      `json:"employee_number"`
	EmployeeName            string      `json:"employee_name"`
	SalaryType              SalaryType  `json:"salary_type"`
	WorkDays                int         `json:"work_days"`
	AbsenceDays             int         `json:"absence_days"`
	PaidLeaveDays           int         `json:"paid_leave_days"`
	OvertimeMinutes         int         `json:"overtime_minutes"`
	BasePay                 int64       `json:"base_pay"`
	TransportationAllowance int64       `json:"transportation_allowance"`
	AllowancesTotal         int64       `json:"allowances_total"`
	AllowancesDetail        []Allowance `json:"allowances_detail"`
	OvertimePay             int64       `json:"overtime_pay"`
	GrossPay                int64       `json:"gross_pay"`
	Deductions              Deductions  `json:"deductions"`
	InsuranceTotal          int64       `json:"insurance_total"`
	DeductionsTotal         int64       `json:"deductions_total"`
	NetPay                  int64       `json:"net_pay"`
}

// PeriodTotals - Column-wise sums over one employee's statements.
// From and To are omitted when no statement was aggregated.
type PeriodTotals struct {
	EmployeeID              string     `json:"employee_id"`
	EmployeeNumber          string     `json:"employee_number"`
	From                    Period     `json:"from,omitzero"`
	To                      Period     `json:"to,omitzero"`
	Months                  int        `json:"months"`
	WorkDays                int        `json:"work_days"`
	AbsenceDays             int        `json:"absence_days"`
	PaidLeaveDays           int        `json:"paid_leave_days"`
	OvertimeMinutes         int        `json:"overtime_minutes"`
	BasePay                 int64      `json:"base_pay"`
	TransportationAllowance int64      `json:"transportation_allowance"`
	AllowancesTotal         int64      `json:"allowances_total"`
	OvertimePay             int64      `json:"overtime_pay"`
	GrossPay                int64      `json:"gross_pay"`
	Deductions              Deductions `json:"deductions"`
	DeductionsTotal         int64      `json:"deductions_total"`
	NetPay                  int64      `json:"net_pay"`
}

// AnnualReport - Statements in display order plus their totals
type AnnualReport struct {
	Statements []Statement  `json:"statements"`
	Totals     PeriodTotals `json:"totals"`
}

// RosterSummary - Totals of one period across employees
type RosterSummary struct {
	Period                  Period     `json:"period"`
	EmployeeCount           int        `json:"employee_count"`
	BasePay                 int64      `json:"base_pay"`
	TransportationAllowance int64      `json:"transportation_allowance"`
	AllowancesTotal         int64      `json:"allowances_total"`
	OvertimePay             int64      `json:"overtime_pay"`
	GrossPay                int64      `json:"gross_pay"`
	Deductions              Deductions `json:"deductions"`
	DeductionsTotal         int64      `json:"deductions_total"`
	NetPay                  int64      `json:"net_pay"`
}

// Roster - Statements of every active employee for one period
type Roster struct {
	Statements []Statement   `json:"statements"`
	Summary    RosterSummary `json:"summary"`
}

// Rates - Percentage parameters of the deduction calculator, as fractions (0.05 = 5%)
type Rates struct {
	EmploymentInsurance decimal.NullDecimal
	IncomeTax           decimal.NullDecimal
	// OvertimePerMinute prices overtime minutes when set; otherwise overtime pay is supplied by the caller.
	OvertimePerMinute decimal.NullDecimal
}

var (
	DefaultEmploymentInsuranceRate = decimal.RequireFromString("0.003")
	DefaultIncomeTaxRate           = decimal.RequireFromString("0.05")
)

// DefaultRates returns the documented fallback rates.
func DefaultRates() Rates {
	return Rates{
		EmploymentInsurance: decimal.NewNullDecimal(DefaultEmploymentInsuranceRate),
		IncomeTax:           decimal.NewNullDecimal(DefaultIncomeTaxRate),
	}
}

// WithDefaults fills absent rates with the documented defaults.
func (r Rates) WithDefaults() Rates {
	if !r.EmploymentInsurance.Valid {
		r.EmploymentInsurance = decimal.NewNullDecimal(DefaultEmploymentInsuranceRate)
	}
	if !r.IncomeTax.Valid {
		r.IncomeTax = decimal.NewNullDecimal(DefaultIncomeTaxRate)
	}
	return r
}

// Validate fails closed: absent required rates are a configuration error.
func (r Rates) Validate() error {
	var missing []string
	if !r.EmploymentInsurance.Valid {
		missing = append(missing, "employment_insurance_rate")
	}
	if !r.IncomeTax.Valid {
		missing = append(missing, "income_tax_rate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}

	var errs validator.ValidationErrors
	if r.EmploymentInsurance.Decimal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "employment_insurance_rate", Message: "must be non-negative"})
	}
	if r.IncomeTax.Decimal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "income_tax_rate", Message: "must be non-negative"})
	}
	if r.OvertimePerMinute.Valid && r.OvertimePerMinute.Decimal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_pay_per_minute", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}
