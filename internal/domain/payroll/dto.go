package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// ========== STATEMENT DTOs ==========

type GenerateStatementRequest struct {
	EmployeeID    string `json:"employee_id"`
	Period        string `json:"period"`
	PaidLeaveDays int    `json:"paid_leave_days"`
	OvertimePay   int64  `json:"overtime_pay"`
}

func (r *GenerateStatementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidYearMonth(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}
	if r.PaidLeaveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "paid_leave_days", Message: "must be non-negative"})
	}
	if r.OvertimePay < 0 {
		errs = append(errs, validator.ValidationError{Field: "overtime_pay", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}

// ========== ROSTER DTOs ==========

type GenerateRosterRequest struct {
	Period string `json:"period"`
	// Per-employee supplied inputs, keyed by employee number. Missing entries default to zero.
	PaidLeaveDays map[string]int   `json:"paid_leave_days,omitempty"`
	OvertimePay   map[string]int64 `json:"overtime_pay,omitempty"`
}

func (r *GenerateRosterRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYearMonth(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}
	for number, days := range r.PaidLeaveDays {
		if days < 0 {
			errs = append(errs, validator.ValidationError{Field: "paid_leave_days." + number, Message: "must be non-negative"})
		}
	}
	for number, amount := range r.OvertimePay {
		if amount < 0 {
			errs = append(errs, validator.ValidationError{Field: "overtime_pay." + number, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}

// ========== ANNUAL REPORT DTOs ==========

type AnnualReportRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	// Per-period supplied inputs, keyed by YYYY-MM.
	PaidLeaveDays map[string]int   `json:"paid_leave_days,omitempty"`
	OvertimePay   map[string]int64 `json:"overtime_pay,omitempty"`
}

func (r *AnnualReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1 and 9999"})
	}
	for period, days := range r.PaidLeaveDays {
		if !validator.IsValidYearMonth(period) {
			errs = append(errs, validator.ValidationError{Field: "paid_leave_days." + period, Message: "key must be in YYYY-MM format"})
		} else if days < 0 {
			errs = append(errs, validator.ValidationError{Field: "paid_leave_days." + period, Message: "must be non-negative"})
		}
	}
	for period, amount := range r.OvertimePay {
		if !validator.IsValidYearMonth(period) {
			errs = append(errs, validator.ValidationError{Field: "overtime_pay." + period, Message: "key must be in YYYY-MM format"})
		} else if amount < 0 {
			errs = append(errs, validator.ValidationError{Field: "overtime_pay." + period, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}
