package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

// Adjustments are the per-period inputs that have no attendance signal.
type Adjustments struct {
	PaidLeaveDays int
	OvertimePay   int64
}

// Engine wires the aggregator, calculators and statement builder together.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	deductions *DeductionCalculator
	overtime   OvertimeCalculator
}

type engineConfig struct {
	deductionOpts []DeductionOption
	overtime      OvertimeCalculator
}

type EngineOption func(*engineConfig)

// WithIncomeTax swaps the income tax calculator (flat rate by default).
func WithIncomeTax(c IncomeTaxCalculator) EngineOption {
	return func(cfg *engineConfig) {
		cfg.deductionOpts = append(cfg.deductionOpts, WithIncomeTaxCalculator(c))
	}
}

// WithOvertime swaps the overtime calculator.
func WithOvertime(c OvertimeCalculator) EngineOption {
	return func(cfg *engineConfig) {
		cfg.overtime = c
	}
}

// NewEngine builds an engine from rates. When rates carry an overtime per-minute
// price, overtime minutes are priced; otherwise supplied overtime pay is used as is.
func NewEngine(rates payroll.Rates, opts ...EngineOption) (*Engine, error) {
	cfg := engineConfig{overtime: SuppliedOvertime{}}
	if rates.OvertimePerMinute.Valid {
		cfg.overtime = PerMinuteOvertime{Rate: rates.OvertimePerMinute.Decimal}
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	deductions, err := NewDeductionCalculator(rates, cfg.deductionOpts...)
	if err != nil {
		return nil, err
	}
	if cfg.overtime == nil {
		return nil, fmt.Errorf("%w: overtime calculator", payroll.ErrConfigurationMissing)
	}

	return &Engine{deductions: deductions, overtime: cfg.overtime}, nil
}

// Compute produces the statement of emp for period from the given attendance records.
// Records of other employees or other months are ignored, and only the records
// that count toward the period are validated.
func (e *Engine) Compute(
	emp payroll.Employee,
	period payroll.Period,
	records []payroll.AttendanceRecord,
	adj Adjustments,
) (payroll.Statement, error) {
	if err := emp.Validate(); err != nil {
		return payroll.Statement{}, err
	}
	if !period.Valid() {
		return payroll.Statement{}, fmt.Errorf("%w: %w: %s", payroll.ErrInvalidInput, payroll.ErrInvalidPeriod, period)
	}
	if adj.PaidLeaveDays < 0 || adj.OvertimePay < 0 {
		return payroll.Statement{}, fmt.Errorf("%w: adjustments must be non-negative", payroll.ErrInvalidInput)
	}
	for _, rec := range records {
		if rec.EmployeeNumber != emp.EmployeeNumber || !period.Contains(rec.Date) {
			continue
		}
		if err := rec.Validate(); err != nil {
			return payroll.Statement{}, fmt.Errorf("attendance %s: %w", rec.ID, err)
		}
	}

	summary := AggregateAttendance(emp.EmployeeNumber, period, records, adj.PaidLeaveDays)
	basePay := CalculateBasePay(emp.SalaryType, emp.BaseSalary, summary.WorkDays)
	overtimePay := e.overtime.OvertimePay(emp, summary, adj.OvertimePay)
	deductions := e.deductions.Calculate(emp, period, GrossPay(emp, basePay, overtimePay))

	return BuildStatement(StatementInput{
		Employee:    emp,
		Period:      period,
		Attendance:  summary,
		BasePay:     basePay,
		OvertimePay: overtimePay,
		Deductions:  deductions,
	}), nil
}

// AnnualReport computes January through December of year and their totals.
// adjustments is keyed by period; missing periods use zero adjustments.
func (e *Engine) AnnualReport(
	emp payroll.Employee,
	year int,
	records []payroll.AttendanceRecord,
	adjustments map[payroll.Period]Adjustments,
) (payroll.AnnualReport, error) {
	periods := payroll.PeriodsOfYear(year)
	statements := make([]payroll.Statement, 0, len(periods))

	for _, p := range periods {
		s, err := e.Compute(emp, p, records, adjustments[p])
		if err != nil {
			return payroll.AnnualReport{}, err
		}
		statements = append(statements, s)
	}

	totals, err := AggregatePeriods(statements)
	if err != nil {
		return payroll.AnnualReport{}, err
	}

	return payroll.AnnualReport{Statements: statements, Totals: totals}, nil
}
