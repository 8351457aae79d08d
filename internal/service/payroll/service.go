package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/logger"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const defaultRosterConcurrency = 4

// ServiceConfig carries the configured fallbacks of the payroll service.
type ServiceConfig struct {
	// Rates are used when the settings store has no row, and fill rates the row leaves empty.
	Rates             payroll.Rates
	RosterConcurrency int
	EngineOptions     []EngineOption
}

type PayrollServiceImpl struct {
	employeeRepo   payroll.EmployeeRepository
	attendanceRepo payroll.AttendanceRepository
	settingsRepo   payroll.SettingsRepository
	snapshot       payroll.Snapshotter
	cfg            ServiceConfig
	metrics        *metrics.Metrics
}

func NewPayrollService(
	employeeRepo payroll.EmployeeRepository,
	attendanceRepo payroll.AttendanceRepository,
	settingsRepo payroll.SettingsRepository,
	snapshot payroll.Snapshotter,
	cfg ServiceConfig,
	m *metrics.Metrics,
) payroll.PayrollService {
	if cfg.RosterConcurrency <= 0 {
		cfg.RosterConcurrency = defaultRosterConcurrency
	}
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		settingsRepo:   settingsRepo,
		snapshot:       snapshot,
		cfg:            cfg,
		metrics:        m,
	}
}

// read runs fn in a read snapshot when one is configured.
func (s *PayrollServiceImpl) read(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.snapshot == nil {
		return fn(ctx)
	}
	return s.snapshot.ReadSnapshot(ctx, fn)
}

// engine builds an engine from the stored rates, falling back to the configured ones.
func (s *PayrollServiceImpl) engine(ctx context.Context) (*Engine, error) {
	rates, err := s.settingsRepo.GetRates(ctx)
	switch {
	case errors.Is(err, payroll.ErrSettingsNotFound):
		slog.Debug("No payroll settings stored, using configured rates")
		rates = s.cfg.Rates
	case err != nil:
		return nil, fmt.Errorf("failed to load payroll settings: %w", err)
	default:
		rates = mergeRates(rates, s.cfg.Rates)
	}

	return NewEngine(rates, s.cfg.EngineOptions...)
}

func mergeRates(stored, fallback payroll.Rates) payroll.Rates {
	if !stored.EmploymentInsurance.Valid {
		stored.EmploymentInsurance = fallback.EmploymentInsurance
	}
	if !stored.IncomeTax.Valid {
		stored.IncomeTax = fallback.IncomeTax
	}
	if !stored.OvertimePerMinute.Valid {
		stored.OvertimePerMinute = fallback.OvertimePerMinute
	}
	return stored
}

// ========== STATEMENT ==========

func (s *PayrollServiceImpl) GenerateStatement(ctx context.Context, req payroll.GenerateStatementRequest) (statement payroll.Statement, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveGeneration("statement", 1, time.Since(start).Seconds(), err)
	}()

	if err := req.Validate(); err != nil {
		return payroll.Statement{}, err
	}
	period, err := payroll.ParsePeriod(req.Period)
	if err != nil {
		return payroll.Statement{}, err
	}

	var (
		emp     payroll.Employee
		records []payroll.AttendanceRecord
		engine  *Engine
	)
	err = s.read(ctx, func(ctx context.Context) error {
		var err error
		if emp, err = s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}
		if records, err = s.attendanceRepo.ListByEmployeeAndMonth(ctx, emp.EmployeeNumber, period); err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		engine, err = s.engine(ctx)
		return err
	})
	if err != nil {
		return payroll.Statement{}, err
	}

	statement, err = engine.Compute(emp, period, records, Adjustments{
		PaidLeaveDays: req.PaidLeaveDays,
		OvertimePay:   req.OvertimePay,
	})
	if err != nil {
		slog.Warn("Failed to compute statement", "employee_number", emp.EmployeeNumber, "period", period.String(), logger.Err(err))
		return payroll.Statement{}, err
	}

	return statement, nil
}

// ========== ROSTER ==========

func (s *PayrollServiceImpl) GenerateRoster(ctx context.Context, req payroll.GenerateRosterRequest) (roster payroll.Roster, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveGeneration("roster", len(roster.Statements), time.Since(start).Seconds(), err)
	}()

	if err := req.Validate(); err != nil {
		return payroll.Roster{}, err
	}
	period, err := payroll.ParsePeriod(req.Period)
	if err != nil {
		return payroll.Roster{}, err
	}

	var (
		employees []payroll.Employee
		records   []payroll.AttendanceRecord
		engine    *Engine
	)
	err = s.read(ctx, func(ctx context.Context) error {
		var err error
		if employees, err = s.employeeRepo.ListActive(ctx); err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		// One query for the whole month; the aggregator filters per employee.
		if records, err = s.attendanceRepo.ListByMonth(ctx, period); err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		engine, err = s.engine(ctx)
		return err
	})
	if err != nil {
		return payroll.Roster{}, err
	}

	statements := make([]payroll.Statement, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.RosterConcurrency)

	for i, emp := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st, err := engine.Compute(emp, period, records, Adjustments{
				PaidLeaveDays: req.PaidLeaveDays[emp.EmployeeNumber],
				OvertimePay:   req.OvertimePay[emp.EmployeeNumber],
			})
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.EmployeeNumber, err)
			}
			statements[i] = st
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Failed to generate payroll roster", "period", period.String(), logger.Err(err))
		return payroll.Roster{}, err
	}

	slog.Info("Generated payroll roster", "period", period.String(), "employee_count", len(statements))

	return payroll.Roster{
		Statements: statements,
		Summary:    SummarizeRoster(period, statements),
	}, nil
}

// ========== ANNUAL REPORT ==========

func (s *PayrollServiceImpl) GetAnnualReport(ctx context.Context, req payroll.AnnualReportRequest) (report payroll.AnnualReport, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveGeneration("annual", len(report.Statements), time.Since(start).Seconds(), err)
	}()

	if err := req.Validate(); err != nil {
		return payroll.AnnualReport{}, err
	}
	adjustments, err := annualAdjustments(req)
	if err != nil {
		return payroll.AnnualReport{}, err
	}

	var (
		emp     payroll.Employee
		records []payroll.AttendanceRecord
		engine  *Engine
	)
	err = s.read(ctx, func(ctx context.Context) error {
		var err error
		if emp, err = s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}
		if records, err = s.attendanceRepo.ListByEmployeeAndYear(ctx, emp.EmployeeNumber, req.Year); err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		engine, err = s.engine(ctx)
		return err
	})
	if err != nil {
		return payroll.AnnualReport{}, err
	}

	return engine.AnnualReport(emp, req.Year, records, adjustments)
}

func annualAdjustments(req payroll.AnnualReportRequest) (map[payroll.Period]Adjustments, error) {
	adjustments := make(map[payroll.Period]Adjustments)

	for key, days := range req.PaidLeaveDays {
		p, err := payroll.ParsePeriod(key)
		if err != nil {
			return nil, err
		}
		adj := adjustments[p]
		adj.PaidLeaveDays = days
		adjustments[p] = adj
	}
	for key, amount := range req.OvertimePay {
		p, err := payroll.ParsePeriod(key)
		if err != nil {
			return nil, err
		}
		adj := adjustments[p]
		adj.OvertimePay = amount
		adjustments[p] = adj
	}

	for p := range adjustments {
		if p.Year != req.Year {
			return nil, fmt.Errorf("%w: period %s is outside year %d", payroll.ErrInvalidInput, p, req.Year)
		}
	}

	return adjustments, nil
}

// ========== EMPLOYEES ==========

func (s *PayrollServiceImpl) GetEmployee(ctx context.Context, id string) (payroll.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *PayrollServiceImpl) GetEmployeeByNumber(ctx context.Context, employeeNumber string) (payroll.Employee, error) {
	employeeNumber = strings.TrimSpace(employeeNumber)
	if validator.IsEmpty(employeeNumber) {
		return payroll.Employee{}, fmt.Errorf("%w: %w", payroll.ErrInvalidInput, validator.ValidationErrors{
			{Field: "employee_number", Message: "is required"},
		})
	}
	return s.employeeRepo.GetByEmployeeNumber(ctx, employeeNumber)
}

func (s *PayrollServiceImpl) SearchEmployees(ctx context.Context, query string) ([]payroll.Employee, error) {
	employees, err := s.employeeRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []payroll.Employee{}
	}
	return employees, nil
}
