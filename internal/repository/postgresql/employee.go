package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/metrics"
	"github.com/jackc/pgx/v5"
)

const searchLimit = 50

const employeeColumns = `
	id, employee_number, name, COALESCE(salary_type, ''), base_salary, transportation_allowance,
	allowances, dependents, health_insurance, nursing_insurance, pension_insurance,
	resident_tax_june, resident_tax_other, paid_leave_remaining`

type employeeRepositoryImpl struct {
	db      database.Querier
	metrics *metrics.Metrics
}

func NewEmployeeRepository(db database.Querier, m *metrics.Metrics) payroll.EmployeeRepository {
	return &employeeRepositoryImpl{db: db, metrics: m}
}

// GetByID implements payroll.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Employee, error) {
	defer e.observe("get_employee", time.Now())
	q := getQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Employee{}, fmt.Errorf("employee with id %s: %w", id, payroll.ErrEmployeeNotFound)
		}
		return payroll.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// GetByEmployeeNumber implements payroll.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (payroll.Employee, error) {
	defer e.observe("get_employee_by_number", time.Now())
	q := getQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_number = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Employee{}, fmt.Errorf("employee number %s: %w", employeeNumber, payroll.ErrEmployeeNotFound)
		}
		return payroll.Employee{}, fmt.Errorf("failed to get employee number %s: %w", employeeNumber, err)
	}

	return emp, nil
}

// Search implements payroll.EmployeeRepository.
func (e *employeeRepositoryImpl) Search(ctx context.Context, query string) ([]payroll.Employee, error) {
	defer e.observe("search_employees", time.Now())
	q := getQuerier(ctx, e.db)

	sql := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active
		  AND (name ILIKE '%' || $1 || '%' OR employee_number ILIKE $1 || '%')
		ORDER BY employee_number
		LIMIT $2`

	rows, err := q.Query(ctx, sql, escapeLike(strings.TrimSpace(query)), searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}

	return collectEmployees(rows)
}

// ListActive implements payroll.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]payroll.Employee, error) {
	defer e.observe("list_active_employees", time.Now())
	q := getQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active
		ORDER BY employee_number`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	return collectEmployees(rows)
}

func (e *employeeRepositoryImpl) observe(queryType string, start time.Time) {
	e.metrics.ObserveQuery(queryType, time.Since(start).Seconds())
}

func collectEmployees(rows pgx.Rows) ([]payroll.Employee, error) {
	defer rows.Close()

	employees := []payroll.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func scanEmployee(row pgx.Row) (payroll.Employee, error) {
	var (
		emp        payroll.Employee
		salaryType string
		allowances []byte
	)

	err := row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.Name, &salaryType, &emp.BaseSalary, &emp.TransportationAllowance,
		&allowances, &emp.Dependents, &emp.HealthInsurance, &emp.NursingInsurance, &emp.PensionInsurance,
		&emp.ResidentTax.June, &emp.ResidentTax.Other, &emp.PaidLeaveRemaining,
	)
	if err != nil {
		return payroll.Employee{}, err
	}

	emp.SalaryType = payroll.SalaryType(salaryType)
	emp.Allowances = []payroll.Allowance{}
	if len(allowances) > 0 {
		if err := json.Unmarshal(allowances, &emp.Allowances); err != nil {
			return payroll.Employee{}, fmt.Errorf("failed to decode allowances of employee %s: %w", emp.EmployeeNumber, err)
		}
	}
	if err := emp.Validate(); err != nil {
		return payroll.Employee{}, storedRecordError("employee", emp.EmployeeNumber, err)
	}

	return emp, nil
}

// storedRecordError reports a row that breaks a domain rule. The detail is kept as text
// so the row is not mistaken for invalid client input.
func storedRecordError(kind, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", payroll.ErrInvalidStoredRecord, kind, key, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
