package payroll

import "context"

// PayrollService defines payroll computation over the employee and attendance stores
type PayrollService interface {
	// GenerateStatement computes one employee's statement for one period
	GenerateStatement(ctx context.Context, req GenerateStatementRequest) (Statement, error)

	// GenerateRoster computes statements of every active employee for one period
	GenerateRoster(ctx context.Context, req GenerateRosterRequest) (Roster, error)

	// GetAnnualReport computes January to December statements and their totals
	GetAnnualReport(ctx context.Context, req AnnualReportRequest) (AnnualReport, error)

	GetEmployee(ctx context.Context, id string) (Employee, error)
	GetEmployeeByNumber(ctx context.Context, employeeNumber string) (Employee, error)
	SearchEmployees(ctx context.Context, query string) ([]Employee, error)
}
