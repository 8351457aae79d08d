package payroll

import "context"

// EmployeeRepository is the read side of the employee store. The payroll engine never writes employees.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (Employee, error)
	// Search matches name (case-insensitive) or employee number.
	Search(ctx context.Context, query string) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}

// AttendanceRepository is the read side of the attendance store.
type AttendanceRepository interface {
	ListByEmployeeAndMonth(ctx context.Context, employeeNumber string, period Period) ([]AttendanceRecord, error)
	ListByEmployeeAndYear(ctx context.Context, employeeNumber string, year int) ([]AttendanceRecord, error)
	ListByMonth(ctx context.Context, period Period) ([]AttendanceRecord, error)
}

// SettingsRepository supplies the configured deduction rates.
// It returns ErrSettingsNotFound when no settings row exists.
type SettingsRepository interface {
	GetRates(ctx context.Context) (Rates, error)
}

// Snapshotter runs fn against one consistent read view of the stores, so a
// statement never mixes employee and attendance data from different moments.
type Snapshotter interface {
	ReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}
