package payroll

import (
	"context"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/stretchr/testify/mock"
)

type mockEmployeeRepo struct {
	mock.Mock
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id string) (payroll.Employee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(payroll.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (payroll.Employee, error) {
	args := m.Called(ctx, employeeNumber)
	return args.Get(0).(payroll.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) Search(ctx context.Context, query string) ([]payroll.Employee, error) {
	args := m.Called(ctx, query)
	employees, _ := args.Get(0).([]payroll.Employee)
	return employees, args.Error(1)
}

func (m *mockEmployeeRepo) ListActive(ctx context.Context) ([]payroll.Employee, error) {
	args := m.Called(ctx)
	employees, _ := args.Get(0).([]payroll.Employee)
	return employees, args.Error(1)
}

type mockAttendanceRepo struct {
	mock.Mock
}

func (m *mockAttendanceRepo) ListByEmployeeAndMonth(ctx context.Context, employeeNumber string, period payroll.Period) ([]payroll.AttendanceRecord, error) {
	args := m.Called(ctx, employeeNumber, period)
	records, _ := args.Get(0).([]payroll.AttendanceRecord)
	return records, args.Error(1)
}

func (m *mockAttendanceRepo) ListByEmployeeAndYear(ctx context.Context, employeeNumber string, year int) ([]payroll.AttendanceRecord, error) {
	args := m.Called(ctx, employeeNumber, year)
	records, _ := args.Get(0).([]payroll.AttendanceRecord)
	return records, args.Error(1)
}

func (m *mockAttendanceRepo) ListByMonth(ctx context.Context, period payroll.Period) ([]payroll.AttendanceRecord, error) {
	args := m.Called(ctx, period)
	records, _ := args.Get(0).([]payroll.AttendanceRecord)
	return records, args.Error(1)
}

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) GetRates(ctx context.Context) (payroll.Rates, error) {
	args := m.Called(ctx)
	return args.Get(0).(payroll.Rates), args.Error(1)
}

// passthroughSnapshot counts how many snapshots were opened.
type passthroughSnapshot struct {
	opened int
}

func (p *passthroughSnapshot) ReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	p.opened++
	return fn(ctx)
}
