package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRepository struct {
	db      database.Querier
	metrics *metrics.Metrics
}

func NewAttendanceRepository(db database.Querier, m *metrics.Metrics) payroll.AttendanceRepository {
	return &attendanceRepository{db: db, metrics: m}
}

const attendanceColumns = `id, employee_number, work_date, clock_in_time, clock_out_time`

// ListByEmployeeAndMonth implements payroll.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndMonth(ctx context.Context, employeeNumber string, period payroll.Period) ([]payroll.AttendanceRecord, error) {
	defer a.observe("list_attendance_employee_month", time.Now())
	q := getQuerier(ctx, a.db)

	from, to := monthRange(period)
	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_number = $1 AND work_date >= $2 AND work_date < $3
		ORDER BY work_date`

	rows, err := q.Query(ctx, query, employeeNumber, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance of %s for %s: %w", employeeNumber, period, err)
	}

	return collectAttendance(rows)
}

// ListByEmployeeAndYear implements payroll.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndYear(ctx context.Context, employeeNumber string, year int) ([]payroll.AttendanceRecord, error) {
	defer a.observe("list_attendance_employee_year", time.Now())
	q := getQuerier(ctx, a.db)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_number = $1 AND work_date >= $2 AND work_date < $3
		ORDER BY work_date`

	rows, err := q.Query(ctx, query, employeeNumber, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance of %s for %d: %w", employeeNumber, year, err)
	}

	return collectAttendance(rows)
}

// ListByMonth implements payroll.AttendanceRepository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, period payroll.Period) ([]payroll.AttendanceRecord, error) {
	defer a.observe("list_attendance_month", time.Now())
	q := getQuerier(ctx, a.db)

	from, to := monthRange(period)
	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE work_date >= $1 AND work_date < $2
		ORDER BY employee_number, work_date`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", period, err)
	}

	return collectAttendance(rows)
}

func (a *attendanceRepository) observe(queryType string, start time.Time) {
	a.metrics.ObserveQuery(queryType, time.Since(start).Seconds())
}

func monthRange(period payroll.Period) (from, to time.Time) {
	from = time.Date(period.Year, period.Month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func collectAttendance(rows pgx.Rows) ([]payroll.AttendanceRecord, error) {
	defer rows.Close()

	records := []payroll.AttendanceRecord{}
	for rows.Next() {
		var (
			rec      payroll.AttendanceRecord
			workDate pgtype.Date
			clockIn  pgtype.Timestamptz
			clockOut pgtype.Timestamptz
		)
		if err := rows.Scan(&rec.ID, &rec.EmployeeNumber, &workDate, &clockIn, &clockOut); err != nil {
			return nil, err
		}

		rec.Date = workDate.Time
		if clockIn.Valid {
			t := clockIn.Time
			rec.ClockIn = &t
		}
		if clockOut.Valid {
			t := clockOut.Time
			rec.ClockOut = &t
		}
		if err := rec.Validate(); err != nil {
			return nil, storedRecordError("attendance record", rec.ID, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
