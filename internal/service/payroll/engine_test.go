package payroll

import (
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marchRecords(t *testing.T) []payroll.AttendanceRecord {
	t.Helper()
	return []payroll.AttendanceRecord{
		worked(t, "E001", "2025-03-03", "09:00", "17:00"),
		worked(t, "E001", "2025-03-04", "09:00", "18:00"),
		worked(t, "E001", "2025-03-05", "09:00", ""),
		worked(t, "E001", "2025-03-06", "", ""),
		worked(t, "E002", "2025-03-03", "09:00", "18:00"),
		worked(t, "E001", "2025-04-01", "09:00", "18:00"),
	}
}

func TestEngine_Compute(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)

	got, err := engine.Compute(testEmployee(), payroll.MustParsePeriod("2025-03"), marchRecords(t), Adjustments{PaidLeaveDays: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, got.WorkDays)
	assert.Equal(t, 1, got.AbsenceDays)
	assert.Equal(t, 1, got.PaidLeaveDays)
	assert.Equal(t, 60, got.OvertimeMinutes)
	assert.Equal(t, int64(30000), got.BasePay)
	assert.Equal(t, int64(0), got.OvertimePay)
	assert.Equal(t, int64(70000), got.GrossPay)
	assert.Equal(t, int64(210), got.Deductions.EmploymentInsurance)
	assert.Equal(t, int64(3500), got.Deductions.IncomeTax)
	assert.Equal(t, int64(8000), got.Deductions.ResidentTax)
	assert.Equal(t, int64(43710), got.DeductionsTotal)
	assert.Equal(t, int64(26290), got.NetPay)
}

func TestEngine_Compute_Idempotent(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)
	period := payroll.MustParsePeriod("2025-03")

	first, err := engine.Compute(testEmployee(), period, marchRecords(t), Adjustments{OvertimePay: 1200})
	require.NoError(t, err)
	second, err := engine.Compute(testEmployee(), period, marchRecords(t), Adjustments{OvertimePay: 1200})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_Compute_SuppliedOvertime(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)

	got, err := engine.Compute(testEmployee(), payroll.MustParsePeriod("2025-03"), marchRecords(t), Adjustments{OvertimePay: 5000})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), got.OvertimePay)
	assert.Equal(t, int64(75000), got.GrossPay)
}

func TestEngine_Compute_PerMinuteOvertime(t *testing.T) {
	rates := payroll.DefaultRates()
	rates.OvertimePerMinute = decimal.NewNullDecimal(decimal.NewFromInt(50))
	engine, err := NewEngine(rates)
	require.NoError(t, err)

	got, err := engine.Compute(testEmployee(), payroll.MustParsePeriod("2025-03"), marchRecords(t), Adjustments{})
	require.NoError(t, err)

	assert.Equal(t, int64(3000), got.OvertimePay)
}

func TestEngine_Compute_InvalidEmployee(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)
	emp := testEmployee()
	emp.BaseSalary = -1

	_, err = engine.Compute(emp, payroll.MustParsePeriod("2025-03"), nil, Adjustments{})

	assert.ErrorIs(t, err, payroll.ErrInvalidInput)
}

func TestEngine_Compute_InvalidRecord(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)
	rec := worked(t, "E001", "2025-03-03", "18:00", "09:00")

	_, err = engine.Compute(testEmployee(), payroll.MustParsePeriod("2025-03"), []payroll.AttendanceRecord{rec}, Adjustments{})

	assert.ErrorIs(t, err, payroll.ErrInvalidInput)
}

func TestEngine_Compute_ZeroLengthDayRejected(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)
	rec := worked(t, "E001", "2025-03-03", "09:00", "09:00")

	_, err = engine.Compute(testEmployee(), payroll.MustParsePeriod("2025-03"), []payroll.AttendanceRecord{rec}, Adjustments{})

	assert.ErrorIs(t, err, payroll.ErrInvalidInput)
}

func TestEngine_Compute_IgnoresInvalidRecordOutsidePeriod(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)
	records := append(marchRecords(t), worked(t, "E001", "2025-02-28", "09:00", "09:00"))

	got, err := engine.Compute(testEmployee(), payroll.MustParsePeriod("2025-03"), records, Adjustments{})
	require.NoError(t, err)

	assert.Equal(t, 3, got.WorkDays)
}

func TestEngine_Compute_InvalidPeriod(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)

	for _, p := range []payroll.Period{{}, {Year: 2025, Month: 13}, {Year: 2025, Month: 0}, {Year: 0, Month: 3}} {
		_, err := engine.Compute(testEmployee(), p, marchRecords(t), Adjustments{})
		assert.ErrorIs(t, err, payroll.ErrInvalidPeriod, "period %+v", p)
	}
}

func TestEngine_Compute_NegativeAdjustment(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)

	_, err = engine.Compute(testEmployee(), payroll.MustParsePeriod("2025-03"), nil, Adjustments{PaidLeaveDays: -1})

	assert.ErrorIs(t, err, payroll.ErrInvalidInput)
}

func TestNewEngine_MissingRates(t *testing.T) {
	_, err := NewEngine(payroll.Rates{})

	assert.ErrorIs(t, err, payroll.ErrConfigurationMissing)
}

func TestEngine_AnnualReport(t *testing.T) {
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)
	june := payroll.MustParsePeriod("2025-06")

	report, err := engine.AnnualReport(testEmployee(), 2025, marchRecords(t), map[payroll.Period]Adjustments{
		june: {OvertimePay: 1000},
	})
	require.NoError(t, err)

	require.Len(t, report.Statements, 12)
	assert.Equal(t, payroll.MustParsePeriod("2025-01"), report.Statements[0].Period)
	assert.Equal(t, payroll.MustParsePeriod("2025-12"), report.Statements[11].Period)
	assert.Equal(t, int64(9000), report.Statements[5].Deductions.ResidentTax)
	assert.Equal(t, int64(1000), report.Statements[5].OvertimePay)
	assert.Equal(t, 4, report.Totals.WorkDays)
	assert.Equal(t, 120, report.Totals.OvertimeMinutes)
	assert.Equal(t, 12, report.Totals.Months)
	assert.Equal(t, int64(11*8000+9000), report.Totals.Deductions.ResidentTax)
}
