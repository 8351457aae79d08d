package payroll

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearOfStatements(t *testing.T) []payroll.Statement {
	t.Helper()
	engine, err := NewEngine(payroll.DefaultRates())
	require.NoError(t, err)

	var records []payroll.AttendanceRecord
	for _, p := range payroll.PeriodsOfYear(2025) {
		for d := 1; d <= int(p.Month); d++ {
			date := p.String() + "-" + twoDigits(d)
			records = append(records, worked(t, "E001", date, "09:00", "18:00"))
		}
		records = append(records, worked(t, "E001", p.String()+"-28", "", ""))
	}

	report, err := engine.AnnualReport(testEmployee(), 2025, records, nil)
	require.NoError(t, err)
	return report.Statements
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func TestAggregatePeriods_Sums(t *testing.T) {
	statements := yearOfStatements(t)

	got, err := AggregatePeriods(statements)
	require.NoError(t, err)

	assert.Equal(t, 12, got.Months)
	assert.Equal(t, payroll.MustParsePeriod("2025-01"), got.From)
	assert.Equal(t, payroll.MustParsePeriod("2025-12"), got.To)
	assert.Equal(t, 78, got.WorkDays) // 1 + 2 + ... + 12
	assert.Equal(t, 12, got.AbsenceDays)
	assert.Equal(t, 78*60, got.OvertimeMinutes)
	assert.Equal(t, int64(780000), got.BasePay)

	var gross, net, health int64
	for _, s := range statements {
		gross += s.GrossPay
		net += s.NetPay
		health += s.Deductions.HealthInsurance
	}
	assert.Equal(t, gross, got.GrossPay)
	assert.Equal(t, net, got.NetPay)
	assert.Equal(t, health, got.Deductions.HealthInsurance)
	assert.Equal(t, got.GrossPay-got.DeductionsTotal, got.NetPay)
}

func TestAggregatePeriods_OrderIndependent(t *testing.T) {
	statements := yearOfStatements(t)
	want, err := AggregatePeriods(statements)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]payroll.Statement(nil), statements...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := AggregatePeriods(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAggregatePeriods_Empty(t *testing.T) {
	got, err := AggregatePeriods(nil)

	require.NoError(t, err)
	assert.Zero(t, got)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "from")
	assert.NotContains(t, fields, "to")
	assert.EqualValues(t, 0, fields["months"])
}

func TestAggregatePeriods_MixedEmployees(t *testing.T) {
	statements := []payroll.Statement{
		{EmployeeNumber: "E001", Period: payroll.MustParsePeriod("2025-01")},
		{EmployeeNumber: "E002", Period: payroll.MustParsePeriod("2025-02")},
	}

	_, err := AggregatePeriods(statements)

	assert.ErrorIs(t, err, payroll.ErrInvalidInput)
	assert.ErrorIs(t, err, payroll.ErrMixedEmployees)
}

func TestAggregatePeriods_DuplicatePeriod(t *testing.T) {
	statements := []payroll.Statement{
		{EmployeeNumber: "E001", Period: payroll.MustParsePeriod("2025-01")},
		{EmployeeNumber: "E001", Period: payroll.MustParsePeriod("2025-01")},
	}

	_, err := AggregatePeriods(statements)

	assert.ErrorIs(t, err, payroll.ErrDuplicatePeriod)
}

func TestSummarizeRoster(t *testing.T) {
	march := payroll.MustParsePeriod("2025-03")
	statements := []payroll.Statement{
		{EmployeeNumber: "E001", BasePay: 100, GrossPay: 150, DeductionsTotal: 20, NetPay: 130, Deductions: payroll.Deductions{IncomeTax: 20}},
		{EmployeeNumber: "E002", BasePay: 200, GrossPay: 200, DeductionsTotal: 50, NetPay: 150, Deductions: payroll.Deductions{IncomeTax: 10, ResidentTax: 40}},
	}

	got := SummarizeRoster(march, statements)

	assert.Equal(t, march, got.Period)
	assert.Equal(t, 2, got.EmployeeCount)
	assert.Equal(t, int64(300), got.BasePay)
	assert.Equal(t, int64(350), got.GrossPay)
	assert.Equal(t, int64(30), got.Deductions.IncomeTax)
	assert.Equal(t, int64(280), got.NetPay)
}
