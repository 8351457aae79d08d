package payroll

import (
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeductionCalculator_Calculate(t *testing.T) {
	calc, err := NewDeductionCalculator(payroll.DefaultRates())
	require.NoError(t, err)

	got := calc.Calculate(testEmployee(), payroll.MustParsePeriod("2025-01"), 300000)

	assert.Equal(t, payroll.Deductions{
		HealthInsurance:     12000,
		NursingInsurance:    2000,
		PensionInsurance:    18000,
		EmploymentInsurance: 900,
		IncomeTax:           15000,
		ResidentTax:         8000,
	}, got)
	assert.Equal(t, int64(55900), got.Total())
}

func TestDeductionCalculator_ResidentTaxByMonth(t *testing.T) {
	calc, err := NewDeductionCalculator(payroll.DefaultRates())
	require.NoError(t, err)
	emp := testEmployee()

	tests := []struct {
		period string
		want   int64
	}{
		{"2025-06", 9000},
		{"2024-06", 9000},
		{"2025-01", 8000},
		{"2025-05", 8000},
		{"2025-07", 8000},
		{"2025-12", 8000},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got := calc.Calculate(emp, payroll.MustParsePeriod(tt.period), 100000)
			assert.Equal(t, tt.want, got.ResidentTax)
		})
	}
}

func TestDeductionCalculator_RoundsHalfAwayFromZero(t *testing.T) {
	calc, err := NewDeductionCalculator(payroll.DefaultRates())
	require.NoError(t, err)

	// 1500 * 0.003 = 4.5, 1500 * 0.05 = 75
	got := calc.Calculate(payroll.Employee{EmployeeNumber: "E9"}, payroll.MustParsePeriod("2025-02"), 1500)
	assert.Equal(t, int64(5), got.EmploymentInsurance)
	assert.Equal(t, int64(75), got.IncomeTax)

	// 1499 * 0.003 = 4.497, 1499 * 0.05 = 74.95
	got = calc.Calculate(payroll.Employee{EmployeeNumber: "E9"}, payroll.MustParsePeriod("2025-02"), 1499)
	assert.Equal(t, int64(4), got.EmploymentInsurance)
	assert.Equal(t, int64(75), got.IncomeTax)
}

func TestRoundAmount_Negative(t *testing.T) {
	assert.Equal(t, int64(-5), roundAmount(-1500, decimal.RequireFromString("0.003")))
}

func TestNewDeductionCalculator_MissingRate(t *testing.T) {
	_, err := NewDeductionCalculator(payroll.Rates{
		EmploymentInsurance: decimal.NewNullDecimal(decimal.RequireFromString("0.003")),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrConfigurationMissing)
	assert.Contains(t, err.Error(), "income_tax_rate")
}

func TestNewDeductionCalculator_NegativeRate(t *testing.T) {
	rates := payroll.DefaultRates()
	rates.IncomeTax = decimal.NewNullDecimal(decimal.RequireFromString("-0.01"))

	_, err := NewDeductionCalculator(rates)

	assert.ErrorIs(t, err, payroll.ErrInvalidInput)
}

func TestNewDeductionCalculator_NilIncomeTax(t *testing.T) {
	_, err := NewDeductionCalculator(payroll.DefaultRates(), WithIncomeTaxCalculator(nil))

	assert.ErrorIs(t, err, payroll.ErrConfigurationMissing)
}

// ===== WITHHOLDING TABLE =====

func testWithholdingTable(t *testing.T) *WithholdingTable {
	t.Helper()
	table, err := NewWithholdingTable([]WithholdingBracket{
		{MinGross: 88000, MaxGross: 200000, Tax: []int64{1000, 500, 0}},
		{MinGross: 200000, MaxGross: 300000, Tax: []int64{5000, 3000, 1500}},
		{MinGross: 300000, Tax: []int64{10000, 7000}},
	})
	require.NoError(t, err)
	return table
}

func TestWithholdingTable_IncomeTax(t *testing.T) {
	table := testWithholdingTable(t)

	tests := []struct {
		name       string
		gross      int64
		dependents int
		want       int64
	}{
		{"below first bracket", 50000, 0, 0},
		{"first bracket lower bound", 88000, 0, 1000},
		{"first bracket one dependent", 150000, 1, 500},
		{"upper bound is exclusive", 200000, 0, 5000},
		{"dependents beyond table use last column", 250000, 5, 1500},
		{"unbounded bracket", 1000000, 1, 7000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.IncomeTax(tt.gross, payroll.Employee{Dependents: tt.dependents})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWithholdingTable_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		brackets []WithholdingBracket
	}{
		{"overlap", []WithholdingBracket{
			{MinGross: 0, MaxGross: 100, Tax: []int64{1}},
			{MinGross: 50, MaxGross: 200, Tax: []int64{2}},
		}},
		{"after unbounded", []WithholdingBracket{
			{MinGross: 0, Tax: []int64{1}},
			{MinGross: 50, Tax: []int64{2}},
		}},
		{"empty tax", []WithholdingBracket{{MinGross: 0, MaxGross: 100}}},
		{"negative tax", []WithholdingBracket{{MinGross: 0, MaxGross: 100, Tax: []int64{-1}}}},
		{"max below min", []WithholdingBracket{{MinGross: 100, MaxGross: 50, Tax: []int64{1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWithholdingTable(tt.brackets)
			assert.ErrorIs(t, err, payroll.ErrInvalidInput)
		})
	}
}

func TestDeductionCalculator_WithholdingTable(t *testing.T) {
	calc, err := NewDeductionCalculator(payroll.DefaultRates(), WithIncomeTaxCalculator(testWithholdingTable(t)))
	require.NoError(t, err)

	got := calc.Calculate(testEmployee(), payroll.MustParsePeriod("2025-03"), 250000)

	assert.Equal(t, int64(3000), got.IncomeTax)
	assert.Equal(t, int64(750), got.EmploymentInsurance)
}
