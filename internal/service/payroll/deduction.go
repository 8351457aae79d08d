package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// IncomeTaxCalculator computes the income tax withheld from a period's gross pay.
type IncomeTaxCalculator interface {
	IncomeTax(grossPay int64, emp payroll.Employee) int64
}

// FlatRateTax withholds a flat percentage of gross pay.
type FlatRateTax struct {
	Rate decimal.Decimal
}

func (t FlatRateTax) IncomeTax(grossPay int64, _ payroll.Employee) int64 {
	return roundAmount(grossPay, t.Rate)
}

// WithholdingBracket covers gross pay in [MinGross, MaxGross). MaxGross 0 means no upper bound.
// Tax is indexed by dependents count; the last entry applies to any higher count.
type WithholdingBracket struct {
	MinGross int64
	MaxGross int64
	Tax      []int64
}

// WithholdingTable looks income tax up by gross pay and dependents count.
// Gross pay outside every bracket withholds nothing.
type WithholdingTable struct {
	brackets []WithholdingBracket
}

// NewWithholdingTable validates that brackets are ordered, non-overlapping and non-negative.
func NewWithholdingTable(brackets []WithholdingBracket) (*WithholdingTable, error) {
	var errs validator.ValidationErrors

	for i, b := range brackets {
		field := fmt.Sprintf("brackets[%d]", i)
		if b.MinGross < 0 {
			errs = append(errs, validator.ValidationError{Field: field + ".min_gross", Message: "must be non-negative"})
		}
		if b.MaxGross != 0 && b.MaxGross <= b.MinGross {
			errs = append(errs, validator.ValidationError{Field: field + ".max_gross", Message: "must be greater than min_gross"})
		}
		if len(b.Tax) == 0 {
			errs = append(errs, validator.ValidationError{Field: field + ".tax", Message: "at least one amount is required"})
		}
		for _, tax := range b.Tax {
			if tax < 0 {
				errs = append(errs, validator.ValidationError{Field: field + ".tax", Message: "must be non-negative"})
				break
			}
		}
		if i > 0 {
			prev := brackets[i-1]
			if prev.MaxGross == 0 || b.MinGross < prev.MaxGross {
				errs = append(errs, validator.ValidationError{Field: field + ".min_gross", Message: "overlaps the previous bracket"})
			}
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", payroll.ErrInvalidInput, errs)
	}

	return &WithholdingTable{brackets: append([]WithholdingBracket(nil), brackets...)}, nil
}

func (t *WithholdingTable) IncomeTax(grossPay int64, emp payroll.Employee) int64 {
	for _, b := range t.brackets {
		if grossPay < b.MinGross || (b.MaxGross != 0 && grossPay >= b.MaxGross) {
			continue
		}
		idx := emp.Dependents
		if idx >= len(b.Tax) {
			idx = len(b.Tax) - 1
		}
		return b.Tax[idx]
	}
	return 0
}

// DeductionCalculator computes statutory and configured deductions for a period.
type DeductionCalculator struct {
	employmentInsuranceRate decimal.Decimal
	incomeTax               IncomeTaxCalculator
}

type DeductionOption func(*DeductionCalculator)

// WithIncomeTaxCalculator replaces the flat-rate income tax.
func WithIncomeTaxCalculator(c IncomeTaxCalculator) DeductionOption {
	return func(d *DeductionCalculator) {
		d.incomeTax = c
	}
}

// NewDeductionCalculator refuses to build a calculator from incomplete rates.
func NewDeductionCalculator(rates payroll.Rates, opts ...DeductionOption) (*DeductionCalculator, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}

	d := &DeductionCalculator{
		employmentInsuranceRate: rates.EmploymentInsurance.Decimal,
		incomeTax:               FlatRateTax{Rate: rates.IncomeTax.Decimal},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.incomeTax == nil {
		return nil, fmt.Errorf("%w: income tax calculator", payroll.ErrConfigurationMissing)
	}

	return d, nil
}

// Calculate returns every deduction line of the period.
func (d *DeductionCalculator) Calculate(emp payroll.Employee, period payroll.Period, grossPay int64) payroll.Deductions {
	residentTax := emp.ResidentTax.Other
	if period.IsJune() {
		residentTax = emp.ResidentTax.June
	}

	return payroll.Deductions{
		HealthInsurance:     emp.HealthInsurance,
		NursingInsurance:    emp.NursingInsurance,
		PensionInsurance:    emp.PensionInsurance,
		EmploymentInsurance: roundAmount(grossPay, d.employmentInsuranceRate),
		IncomeTax:           d.incomeTax.IncomeTax(grossPay, emp),
		ResidentTax:         residentTax,
	}
}

// roundAmount multiplies amount by rate and rounds half away from zero to a whole amount.
// Every percentage-based line uses it.
func roundAmount(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}
