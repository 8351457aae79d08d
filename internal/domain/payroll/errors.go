package payroll

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid payroll input")
	ErrInvalidPeriod        = errors.New("invalid payroll period, expected YYYY-MM")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrSettingsNotFound     = errors.New("payroll settings not found")
	ErrConfigurationMissing = errors.New("payroll configuration missing")
	ErrMixedEmployees       = errors.New("statements belong to different employees")
	ErrDuplicatePeriod      = errors.New("statements contain the same period more than once")
	ErrInvalidStoredRecord  = errors.New("stored payroll record is invalid")
)
