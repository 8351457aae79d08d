package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/logger"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid period, expected YYYY-MM", nil)
	case errors.Is(err, payroll.ErrInvalidInput):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrInvalidStoredRecord):
		slog.Error("Stored payroll data failed validation", logger.Err(err))
		InternalServerError(w, "Stored payroll data is invalid")
	case errors.Is(err, payroll.ErrConfigurationMissing):
		slog.Error("Payroll configuration missing", logger.Err(err))
		ConfigurationMissing(w, "Payroll rates are not configured")

	// Default
	default:
		slog.Error("Unhandled error", logger.Err(err))
		InternalServerError(w, "An unexpected error occurred")
	}
}
