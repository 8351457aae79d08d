package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Statements
	GetStatement(w http.ResponseWriter, r *http.Request)

	// Roster
	GetRoster(w http.ResponseWriter, r *http.Request)
	GenerateRoster(w http.ResponseWriter, r *http.Request)

	// Annual report
	GetAnnualReport(w http.ResponseWriter, r *http.Request)
	GenerateAnnualReport(w http.ResponseWriter, r *http.Request)

	// Labels
	ListSalaryTypes(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== STATEMENTS ==========

func (h *payrollHandlerImpl) GetStatement(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	query := r.URL.Query()
	req := payroll.GenerateStatementRequest{
		EmployeeID: employeeID,
		Period:     query.Get("period"),
	}

	var details validator.ValidationErrors
	req.PaidLeaveDays = queryInt(query.Get("paid_leave_days"), "paid_leave_days", &details)
	req.OvertimePay = int64(queryInt(query.Get("overtime_pay"), "overtime_pay", &details))
	if len(details) > 0 {
		response.BadRequest(w, "Invalid query parameters", details.ToMap())
		return
	}

	result, err := h.payrollService.GenerateStatement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== ROSTER ==========

func (h *payrollHandlerImpl) GetRoster(w http.ResponseWriter, r *http.Request) {
	req := payroll.GenerateRosterRequest{Period: r.URL.Query().Get("period")}

	result, err := h.payrollService.GenerateRoster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result.Statements))})
}

// GenerateRoster takes per-employee paid leave and overtime in the body.
func (h *payrollHandlerImpl) GenerateRoster(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GenerateRoster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result.Statements))})
}

// ========== ANNUAL REPORT ==========

func (h *payrollHandlerImpl) GetAnnualReport(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Invalid year", nil)
		return
	}

	result, err := h.payrollService.GetAnnualReport(r.Context(), payroll.AnnualReportRequest{
		EmployeeID: employeeID,
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateAnnualReport takes per-period paid leave and overtime in the body.
func (h *payrollHandlerImpl) GenerateAnnualReport(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	var req payroll.AnnualReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.payrollService.GetAnnualReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== LABELS ==========

func (h *payrollHandlerImpl) ListSalaryTypes(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = defaultLanguage
	}
	if !validator.IsInSlice(lang, supportedLanguages) {
		response.BadRequest(w, "Unsupported language", map[string]string{"lang": "must be one of ja, en"})
		return
	}

	response.Success(w, salaryTypeLabels(lang))
}

// queryInt parses an optional non-negative integer query parameter. Blank means zero.
func queryInt(raw, field string, details *validator.ValidationErrors) int {
	if raw == "" {
		return 0
	}
	if !validator.IsNumeric(raw) {
		*details = append(*details, validator.ValidationError{Field: field, Message: "must be a non-negative integer"})
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*details = append(*details, validator.ValidationError{Field: field, Message: "is out of range"})
		return 0
	}
	return n
}
