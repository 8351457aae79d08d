package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	SearchEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployeeByNumber(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewEmployeeHandler(payrollService payroll.PayrollService) EmployeeHandler {
	return &employeeHandlerImpl{payrollService: payrollService}
}

// SearchEmployees implements EmployeeHandler - matches name or employee number
func (h *employeeHandlerImpl) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		query = r.URL.Query().Get("query")
	}

	employees, err := h.payrollService.SearchEmployees(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, employees, &response.Meta{TotalItems: int64(len(employees))})
}

func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	emp, err := h.payrollService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// GetEmployeeByNumber looks an employee up by the number printed on attendance cards.
func (h *employeeHandlerImpl) GetEmployeeByNumber(w http.ResponseWriter, r *http.Request) {
	emp, err := h.payrollService.GetEmployeeByNumber(r.Context(), chi.URLParam(r, "employeeNumber"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}
