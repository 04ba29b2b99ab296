package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/TemperedKirin/fullstack-proyecto/internal/domain/employee"
	"github.com/TemperedKirin/fullstack-proyecto/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

func empNoFromRequest(r *http.Request) (int, error) {
	empNo, err := strconv.Atoi(chi.URLParam(r, "empNo"))
	if err != nil {
		return 0, employee.ErrInvalidEmpNo
	}
	return empNo, nil
}

// ListEmployees implements EmployeeHandler - paginated list with search
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.ListEmployeesFilter{
		Query: r.URL.Query().Get("q"),
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			filter.Page = parsed
		}
	}
	if ps := r.URL.Query().Get("pageSize"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil {
			filter.PageSize = parsed
		}
	}

	result, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	empNo, err := empNoFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Get(r.Context(), empNo)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	empNo, err := empNoFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Update(r.Context(), empNo, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	empNo, err := empNoFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.employeeService.Delete(r.Context(), empNo); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}
