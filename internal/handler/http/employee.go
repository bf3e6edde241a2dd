package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/handler/http/response"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	if !auth.IsAdmin(r.Context()) {
		if err := assertOwnSheet(r, employeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	emp, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// UpdateSettings implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	emp, err := h.employeeService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}
