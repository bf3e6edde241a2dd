package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/closing"
	"github.com/Mobiman12/stundenliste-backend-go/internal/handler/http/response"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/go-chi/chi/v5"
)

type ClosingHandler interface {
	Close(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type ClosingHandlerImpl struct {
	closingService closing.Service
	closingRepo    closing.Repository
}

func NewClosingHandler(closingService closing.Service, closingRepo closing.Repository) ClosingHandler {
	return &ClosingHandlerImpl{closingService: closingService, closingRepo: closingRepo}
}

type closeMonthRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

// Close implements ClosingHandler.
func (h *ClosingHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	var req closeMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Close decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	actorName, err := auth.ActorName(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.closingService.Close(r.Context(), req.EmployeeID, req.Year, time.Month(req.Month), actorName, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Reopen implements ClosingHandler.
func (h *ClosingHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	var req closeMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reopen decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.closingService.Reopen(r.Context(), req.EmployeeID, req.Year, time.Month(req.Month), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ClosingHandler.
func (h *ClosingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	closings, err := h.closingRepo.ListByEmployee(r.Context(), employeeID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, closings)
}
