package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/handler/http/response"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/go-chi/chi/v5"
)

type ShiftPlanHandler interface {
	SaveDay(w http.ResponseWriter, r *http.Request)
	DeleteDay(w http.ResponseWriter, r *http.Request)
	GetWindow(w http.ResponseWriter, r *http.Request)
	ApplyAbsenceRange(w http.ResponseWriter, r *http.Request)
}

type ShiftPlanHandlerImpl struct {
	planner shiftplan.Planner
}

func NewShiftPlanHandler(planner shiftplan.Planner) ShiftPlanHandler {
	return &ShiftPlanHandlerImpl{planner: planner}
}

// SaveDay implements ShiftPlanHandler.
func (h *ShiftPlanHandlerImpl) SaveDay(w http.ResponseWriter, r *http.Request) {
	var req shiftplan.SaveDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := h.planner.SaveDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// DeleteDay implements ShiftPlanHandler.
func (h *ShiftPlanHandlerImpl) DeleteDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	if err := h.planner.DeleteDay(r.Context(), employeeID, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Plan day deleted", nil)
}

// GetWindow implements ShiftPlanHandler.
func (h *ShiftPlanHandlerImpl) GetWindow(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		response.BadRequest(w, "from and to are required", nil)
		return
	}

	if !auth.IsAdmin(r.Context()) {
		if err := assertOwnSheet(r, employeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	window, err := h.planner.GetWindow(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, window)
}

// ApplyAbsenceRange implements ShiftPlanHandler.
func (h *ShiftPlanHandlerImpl) ApplyAbsenceRange(w http.ResponseWriter, r *http.Request) {
	var req shiftplan.AbsenceRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyAbsenceRange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.planner.ApplyAbsenceRange(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence range applied", nil)
}
