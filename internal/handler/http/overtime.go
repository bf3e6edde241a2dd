package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/Mobiman12/stundenliste-backend-go/internal/handler/http/response"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	GetLedger(w http.ResponseWriter, r *http.Request)
	RecordPayout(w http.ResponseWriter, r *http.Request)
	DeletePayout(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	recalculator overtime.Recalculator
}

func NewOvertimeHandler(recalculator overtime.Recalculator) OvertimeHandler {
	return &OvertimeHandlerImpl{recalculator: recalculator}
}

// GetLedger implements OvertimeHandler.
func (h *OvertimeHandlerImpl) GetLedger(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if !auth.IsAdmin(r.Context()) {
		if err := assertOwnSheet(r, employeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	ledger, err := h.recalculator.Summary(r.Context(), employeeID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ledger)
}

type recordOvertimePayoutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Hours      float64 `json:"hours"`
	Note       string  `json:"note"`
}

// RecordPayout implements OvertimeHandler.
func (h *OvertimeHandlerImpl) RecordPayout(w http.ResponseWriter, r *http.Request) {
	var req recordOvertimePayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordPayout decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.HandleError(w, timesheet.ErrInvalidDate)
		return
	}

	ledger, err := h.recalculator.RecordPayout(r.Context(), req.EmployeeID, companyID, date, req.Hours, req.Note)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime payout recorded", ledger)
}

// DeletePayout implements OvertimeHandler.
func (h *OvertimeHandlerImpl) DeletePayout(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	payoutID := chi.URLParam(r, "payoutID")

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	ledger, err := h.recalculator.DeletePayout(r.Context(), employeeID, payoutID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ledger)
}
