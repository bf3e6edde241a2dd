package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/Mobiman12/stundenliste-backend-go/internal/handler/http/response"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	SaveEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.Service
}

func NewTimesheetHandler(timesheetService timesheet.Service) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

// SaveEntry implements TimesheetHandler.
func (h *TimesheetHandlerImpl) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor, err := requestActor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	req.Actor = actor

	if !actor.IsAdmin {
		if err := assertOwnSheet(r, req.EmployeeID); err != nil {
			response.HandleError(w, err)
			return
		}
		// Only administrators may book externally paid-out hours.
		req.ForcedOverflow = 0
	}

	result, err := h.timesheetService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteEntry implements TimesheetHandler.
func (h *TimesheetHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	actor, err := requestActor(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if !actor.IsAdmin {
		if err := assertOwnSheet(r, employeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	if err := h.timesheetService.Delete(r.Context(), employeeID, date, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry deleted", nil)
}

// ListMonth implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year is required", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "month must be between 1 and 12", nil)
		return
	}

	if !auth.IsAdmin(r.Context()) {
		if err := assertOwnSheet(r, employeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.timesheetService.ListMonth(r.Context(), timesheet.ListEntriesFilter{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// requestActor builds the acting identity from the verified token.
func requestActor(r *http.Request) (timesheet.Actor, error) {
	name, err := auth.ActorName(r.Context())
	if err != nil {
		return timesheet.Actor{}, err
	}
	return timesheet.Actor{
		Name:    name,
		IsAdmin: auth.IsAdmin(r.Context()),
	}, nil
}

// assertOwnSheet rejects access to another employee's sheet.
func assertOwnSheet(r *http.Request, employeeID string) error {
	own, err := auth.EmployeeID(r.Context())
	if err != nil {
		return err
	}
	if own != employeeID {
		return employee.ErrUnauthorized
	}
	return nil
}
