package response

import (
	"errors"
	"net/http"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/bonus"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/closing"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/validator"
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
	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Daily entry not found")
	case errors.Is(err, timesheet.ErrInvalidDate):
		BadRequest(w, "Invalid date", nil)
	case errors.Is(err, timesheet.ErrInvalidAbsenceCode):
		BadRequest(w, "Unknown absence code", nil)
	case errors.Is(err, timesheet.ErrHalfVacationExceeded):
		BadRequest(w, "Worked hours exceed half the planned day", nil)
	case errors.Is(err, timesheet.ErrMissingMealFlag):
		BadRequest(w, "Meal flag is required on worked days", nil)
	case errors.Is(err, timesheet.ErrMonthClosed):
		Conflict(w, "Month is closed")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "Not allowed for this employee")

	// Closing domain errors
	case errors.Is(err, closing.ErrAlreadyClosed):
		Conflict(w, "Month is already closed")
	case errors.Is(err, closing.ErrAlreadyOpen):
		Conflict(w, "Month is already open")
	case errors.Is(err, closing.ErrInvalidMonth):
		BadRequest(w, "Invalid month", nil)

	// Shift plan domain errors
	case errors.Is(err, shiftplan.ErrPlanDayNotFound):
		NotFound(w, "Shift plan day not found")
	case errors.Is(err, shiftplan.ErrInvalidSegment):
		BadRequest(w, "Plan segment needs start and end or an absence label", nil)

	// Overtime domain errors
	case errors.Is(err, overtime.ErrPayoutNotFound):
		NotFound(w, "Overtime payout not found")
	case errors.Is(err, overtime.ErrInvalidPayout):
		BadRequest(w, "Payout hours must be greater than zero", nil)

	// Bonus domain errors
	case errors.Is(err, bonus.ErrSchemeNotFound):
		NotFound(w, "Bonus scheme not found")
	case errors.Is(err, bonus.ErrTiersNotIncreasing),
		errors.Is(err, bonus.ErrInvalidTierThreshold),
		errors.Is(err, bonus.ErrInvalidSchemeKind):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
