package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrEntryNotFound        = errors.New("daily entry not found")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidAbsenceCode   = errors.New("unknown absence code")
	ErrHalfVacationExceeded = errors.New("worked hours exceed the half-day vacation cap")
	ErrMonthClosed          = errors.New("month is closed for this employee, reopen it before editing")
	ErrMissingMealFlag      = errors.New("meal confirmation is required for a worked day")
)
