package shiftplan

import (
	"context"
	"strconv"

	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/validator"
)

type SegmentRequest struct {
	Available    bool    `json:"available"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	PauseMinutes int     `json:"pause_minutes"`
	Branch       *string `json:"branch,omitempty"`
	Label        *string `json:"label,omitempty"`
}

type SaveDayRequest struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"` // YYYY-MM-DD
	Segments   []SegmentRequest `json:"segments"`
}

func (r *SaveDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	for i, seg := range r.Segments {
		field := "segments[" + strconv.Itoa(i) + "]"
		if seg.Available {
			if !validator.IsValidClockTime(seg.Start) || !validator.IsValidClockTime(seg.End) {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "an available segment needs start and end in HH:MM format",
				})
			}
			if seg.PauseMinutes < 0 {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "pause minutes must not be negative",
				})
			}
		} else {
			if seg.Label == nil || validator.IsEmpty(*seg.Label) {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "an unavailable segment needs a label",
				})
			}
			if (seg.Start != "" || seg.End != "") &&
				(!validator.IsValidClockTime(seg.Start) || !validator.IsValidClockTime(seg.End)) {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "an unavailable segment keeps no times or a full start and end in HH:MM format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AbsenceRangeRequest marks every day in [From, To] with an absence label
// in the plan, e.g. a two-week vacation entered in one step.
type AbsenceRangeRequest struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"` // YYYY-MM-DD
	To         string `json:"to"`
	Label      string `json:"label"`
}

func (r *AbsenceRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Planner is the write side of the shift plan.
type Planner interface {
	// SaveDay replaces the segments of one employee-day and recomputes the
	// overtime ledger.
	SaveDay(ctx context.Context, req SaveDayRequest) (PlanDay, error)

	// DeleteDay removes one employee-day from the plan.
	DeleteDay(ctx context.Context, employeeID, date string) error

	// GetWindow resolves planned hours for a date range.
	GetWindow(ctx context.Context, employeeID, from, to string) (Window, error)

	// ApplyAbsenceRange labels every day in the range; all months touched
	// must be open, and either every day is written or none.
	ApplyAbsenceRange(ctx context.Context, req AbsenceRangeRequest) error
}
