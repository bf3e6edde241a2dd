package timesheet

import (
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// TIMESHEET DTOs
// ========================================

// Actor identifies who is performing a save, so the processor can decide
// whether to write or clear the admin audit stamp.
type Actor struct {
	Name    string
	IsAdmin bool
}

type SaveEntryRequest struct {
	EmployeeID   string          `json:"employee_id"`
	Date         string          `json:"date"` // YYYY-MM-DD
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	Start1       string          `json:"start1"`
	End1         string          `json:"end1"`
	Start2       string          `json:"start2"`
	End2         string          `json:"end2"`
	Pause        string          `json:"pause"`
	Code         string          `json:"code"`
	Meal         string          `json:"meal"`
	Remark       string          `json:"remark"`

	// ForcedOverflow records hours paid out externally on this day; only
	// administrators set it.
	ForcedOverflow float64 `json:"forced_overflow"`

	Actor Actor `json:"-"`
}

func (r *SaveEntryRequest) Validate() error {
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

	if r.Code != "" && !AbsenceCode(r.Code).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "unknown absence code",
		})
	}

	for _, tf := range []struct {
		field, value string
	}{
		{"start1", r.Start1},
		{"end1", r.End1},
		{"start2", r.Start2},
		{"end2", r.End2},
	} {
		if tf.value != "" && !validator.IsValidClockTime(tf.value) {
			errs = append(errs, validator.ValidationError{
				Field:   tf.field,
				Message: "time must be in HH:MM format",
			})
		}
	}

	// A started segment needs its counterpart; a lone half is a typo, not a
	// zero-length segment.
	if (r.Start1 == "") != (r.End1 == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "end1",
			Message: "start and end of the first segment must both be set",
		})
	}
	if (r.Start2 == "") != (r.End2 == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "end2",
			Message: "start and end of the second segment must both be set",
		})
	}

	if r.GrossRevenue.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "gross_revenue",
			Message: "gross revenue must not be negative",
		})
	}

	if r.ForcedOverflow < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "forced_overflow",
			Message: "forced overflow must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name,omitempty"`
	Date                 string          `json:"date"`
	GrossRevenue         decimal.Decimal `json:"gross_revenue"`
	Start1               string          `json:"start1"`
	End1                 string          `json:"end1"`
	Start2               string          `json:"start2"`
	End2                 string          `json:"end2"`
	Pause                string          `json:"pause"`
	Code                 string          `json:"code"`
	Meal                 string          `json:"meal"`
	Remark               string          `json:"remark,omitempty"`
	NetHours             float64         `json:"net_hours"`
	PlannedHours         float64         `json:"planned_hours"`
	SickHours            float64         `json:"sick_hours"`
	ChildSickHours       float64         `json:"child_sick_hours"`
	ShortWorkHours       float64         `json:"short_work_hours"`
	VacationHours        float64         `json:"vacation_hours"`
	HolidayHours         float64         `json:"holiday_hours"`
	OvertimeDelta        float64         `json:"overtime_delta"`
	ForcedOverflow       float64         `json:"forced_overflow"`
	RequiredPauseMinutes int             `json:"required_pause_minutes"`
	LastAdminChange      *AdminChange    `json:"last_admin_change,omitempty"`
}

// SaveEntryResponse carries the saved entry plus any non-fatal warnings the
// caller should display.
type SaveEntryResponse struct {
	Entry           EntryResponse `json:"entry"`
	OvertimeBalance float64       `json:"overtime_balance"`
	Warnings        []string      `json:"warnings,omitempty"`
}

type ListEntriesFilter struct {
	EmployeeID string
	Year       int
	Month      int
}

type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Totals  MonthTotals     `json:"totals"`
}

// MonthTotals aggregates one employee-month for dashboards and reports.
type MonthTotals struct {
	NetHours       float64         `json:"net_hours"`
	PlannedHours   float64         `json:"planned_hours"`
	OvertimeDelta  float64         `json:"overtime_delta"`
	SickHours      float64         `json:"sick_hours"`
	ChildSickHours float64         `json:"child_sick_hours"`
	ShortWorkHours float64         `json:"short_work_hours"`
	VacationHours  float64         `json:"vacation_hours"`
	HolidayHours   float64         `json:"holiday_hours"`
	GrossRevenue   decimal.Decimal `json:"gross_revenue"`
	MealCount      int             `json:"meal_count"`
}
