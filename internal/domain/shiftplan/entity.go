package shiftplan

import "time"

// PlanDay is one employee-day of the shift plan: zero or more ordered
// segments, each either a working span or an "unavailable" label such as
// "Urlaub" or "kein Arbeitstag".
type PlanDay struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Segments   []Segment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Segment is one span of a plan day.
type Segment struct {
	Position     int
	Available    bool
	Start        string // HH:MM, only when available
	End          string
	PauseMinutes int
	Branch       *string
	Label        *string // only when unavailable
}

// TemplateRow is one weekday of the legacy weekly template, consulted only
// when an employee has no plan days at all in the queried window. Week 2
// rows apply to employees on a two-week rotation.
type TemplateRow struct {
	ID           string
	EmployeeID   string
	Weekday      int // 1=Monday ... 7=Sunday
	Week         int // 1 or 2
	Start        string
	End          string
	PauseMinutes int
}

// Source says where a window's planned hours came from. It is decided once
// per employee per query window, never per day.
type Source string

const (
	SourcePerDay   Source = "per_day"
	SourceTemplate Source = "weekly_template"
	SourceNone     Source = "none"
)

// DayPlan is the resolved plan for a single date.
type DayPlan struct {
	Date         time.Time
	Start        string
	End          string
	PauseMinutes int
	SollHours    float64
	AbsenceLabel string // set when the plan marks the day unavailable
}

// Window is the resolved plan for a date range.
type Window struct {
	Source Source
	Days   map[string]DayPlan // keyed by YYYY-MM-DD
}

// Day returns the resolved plan for a date; the zero DayPlan (SOLL 0)
// stands for a non-working day.
func (w Window) Day(date time.Time) DayPlan {
	return w.Days[date.Format("2006-01-02")]
}
