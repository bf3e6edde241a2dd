package closing

import "time"

// Status of a monthly closing. open -> closed -> open; reopening is always
// permitted, there is no terminal state.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// MonthlyClosing locks one employee-month against daily-entry mutation.
type MonthlyClosing struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Year       int
	Month      time.Month
	Status     Status
	ClosedAt   *time.Time
	ClosedBy   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
