package overtime

import "time"

// DayRecord is one day of replay input: either a persisted daily entry or a
// synthetic row derived from a plan-day absence label.
type DayRecord struct {
	Date           time.Time
	NetHours       float64
	PlannedHours   float64 // ledger-planned hours, already zeroed for KU/UBF
	CreditedHours  float64 // sick/child-sick/vacation/holiday hours counting toward SOLL
	ForcedOverflow float64 // hours paid out externally on this day
	Synthetic      bool
}

// Settings controls clamping and the imported starting balance.
type Settings struct {
	ImportedBalance  float64 // balance carried in from the previous system
	MaxOvertimeHours float64
	MaxMinusHours    float64
}

// LedgerDay is the replay output for one day.
type LedgerDay struct {
	Date    time.Time
	Delta   float64
	Balance float64 // clamped running balance after this day
}

// MonthCarry is the clamped balance at a month boundary.
type MonthCarry struct {
	Year    int
	Month   time.Month
	Balance float64
}

// LedgerResult is the outcome of one full-history replay.
type LedgerResult struct {
	Days    []LedgerDay
	Carries []MonthCarry
	Balance float64 // final clamped balance, persisted on the employee row
}

// Payout is an externally paid-out amount of overtime that reduces the
// balance from its date onward.
type Payout struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Hours      float64
	Note       string
	CreatedAt  time.Time
}
