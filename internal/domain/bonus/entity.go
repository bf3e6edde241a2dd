package bonus

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchemeKind selects between a single percentage and progressive tiers.
type SchemeKind string

const (
	SchemeLinear  SchemeKind = "linear"
	SchemeStepped SchemeKind = "stepped"
)

// Scheme is one employee's bonus configuration.
type Scheme struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Kind       SchemeKind
	Percent    decimal.Decimal // linear only
	Tiers      []Tier          // stepped only, thresholds strictly increasing
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Tier is one band of a stepped scheme. Threshold is the upper bound of the
// band; the last tier's percent extends beyond its threshold.
type Tier struct {
	Threshold decimal.Decimal
	Percent   decimal.Decimal
}

// Payout is a bonus amount paid out in a given month.
type Payout struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Year       int
	Month      time.Month
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// MonthResult is the bonus calculation for one employee-month.
type MonthResult struct {
	Year             int             `json:"year"`
	Month            time.Month      `json:"month"`
	GrossRevenue     decimal.Decimal `json:"gross_revenue"`
	NetRevenue       decimal.Decimal `json:"net_revenue"`
	MonthlyTarget    decimal.Decimal `json:"monthly_target"`
	OverTarget       decimal.Decimal `json:"over_target"`
	Bonus            decimal.Decimal `json:"bonus"`
	CarryIn          decimal.Decimal `json:"carry_in"`
	PaidOut          decimal.Decimal `json:"paid_out"`
	AvailablePayout  decimal.Decimal `json:"available_payout"`
	CarryToNextMonth decimal.Decimal `json:"carry_to_next_month"`
}
