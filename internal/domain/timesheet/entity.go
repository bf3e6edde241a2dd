package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyEntry is one employee-day of the time sheet: the raw clock times as
// entered plus every derived field the processor writes back.
type DailyEntry struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time

	GrossRevenue decimal.Decimal
	Start1       string
	End1         string
	Start2       string
	End2         string
	Pause        string // free text, e.g. "30min." or "Keine"
	Code         AbsenceCode
	Meal         MealFlag
	Remark       string

	// Derived by the processor.
	NetHours             float64
	PlannedHours         float64
	SickHours            float64
	ChildSickHours       float64
	ShortWorkHours       float64
	VacationHours        float64
	HolidayHours         float64
	OvertimeDelta        float64
	ForcedOverflow       float64 // hours paid out externally on this day
	RequiredPauseMinutes int

	LastAdminChange *AdminChange

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for display.
	EmployeeName *string
}

// AdminChange is the audit stamp written when an administrator edits an
// entry on behalf of an employee.
type AdminChange struct {
	At      time.Time
	By      string
	Type    string // "create", "update" or "delete"
	Summary string // human-readable per-field diff
}

// AbsenceCode classifies a non-regular day. The values mirror the short
// tokens employees see on their time sheet.
type AbsenceCode string

const (
	CodeRegular           AbsenceCode = "RA"  // regular attendance
	CodeVacation          AbsenceCode = "U"   // full vacation day
	CodeVacationHalf      AbsenceCode = "UH"  // half vacation day
	CodeSick              AbsenceCode = "K"   // sick, full day
	CodeChildSick         AbsenceCode = "KK"  // child sick, full day
	CodeShortWork         AbsenceCode = "KU"  // short-time work
	CodeSickResidual      AbsenceCode = "KR"  // sick for the rest of the day
	CodeChildSickResidual AbsenceCode = "KKR" // child sick for the rest of the day
	CodeHoliday           AbsenceCode = "FT"  // public holiday
	CodeUnpaid            AbsenceCode = "UBF" // unpaid leave, no accrual
	CodeOvertimeReduction AbsenceCode = "UE"  // overtime reduction ("Ü")
)

var absenceCodeValues = map[AbsenceCode]bool{
	CodeRegular:           true,
	CodeVacation:          true,
	CodeVacationHalf:      true,
	CodeSick:              true,
	CodeChildSick:         true,
	CodeShortWork:         true,
	CodeSickResidual:      true,
	CodeChildSickResidual: true,
	CodeHoliday:           true,
	CodeUnpaid:            true,
	CodeOvertimeReduction: true,
}

// IsValid reports whether c is a known absence code.
func (c AbsenceCode) IsValid() bool {
	return absenceCodeValues[c]
}

// mealBlocked lists the codes on which a meal can never be claimed.
var mealBlocked = map[AbsenceCode]bool{
	CodeVacation:          true,
	CodeVacationHalf:      true,
	CodeUnpaid:            true,
	CodeSick:              true,
	CodeChildSick:         true,
	CodeSickResidual:      true,
	CodeChildSickResidual: true,
	CodeShortWork:         true,
	CodeHoliday:           true,
}

// BlocksMeal reports whether the code forces the meal flag to "nein".
func (c AbsenceCode) BlocksMeal() bool {
	return mealBlocked[c]
}

type MealFlag string

const (
	MealYes  MealFlag = "ja"
	MealNo   MealFlag = "nein"
	MealNone MealFlag = ""
)
