package timesheet

import (
	"fmt"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/worktime"
)

// hoursEpsilon is the comparison tolerance for hour values, which are
// stored rounded to two decimals.
const hoursEpsilon = 0.01

// Normalize applies the absence-code state machine to one raw entry: it
// computes net and planned hours, resolves the effective code, zeroes
// fields per code and fills the category-hour buckets. Pure; persistence
// and audit stamping happen in the service.
func Normalize(req timesheet.SaveEntryRequest, plan shiftplan.DayPlan) (timesheet.DailyEntry, []string, error) {
	code := timesheet.AbsenceCode(req.Code)
	if req.Code == "" {
		code = timesheet.CodeRegular
	}

	calc := worktime.NetHours(req.Start1, req.End1, req.Start2, req.End2, req.Pause)
	planned := plan.SollHours

	entry := timesheet.DailyEntry{
		EmployeeID:   req.EmployeeID,
		GrossRevenue: req.GrossRevenue,
		Start1:       req.Start1,
		End1:         req.End1,
		Start2:       req.Start2,
		End2:         req.End2,
		Pause:        req.Pause,
		Meal:         timesheet.MealFlag(req.Meal),
		Remark:       req.Remark,
		NetHours:     calc.NetHours,
		PlannedHours: planned,
	}

	// Resolve the effective code in one explicit step before the main
	// switch: a residual sick day whose times cover the whole plan is
	// really a full sick day.
	code = reclassify(code, req, plan, planned)
	entry.Code = code

	var warnings []string
	if calc.DeclaredPause < calc.LegalBreak && calc.RawHours > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"declared pause below the statutory minimum, %.0f minutes applied", calc.EffectivePause*60))
	}

	switch code {
	case timesheet.CodeRegular:
		if entry.NetHours > 0 && entry.Meal == timesheet.MealNone {
			return timesheet.DailyEntry{}, nil, timesheet.ErrMissingMealFlag
		}

	case timesheet.CodeVacation:
		zeroTimes(&entry)
		entry.VacationHours = planned

	case timesheet.CodeVacationHalf:
		half := worktime.Round2(planned / 2)
		if entry.NetHours > half+hoursEpsilon {
			return timesheet.DailyEntry{}, nil, timesheet.ErrHalfVacationExceeded
		}
		// Times stay: a half vacation day is a partial working day.
		entry.VacationHours = half

	case timesheet.CodeSick:
		zeroTimes(&entry)
		entry.SickHours = planned

	case timesheet.CodeChildSick:
		zeroTimes(&entry)
		entry.ChildSickHours = planned

	case timesheet.CodeShortWork:
		zeroTimes(&entry)
		entry.ShortWorkHours = planned
		// Short-time work accrues no SOLL in the ledger.
		entry.PlannedHours = 0

	case timesheet.CodeSickResidual:
		entry.SickHours = residualHours(planned, entry.NetHours)

	case timesheet.CodeChildSickResidual:
		entry.ChildSickHours = residualHours(planned, entry.NetHours)

	case timesheet.CodeHoliday:
		// A holiday keeps recorded work; only an unworked holiday is
		// credited. The 0.01h cutoff is deliberate.
		if entry.NetHours <= hoursEpsilon {
			zeroTimes(&entry)
			entry.HolidayHours = planned
		}

	case timesheet.CodeUnpaid:
		zeroTimes(&entry)
		entry.PlannedHours = 0

	case timesheet.CodeOvertimeReduction:
		// A reduction covering exactly the planned span with no pause is a
		// pure reduction day; a partial reduction stands as entered.
		if timesMatchPlan(req, plan) && worktime.ParsePauseMinutes(req.Pause) == 0 {
			zeroTimes(&entry)
		}
	}

	if code.BlocksMeal() {
		entry.Meal = timesheet.MealNo
	}

	if code != timesheet.CodeRegular && entry.NetHours > 0 &&
		entry.NetHours+categoryHours(entry) < planned-hoursEpsilon {
		warnings = append(warnings, "recorded hours stay below the planned hours for this day")
	}

	entry.RequiredPauseMinutes = shortDayPauseMinutes(calc)
	entry.ForcedOverflow = req.ForcedOverflow
	entry.OvertimeDelta = worktime.Round2(
		entry.NetHours + creditedHours(entry) - entry.PlannedHours - entry.ForcedOverflow)

	return entry, warnings, nil
}

// creditedHours counts the category hours that stand in for worked time in
// the ledger. Short-work hours do not: their SOLL is zeroed instead.
func creditedHours(entry timesheet.DailyEntry) float64 {
	return entry.SickHours + entry.ChildSickHours + entry.VacationHours + entry.HolidayHours
}

// reclassify collapses KR/KKR into K/KK when the recorded span covers the
// complete plan: times equal the plan's start and end, no second segment,
// and the residual amounts to the full planned hours within 0.01h.
func reclassify(code timesheet.AbsenceCode, req timesheet.SaveEntryRequest, plan shiftplan.DayPlan, planned float64) timesheet.AbsenceCode {
	if code != timesheet.CodeSickResidual && code != timesheet.CodeChildSickResidual {
		return code
	}
	if !timesMatchPlan(req, plan) || planned <= 0 {
		return code
	}
	// With the whole plan span reported absent the residual is the full
	// planned day, so the simpler full-day code applies.
	if code == timesheet.CodeSickResidual {
		return timesheet.CodeSick
	}
	return timesheet.CodeChildSick
}

func timesMatchPlan(req timesheet.SaveEntryRequest, plan shiftplan.DayPlan) bool {
	return plan.Start != "" &&
		req.Start1 == plan.Start && req.End1 == plan.End &&
		req.Start2 == "" && req.End2 == ""
}

func residualHours(planned, net float64) float64 {
	residual := planned - net
	if residual < 0 {
		return 0
	}
	return worktime.Round2(residual)
}

func zeroTimes(entry *timesheet.DailyEntry) {
	entry.Start1 = ""
	entry.End1 = ""
	entry.Start2 = ""
	entry.End2 = ""
	entry.Pause = ""
	entry.Meal = timesheet.MealNo
	entry.NetHours = 0
}

func categoryHours(entry timesheet.DailyEntry) float64 {
	return entry.SickHours + entry.ChildSickHours + entry.ShortWorkHours +
		entry.VacationHours + entry.HolidayHours
}

// shortDayPauseMinutes records a voluntarily declared pause on a day short
// enough that no statutory break applies.
func shortDayPauseMinutes(calc worktime.Result) int {
	if calc.RawHours > 0 && calc.RawHours <= 6 {
		return int(calc.DeclaredPause * 60)
	}
	return 0
}
