package timesheet

import (
	"testing"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardPlan() shiftplan.DayPlan {
	return shiftplan.DayPlan{
		Start:        "08:00",
		End:          "16:30",
		PauseMinutes: 30,
		SollHours:    8,
	}
}

func TestNormalizeRegularDay(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID: "emp-1",
		Start1:     "08:00",
		End1:       "16:30",
		Pause:      "30min.",
		Meal:       "ja",
	}

	entry, warnings, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	assert.Equal(t, timesheet.CodeRegular, entry.Code)
	assert.InDelta(t, 8.0, entry.NetHours, 0.001)
	assert.InDelta(t, 8.0, entry.PlannedHours, 0.001)
	assert.InDelta(t, 0.0, entry.OvertimeDelta, 0.001)
	assert.Equal(t, timesheet.MealYes, entry.Meal)
	assert.Empty(t, warnings)
}

func TestNormalizeRegularDayRequiresMealFlag(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID: "emp-1",
		Start1:     "08:00",
		End1:       "16:30",
		Pause:      "30min.",
	}

	_, _, err := Normalize(req, standardPlan())
	assert.ErrorIs(t, err, timesheet.ErrMissingMealFlag)
}

func TestNormalizeEmptyCodeDefaultsToRegular(t *testing.T) {
	req := timesheet.SaveEntryRequest{EmployeeID: "emp-1"}

	entry, _, err := Normalize(req, standardPlan())
	require.NoError(t, err)
	assert.Equal(t, timesheet.CodeRegular, entry.Code)
}

func TestNormalizeVacationZeroesTimes(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID: "emp-1",
		Start1:     "08:00",
		End1:       "16:30",
		Code:       "U",
	}

	entry, _, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	assert.Empty(t, entry.Start1)
	assert.Empty(t, entry.End1)
	assert.InDelta(t, 0.0, entry.NetHours, 0.001)
	assert.InDelta(t, 8.0, entry.VacationHours, 0.001)
	assert.Equal(t, timesheet.MealNo, entry.Meal)
	// Credited vacation hours balance the planned hours.
	assert.InDelta(t, 0.0, entry.OvertimeDelta, 0.001)
}

func TestNormalizeHalfVacation(t *testing.T) {
	t.Run("within half the plan", func(t *testing.T) {
		req := timesheet.SaveEntryRequest{
			EmployeeID: "emp-1",
			Start1:     "08:00",
			End1:       "12:00",
			Pause:      "Keine",
			Code:       "UH",
		}

		entry, _, err := Normalize(req, standardPlan())
		require.NoError(t, err)

		assert.Equal(t, "08:00", entry.Start1, "times stay on a half vacation day")
		assert.InDelta(t, 4.0, entry.NetHours, 0.001)
		assert.InDelta(t, 4.0, entry.VacationHours, 0.001)
		assert.InDelta(t, 0.0, entry.OvertimeDelta, 0.001)
	})

	t.Run("working more than half is rejected", func(t *testing.T) {
		req := timesheet.SaveEntryRequest{
			EmployeeID: "emp-1",
			Start1:     "08:00",
			End1:       "12:30",
			Pause:      "Keine",
			Code:       "UH",
		}

		_, _, err := Normalize(req, standardPlan())
		assert.ErrorIs(t, err, timesheet.ErrHalfVacationExceeded)
	})
}

func TestNormalizeSickResidual(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID: "emp-1",
		Start1:     "08:00",
		End1:       "12:00",
		Pause:      "Keine",
		Code:       "KR",
		Meal:       "ja",
	}

	entry, _, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	assert.Equal(t, timesheet.CodeSickResidual, entry.Code)
	assert.InDelta(t, 4.0, entry.NetHours, 0.001)
	assert.InDelta(t, 4.0, entry.SickHours, 0.001, "residual fills up to the plan")
	assert.InDelta(t, 0.0, entry.OvertimeDelta, 0.001)
	assert.Equal(t, timesheet.MealNo, entry.Meal, "sick codes block the meal flag")
}

func TestNormalizeSickResidualCoveringPlanBecomesFullSickDay(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID: "emp-1",
		Start1:     "08:00",
		End1:       "16:30",
		Code:       "KR",
	}

	entry, _, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	assert.Equal(t, timesheet.CodeSick, entry.Code)
	assert.Empty(t, entry.Start1)
	assert.InDelta(t, 0.0, entry.NetHours, 0.001)
	assert.InDelta(t, 8.0, entry.SickHours, 0.001)
}

func TestNormalizeChildSickResidualCoveringPlanBecomesFullDay(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID: "emp-1",
		Start1:     "08:00",
		End1:       "16:30",
		Code:       "KKR",
	}

	entry, _, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	assert.Equal(t, timesheet.CodeChildSick, entry.Code)
	assert.InDelta(t, 8.0, entry.ChildSickHours, 0.001)
}

func TestNormalizeHoliday(t *testing.T) {
	t.Run("unworked holiday is credited", func(t *testing.T) {
		req := timesheet.SaveEntryRequest{EmployeeID: "emp-1", Code: "FT"}

		entry, _, err := Normalize(req, standardPlan())
		require.NoError(t, err)

		assert.InDelta(t, 8.0, entry.HolidayHours, 0.001)
		assert.InDelta(t, 0.0, entry.OvertimeDelta, 0.001)
	})

	t.Run("one minute of work crosses the cutoff and voids the credit", func(t *testing.T) {
		req := timesheet.SaveEntryRequest{
			EmployeeID: "emp-1",
			Start1:     "08:00",
			End1:       "08:01",
			Code:       "FT",
			Meal:       "nein",
		}

		entry, _, err := Normalize(req, standardPlan())
		require.NoError(t, err)

		// 1 minute rounds to 0.02h, just above the 0.01h threshold.
		assert.InDelta(t, 0.02, entry.NetHours, 0.001)
		assert.Equal(t, "08:00", entry.Start1)
		assert.InDelta(t, 0.0, entry.HolidayHours, 0.001)
		assert.InDelta(t, -7.98, entry.OvertimeDelta, 0.001)
	})

	t.Run("worked holiday keeps the recorded hours", func(t *testing.T) {
		req := timesheet.SaveEntryRequest{
			EmployeeID: "emp-1",
			Start1:     "08:00",
			End1:       "16:30",
			Pause:      "30min.",
			Code:       "FT",
		}

		entry, _, err := Normalize(req, standardPlan())
		require.NoError(t, err)

		assert.Equal(t, "08:00", entry.Start1)
		assert.InDelta(t, 8.0, entry.NetHours, 0.001)
		assert.InDelta(t, 0.0, entry.HolidayHours, 0.001)
	})
}

func TestNormalizeShortWork(t *testing.T) {
	req := timesheet.SaveEntryRequest{EmployeeID: "emp-1", Code: "KU"}

	entry, _, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	assert.InDelta(t, 8.0, entry.ShortWorkHours, 0.001)
	assert.InDelta(t, 0.0, entry.PlannedHours, 0.001, "short work accrues no planned hours")
	assert.InDelta(t, 0.0, entry.OvertimeDelta, 0.001)
}

func TestNormalizeUnpaidLeave(t *testing.T) {
	req := timesheet.SaveEntryRequest{EmployeeID: "emp-1", Code: "UBF"}

	entry, _, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	assert.InDelta(t, 0.0, entry.PlannedHours, 0.001)
	assert.InDelta(t, 0.0, entry.OvertimeDelta, 0.001)
}

func TestNormalizeOvertimeReduction(t *testing.T) {
	t.Run("full reduction day debits the plan", func(t *testing.T) {
		req := timesheet.SaveEntryRequest{
			EmployeeID: "emp-1",
			Start1:     "08:00",
			End1:       "16:30",
			Pause:      "Keine",
			Code:       "UE",
		}

		entry, _, err := Normalize(req, standardPlan())
		require.NoError(t, err)

		assert.Empty(t, entry.Start1)
		assert.InDelta(t, 0.0, entry.NetHours, 0.001)
		assert.InDelta(t, 8.0, entry.PlannedHours, 0.001)
		assert.InDelta(t, -8.0, entry.OvertimeDelta, 0.001)
	})

	t.Run("partial reduction stands as entered", func(t *testing.T) {
		req := timesheet.SaveEntryRequest{
			EmployeeID: "emp-1",
			Start1:     "08:00",
			End1:       "12:00",
			Pause:      "Keine",
			Code:       "UE",
		}

		entry, _, err := Normalize(req, standardPlan())
		require.NoError(t, err)

		assert.Equal(t, "08:00", entry.Start1)
		assert.InDelta(t, 4.0, entry.NetHours, 0.001)
		assert.InDelta(t, -4.0, entry.OvertimeDelta, 0.001)
	})
}

func TestNormalizeForcedOverflowReducesDelta(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID:     "emp-1",
		Start1:         "08:00",
		End1:           "17:45",
		Pause:          "45min.",
		Meal:           "ja",
		ForcedOverflow: 1,
	}

	entry, _, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	assert.InDelta(t, 9.0, entry.NetHours, 0.001)
	assert.InDelta(t, 1.0, entry.ForcedOverflow, 0.001)
	assert.InDelta(t, 0.0, entry.OvertimeDelta, 0.001)
}

func TestNormalizeWarnsOnPauseBelowStatutoryMinimum(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID: "emp-1",
		Start1:     "08:00",
		End1:       "16:30",
		Pause:      "15min.",
		Meal:       "ja",
	}

	entry, warnings, err := Normalize(req, standardPlan())
	require.NoError(t, err)

	// The statutory 30 minutes apply regardless of the declared 15.
	assert.InDelta(t, 8.0, entry.NetHours, 0.001)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "statutory minimum")
}

func TestNormalizeShortDayKeepsDeclaredPause(t *testing.T) {
	req := timesheet.SaveEntryRequest{
		EmployeeID: "emp-1",
		Start1:     "08:00",
		End1:       "13:00",
		Pause:      "15min.",
		Meal:       "ja",
	}

	entry, _, err := Normalize(req, shiftplan.DayPlan{SollHours: 4.75})
	require.NoError(t, err)

	assert.InDelta(t, 4.75, entry.NetHours, 0.001)
	assert.Equal(t, 15, entry.RequiredPauseMinutes)
}
