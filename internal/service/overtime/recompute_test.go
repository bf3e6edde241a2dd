package overtime

import (
	"testing"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestRecompute_SignedDailyDeltas(t *testing.T) {
	t.Parallel()

	records := []overtime.DayRecord{
		{Date: day("2024-03-01"), NetHours: 9, PlannedHours: 8},    // +1
		{Date: day("2024-03-02"), NetHours: 7.5, PlannedHours: 8},  // -0.5
		{Date: day("2024-03-03"), CreditedHours: 8, PlannedHours: 8}, // vacation day, reconciles to 0
	}

	result := Recompute(records, nil, overtime.Settings{})

	require.Len(t, result.Days, 3)
	assert.Equal(t, 1.0, result.Days[0].Delta)
	assert.Equal(t, -0.5, result.Days[1].Delta)
	assert.Equal(t, 0.0, result.Days[2].Delta)
	assert.Equal(t, 0.5, result.Balance)
}

func TestRecompute_Idempotent(t *testing.T) {
	t.Parallel()

	records := []overtime.DayRecord{
		{Date: day("2024-01-05"), NetHours: 8.5, PlannedHours: 8},
		{Date: day("2024-02-05"), NetHours: 6, PlannedHours: 8},
		{Date: day("2024-02-06"), NetHours: 10, PlannedHours: 8},
	}
	settings := overtime.Settings{ImportedBalance: 2}

	first := Recompute(records, nil, settings)
	second := Recompute(records, nil, settings)

	assert.Equal(t, first, second)
}

func TestRecompute_UnsortedInputReplaysInDateOrder(t *testing.T) {
	t.Parallel()

	records := []overtime.DayRecord{
		{Date: day("2024-03-02"), NetHours: 7, PlannedHours: 8},
		{Date: day("2024-03-01"), NetHours: 9, PlannedHours: 8},
	}

	result := Recompute(records, nil, overtime.Settings{})

	require.Len(t, result.Days, 2)
	assert.Equal(t, day("2024-03-01"), result.Days[0].Date)
	assert.Equal(t, 1.0, result.Days[0].Balance)
	assert.Equal(t, 0.0, result.Days[1].Balance)
}

func TestRecompute_ClampsExposedBalanceButKeepsCarry(t *testing.T) {
	t.Parallel()

	settings := overtime.Settings{MaxOvertimeHours: 10, MaxMinusHours: 10}
	records := []overtime.DayRecord{
		{Date: day("2024-03-01"), NetHours: 16, PlannedHours: 8}, // +8
		{Date: day("2024-03-02"), NetHours: 16, PlannedHours: 8}, // +8, unclamped 16
		{Date: day("2024-03-03"), NetHours: 4, PlannedHours: 8},  // -4, unclamped 12
	}

	result := Recompute(records, nil, settings)

	assert.Equal(t, 10.0, result.Days[1].Balance)
	// The internal carry stays at 16, so one short day does not drop the
	// exposed balance below the cap.
	assert.Equal(t, 10.0, result.Days[2].Balance)
	assert.Equal(t, 10.0, result.Balance)
}

func TestRecompute_PayoutsReduceBalance(t *testing.T) {
	t.Parallel()

	records := []overtime.DayRecord{
		{Date: day("2024-03-01"), NetHours: 10, PlannedHours: 8},
		{Date: day("2024-03-04"), NetHours: 8, PlannedHours: 8},
	}
	payouts := []overtime.Payout{
		{Date: day("2024-03-04"), Hours: 1.5},
	}

	result := Recompute(records, payouts, overtime.Settings{})

	assert.Equal(t, 0.5, result.Balance)
}

func TestRecompute_PayoutOnDayWithoutEntryStillDebits(t *testing.T) {
	t.Parallel()

	records := []overtime.DayRecord{
		{Date: day("2024-03-01"), NetHours: 10, PlannedHours: 8}, // +2
	}
	payouts := []overtime.Payout{
		{Date: day("2024-03-02"), Hours: 1.5}, // a Saturday, no entry
	}

	result := Recompute(records, payouts, overtime.Settings{})

	require.Len(t, result.Days, 2)
	assert.Equal(t, day("2024-03-02"), result.Days[1].Date)
	assert.Equal(t, -1.5, result.Days[1].Delta)
	assert.Equal(t, 0.5, result.Balance)
}

func TestRecompute_MonthlyCarries(t *testing.T) {
	t.Parallel()

	records := []overtime.DayRecord{
		{Date: day("2024-01-31"), NetHours: 9, PlannedHours: 8},
		{Date: day("2024-02-01"), NetHours: 9, PlannedHours: 8},
	}

	result := Recompute(records, nil, overtime.Settings{ImportedBalance: 1})

	require.Len(t, result.Carries, 2)
	assert.Equal(t, time.January, result.Carries[0].Month)
	assert.Equal(t, 2.0, result.Carries[0].Balance)
	assert.Equal(t, time.February, result.Carries[1].Month)
	assert.Equal(t, 3.0, result.Carries[1].Balance)
}

func TestTranslateLabel(t *testing.T) {
	cases := []struct {
		label string
		want  timesheet.AbsenceCode
		ok    bool
	}{
		{"Urlaub", timesheet.CodeVacation, true},
		{"vacation day", timesheet.CodeVacation, true},
		{"Feiertag", timesheet.CodeHoliday, true},
		{"krank", timesheet.CodeSick, true},
		{"Kurzarbeit", timesheet.CodeShortWork, true},
		{"Überstundenabbau", timesheet.CodeOvertimeReduction, true},
		{"kein Arbeitstag", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := TranslateLabel(c.label)
		if got != c.want || ok != c.ok {
			t.Errorf("TranslateLabel(%q) = (%q, %v), want (%q, %v)", c.label, got, ok, c.want, c.ok)
		}
	}
}

func TestBuildDayRecords_SyntheticRowsSkipRecordedDays(t *testing.T) {
	t.Parallel()

	entries := []timesheet.DailyEntry{
		{Date: day("2024-03-04"), NetHours: 8, PlannedHours: 8},
	}
	window := shiftplan.Window{
		Source: shiftplan.SourcePerDay,
		Days: map[string]shiftplan.DayPlan{
			"2024-03-04": {Date: day("2024-03-04"), AbsenceLabel: "Urlaub"},
			"2024-03-05": {Date: day("2024-03-05"), AbsenceLabel: "Urlaub"},
			"2024-03-06": {Date: day("2024-03-06"), AbsenceLabel: "kein Arbeitstag"},
		},
	}

	records := BuildDayRecords(entries, window)

	require.Len(t, records, 2)
	var synthetic int
	for _, rec := range records {
		if rec.Synthetic {
			synthetic++
			assert.Equal(t, day("2024-03-05"), rec.Date)
		}
	}
	assert.Equal(t, 1, synthetic)
}

func TestBuildDayRecords_PlannedOvertimeReductionDebits(t *testing.T) {
	t.Parallel()

	window := shiftplan.Window{
		Source: shiftplan.SourcePerDay,
		Days: map[string]shiftplan.DayPlan{
			"2024-03-06": {Date: day("2024-03-06"), AbsenceLabel: "Überstundenabbau", SollHours: 8},
		},
	}

	records := BuildDayRecords(nil, window)

	require.Len(t, records, 1)
	assert.True(t, records[0].Synthetic)
	assert.Equal(t, 8.0, records[0].PlannedHours)
	assert.Equal(t, 0.0, records[0].CreditedHours)

	result := Recompute(records, nil, overtime.Settings{ImportedBalance: 10})
	assert.Equal(t, 2.0, result.Balance)
}
