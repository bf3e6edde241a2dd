package shiftplan

import (
	"context"
	"testing"
	"time"

	domainEmployee "github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlanDayRepo struct {
	days []shiftplan.PlanDay
}

func (f *fakePlanDayRepo) ListByEmployeeRange(_ context.Context, _ string, from, to time.Time, _ string) ([]shiftplan.PlanDay, error) {
	var out []shiftplan.PlanDay
	for _, d := range f.days {
		if !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakePlanDayRepo) Upsert(_ context.Context, day shiftplan.PlanDay) (shiftplan.PlanDay, error) {
	f.days = append(f.days, day)
	return day, nil
}

func (f *fakePlanDayRepo) Delete(context.Context, string, time.Time, string) error { return nil }

type fakeTemplateRepo struct {
	rows []shiftplan.TemplateRow
}

func (f *fakeTemplateRepo) ListByEmployee(context.Context, string, string) ([]shiftplan.TemplateRow, error) {
	return f.rows, nil
}

type fakeEmployeeRepo struct {
	emp domainEmployee.Employee
}

func (f *fakeEmployeeRepo) GetByID(context.Context, string, string) (domainEmployee.Employee, error) {
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(context.Context, string) ([]domainEmployee.Employee, error) {
	return []domainEmployee.Employee{f.emp}, nil
}

func (f *fakeEmployeeRepo) UpdateOvertimeBalance(context.Context, string, float64, string) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdateSettings(context.Context, domainEmployee.UpdateSettingsRequest, string) (domainEmployee.Employee, error) {
	return f.emp, nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func strPtr(s string) *string { return &s }

func TestResolve_PerDayPlan(t *testing.T) {
	t.Parallel()

	planRepo := &fakePlanDayRepo{days: []shiftplan.PlanDay{
		{
			EmployeeID: "emp-1",
			Date:       day("2024-03-04"),
			Segments: []shiftplan.Segment{
				{Position: 1, Available: true, Start: "08:00", End: "16:30", PauseMinutes: 30},
			},
		},
	}}
	r := NewResolver(planRepo, &fakeTemplateRepo{}, &fakeEmployeeRepo{})

	window, err := r.Resolve(context.Background(), "emp-1", day("2024-03-01"), day("2024-03-31"), "co-1")
	require.NoError(t, err)

	assert.Equal(t, shiftplan.SourcePerDay, window.Source)
	plan := window.Day(day("2024-03-04"))
	assert.Equal(t, 8.0, plan.SollHours)
	assert.Equal(t, "08:00", plan.Start)
	assert.Equal(t, "16:30", plan.End)

	// Dates without a plan row resolve to SOLL 0.
	assert.Equal(t, 0.0, window.Day(day("2024-03-05")).SollHours)
}

func TestResolve_PerDayDisablesTemplateFallback(t *testing.T) {
	t.Parallel()

	// One plan row in the window: the template must never be consulted,
	// even for dates the plan does not cover.
	planRepo := &fakePlanDayRepo{days: []shiftplan.PlanDay{
		{
			EmployeeID: "emp-1",
			Date:       day("2024-03-04"),
			Segments:   []shiftplan.Segment{{Position: 1, Available: true, Start: "09:00", End: "17:00", PauseMinutes: 30}},
		},
	}}
	templateRepo := &fakeTemplateRepo{rows: []shiftplan.TemplateRow{
		{Weekday: 2, Week: 1, Start: "08:00", End: "16:00", PauseMinutes: 30},
	}}
	r := NewResolver(planRepo, templateRepo, &fakeEmployeeRepo{})

	window, err := r.Resolve(context.Background(), "emp-1", day("2024-03-01"), day("2024-03-31"), "co-1")
	require.NoError(t, err)

	assert.Equal(t, shiftplan.SourcePerDay, window.Source)
	// 2024-03-05 is a Tuesday; the template would plan 7.5h but must stay dark.
	assert.Equal(t, 0.0, window.Day(day("2024-03-05")).SollHours)
}

func TestResolve_WeeklyTemplateFallback(t *testing.T) {
	t.Parallel()

	templateRepo := &fakeTemplateRepo{rows: []shiftplan.TemplateRow{
		{Weekday: 1, Week: 1, Start: "08:00", End: "17:00", PauseMinutes: 45},
		{Weekday: 2, Week: 1, Start: "08:00", End: "12:00", PauseMinutes: 0},
	}}
	r := NewResolver(&fakePlanDayRepo{}, templateRepo, &fakeEmployeeRepo{})

	window, err := r.Resolve(context.Background(), "emp-1", day("2024-03-04"), day("2024-03-10"), "co-1")
	require.NoError(t, err)

	assert.Equal(t, shiftplan.SourceTemplate, window.Source)
	assert.Equal(t, 8.25, window.Day(day("2024-03-04")).SollHours) // Monday, 9h span - 45min pause
	assert.Equal(t, 4.0, window.Day(day("2024-03-05")).SollHours)  // Tuesday half day, no pause due
	assert.Equal(t, 0.0, window.Day(day("2024-03-06")).SollHours)  // Wednesday unplanned
}

func TestResolve_TwoWeekRotationLateShift(t *testing.T) {
	t.Parallel()

	templateRepo := &fakeTemplateRepo{rows: []shiftplan.TemplateRow{
		{Weekday: 1, Week: 1, Start: "06:00", End: "14:00", PauseMinutes: 30},
		{Weekday: 1, Week: 2, Start: "14:00", End: "22:00", PauseMinutes: 30},
	}}
	empRepo := &fakeEmployeeRepo{emp: domainEmployee.Employee{ID: "emp-1", ShiftLabel: "Spätschicht"}}
	r := NewResolver(&fakePlanDayRepo{}, templateRepo, empRepo)

	window, err := r.Resolve(context.Background(), "emp-1", day("2024-03-04"), day("2024-03-04"), "co-1")
	require.NoError(t, err)

	plan := window.Day(day("2024-03-04"))
	assert.Equal(t, "14:00", plan.Start)
	assert.Equal(t, "22:00", plan.End)
	assert.Equal(t, 7.5, plan.SollHours)
}

func TestResolve_UnavailableDayCarriesLabel(t *testing.T) {
	t.Parallel()

	planRepo := &fakePlanDayRepo{days: []shiftplan.PlanDay{
		{
			EmployeeID: "emp-1",
			Date:       day("2024-03-06"),
			Segments:   []shiftplan.Segment{{Position: 1, Available: false, Label: strPtr("Urlaub")}},
		},
	}}
	r := NewResolver(planRepo, &fakeTemplateRepo{}, &fakeEmployeeRepo{})

	window, err := r.Resolve(context.Background(), "emp-1", day("2024-03-01"), day("2024-03-31"), "co-1")
	require.NoError(t, err)

	plan := window.Day(day("2024-03-06"))
	assert.Equal(t, "Urlaub", plan.AbsenceLabel)
	assert.Equal(t, 0.0, plan.SollHours)
}

func TestResolve_UnavailableDayWithRetainedTimesKeepsSoll(t *testing.T) {
	t.Parallel()

	planRepo := &fakePlanDayRepo{days: []shiftplan.PlanDay{
		{
			EmployeeID: "emp-1",
			Date:       day("2024-03-06"),
			Segments: []shiftplan.Segment{{
				Position:     1,
				Available:    false,
				Start:        "08:00",
				End:          "16:30",
				PauseMinutes: 30,
				Label:        strPtr("Überstundenabbau"),
			}},
		},
	}}
	r := NewResolver(planRepo, &fakeTemplateRepo{}, &fakeEmployeeRepo{})

	window, err := r.Resolve(context.Background(), "emp-1", day("2024-03-06"), day("2024-03-06"), "co-1")
	require.NoError(t, err)

	plan := window.Day(day("2024-03-06"))
	assert.Equal(t, "Überstundenabbau", plan.AbsenceLabel)
	assert.Equal(t, 8.0, plan.SollHours)
	// The day is still not a working day.
	assert.Equal(t, "", plan.Start)
}

func TestResolve_LegalBreakOverridesShortPlanPause(t *testing.T) {
	t.Parallel()

	// 10h span with only 15min planned pause: statutory 45min wins.
	planRepo := &fakePlanDayRepo{days: []shiftplan.PlanDay{
		{
			EmployeeID: "emp-1",
			Date:       day("2024-03-04"),
			Segments:   []shiftplan.Segment{{Position: 1, Available: true, Start: "08:00", End: "18:00", PauseMinutes: 15}},
		},
	}}
	r := NewResolver(planRepo, &fakeTemplateRepo{}, &fakeEmployeeRepo{})

	window, err := r.Resolve(context.Background(), "emp-1", day("2024-03-04"), day("2024-03-04"), "co-1")
	require.NoError(t, err)

	assert.Equal(t, 9.25, window.Day(day("2024-03-04")).SollHours)
}
