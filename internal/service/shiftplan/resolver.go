package shiftplan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/worktime"
)

type resolverImpl struct {
	planDayRepo  shiftplan.PlanDayRepository
	templateRepo shiftplan.TemplateRepository
	employeeRepo employee.EmployeeRepository
}

func NewResolver(
	planDayRepo shiftplan.PlanDayRepository,
	templateRepo shiftplan.TemplateRepository,
	employeeRepo employee.EmployeeRepository,
) shiftplan.Resolver {
	return &resolverImpl{
		planDayRepo:  planDayRepo,
		templateRepo: templateRepo,
		employeeRepo: employeeRepo,
	}
}

// Resolve implements shiftplan.Resolver. The plan source is decided once
// for the whole window: a single per-day row disables the weekly-template
// fallback for every date in it.
func (r *resolverImpl) Resolve(ctx context.Context, employeeID string, from, to time.Time, companyID string) (shiftplan.Window, error) {
	planDays, err := r.planDayRepo.ListByEmployeeRange(ctx, employeeID, from, to, companyID)
	if err != nil {
		return shiftplan.Window{}, fmt.Errorf("failed to list plan days: %w", err)
	}

	if len(planDays) > 0 {
		return resolvePerDay(planDays), nil
	}

	rows, err := r.templateRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return shiftplan.Window{}, fmt.Errorf("failed to list weekly template: %w", err)
	}
	if len(rows) == 0 {
		return shiftplan.Window{Source: shiftplan.SourceNone, Days: map[string]shiftplan.DayPlan{}}, nil
	}

	emp, err := r.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return shiftplan.Window{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return resolveTemplate(rows, emp.ShiftLabel, from, to), nil
}

func resolvePerDay(planDays []shiftplan.PlanDay) shiftplan.Window {
	days := make(map[string]shiftplan.DayPlan, len(planDays))
	for _, pd := range planDays {
		days[pd.Date.Format("2006-01-02")] = resolvePlanDay(pd)
	}
	return shiftplan.Window{Source: shiftplan.SourcePerDay, Days: days}
}

func resolvePlanDay(pd shiftplan.PlanDay) shiftplan.DayPlan {
	plan := shiftplan.DayPlan{Date: pd.Date}

	var span, labeledSpan float64
	var pauseMinutes, labeledPause int
	for _, seg := range pd.Segments {
		if !seg.Available {
			if plan.AbsenceLabel == "" && seg.Label != nil {
				plan.AbsenceLabel = *seg.Label
			}
			// An absent segment can keep the times it replaced.
			labeledSpan += worktime.SegmentHours(seg.Start, seg.End)
			labeledPause += seg.PauseMinutes
			continue
		}
		span += worktime.SegmentHours(seg.Start, seg.End)
		pauseMinutes += seg.PauseMinutes
		if plan.Start == "" {
			plan.Start = seg.Start
		}
		plan.End = seg.End
	}

	if span > 0 {
		// A day with a working span is a working day even if one segment
		// carries a label.
		plan.AbsenceLabel = ""
		plan.PauseMinutes = pauseMinutes
		plan.SollHours = sollHours(span, pauseMinutes)
	} else if labeledSpan > 0 {
		// The retained span prices the absence: vacation and sick days
		// credit it, a planned overtime reduction debits it.
		plan.SollHours = sollHours(labeledSpan, labeledPause)
	}

	return plan
}

func resolveTemplate(rows []shiftplan.TemplateRow, shiftLabel string, from, to time.Time) shiftplan.Window {
	// Two-week rotations key off a free-text shift label containing "spät".
	// The substring match is fragile but deliberately preserved.
	week := 1
	if hasSecondWeek(rows) && isLateShift(shiftLabel) {
		week = 2
	}

	byWeekday := make(map[int]shiftplan.TemplateRow, 7)
	for _, row := range rows {
		if row.Week == week {
			byWeekday[row.Weekday] = row
		}
	}

	days := make(map[string]shiftplan.DayPlan)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		row, ok := byWeekday[isoWeekday(d)]
		if !ok {
			continue
		}
		span := worktime.SegmentHours(row.Start, row.End)
		if span == 0 {
			continue
		}
		days[d.Format("2006-01-02")] = shiftplan.DayPlan{
			Date:         d,
			Start:        row.Start,
			End:          row.End,
			PauseMinutes: row.PauseMinutes,
			SollHours:    sollHours(span, row.PauseMinutes),
		}
	}

	return shiftplan.Window{Source: shiftplan.SourceTemplate, Days: days}
}

// sollHours subtracts the larger of the plan's required pause and the
// statutory minimum from the planned span.
func sollHours(span float64, pauseMinutes int) float64 {
	pause := float64(pauseMinutes) / 60.0
	if legal := worktime.LegalBreakHours(span); legal > pause {
		pause = legal
	}
	soll := span - pause
	if soll < 0 {
		soll = 0
	}
	return worktime.Round2(soll)
}

func hasSecondWeek(rows []shiftplan.TemplateRow) bool {
	for _, row := range rows {
		if row.Week == 2 {
			return true
		}
	}
	return false
}

func isLateShift(label string) bool {
	lower := strings.ToLower(label)
	return strings.Contains(lower, "spät") || strings.Contains(lower, "late")
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}
