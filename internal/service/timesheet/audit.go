package timesheet

import (
	"fmt"
	"strings"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
)

// diffSummary renders a human-readable per-field diff between the previous
// row and the row about to be written, for the admin audit stamp.
func diffSummary(prev *timesheet.DailyEntry, next timesheet.DailyEntry) string {
	if prev == nil {
		return "Eintrag angelegt"
	}

	type field struct {
		name     string
		old, new string
	}
	fields := []field{
		{"start1", prev.Start1, next.Start1},
		{"end1", prev.End1, next.End1},
		{"start2", prev.Start2, next.Start2},
		{"end2", prev.End2, next.End2},
		{"pause", prev.Pause, next.Pause},
		{"code", string(prev.Code), string(next.Code)},
		{"essen", string(prev.Meal), string(next.Meal)},
		{"umsatz", prev.GrossRevenue.String(), next.GrossRevenue.String()},
		{"bemerkung", prev.Remark, next.Remark},
	}

	var changes []string
	for _, f := range fields {
		if f.old != f.new {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", f.name, display(f.old), display(f.new)))
		}
	}

	if len(changes) == 0 {
		return "keine Änderung"
	}
	return strings.Join(changes, "; ")
}

func display(v string) string {
	if v == "" {
		return "leer"
	}
	return v
}
