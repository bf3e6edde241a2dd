package overtime

import (
	"sort"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/worktime"
)

// Recompute replays an employee's complete day history in ascending date
// order and returns the daily deltas, monthly carries and final balance.
// It is a pure function of its inputs: replaying unchanged history yields
// identical results.
//
// Payouts are dated debits in the same replay stream: a payout on a date
// without a day row of its own still produces a ledger day and reduces
// the balance.
//
// The running balance is clamped to [-MaxMinusHours, +MaxOvertimeHours] for
// exposure; the unclamped carry is kept internally so that hours lost to
// the cap do not silently reappear later.
func Recompute(records []overtime.DayRecord, payouts []overtime.Payout, settings overtime.Settings) overtime.LedgerResult {
	type ledgerEvent struct {
		date  time.Time
		delta float64
	}

	byDate := make(map[string]*ledgerEvent, len(records)+len(payouts))
	book := func(date time.Time, delta float64) {
		key := date.Format("2006-01-02")
		ev, ok := byDate[key]
		if !ok {
			ev = &ledgerEvent{date: date}
			byDate[key] = ev
		}
		ev.delta += delta
	}
	for _, rec := range records {
		book(rec.Date, dayDelta(rec))
	}
	for _, p := range payouts {
		book(p.Date, -p.Hours)
	}

	sorted := make([]*ledgerEvent, 0, len(byDate))
	for _, ev := range byDate {
		sorted = append(sorted, ev)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].date.Before(sorted[j].date) })

	result := overtime.LedgerResult{Balance: clamp(settings.ImportedBalance, settings)}
	running := settings.ImportedBalance

	var prev time.Time
	for _, ev := range sorted {
		if !prev.IsZero() && monthChanged(prev, ev.date) {
			result.Carries = append(result.Carries, overtime.MonthCarry{
				Year:    prev.Year(),
				Month:   prev.Month(),
				Balance: clamp(running, settings),
			})
		}

		running += ev.delta

		result.Days = append(result.Days, overtime.LedgerDay{
			Date:    ev.date,
			Delta:   worktime.Round2(ev.delta),
			Balance: clamp(running, settings),
		})
		prev = ev.date
	}

	if !prev.IsZero() {
		result.Carries = append(result.Carries, overtime.MonthCarry{
			Year:    prev.Year(),
			Month:   prev.Month(),
			Balance: clamp(running, settings),
		})
	}

	result.Balance = clamp(running, settings)
	return result
}

// dayDelta is the signed contribution of one day: worked plus credited
// absence hours against the ledger-planned hours, minus externally paid-out
// overflow.
func dayDelta(rec overtime.DayRecord) float64 {
	return rec.NetHours + rec.CreditedHours - rec.PlannedHours - rec.ForcedOverflow
}

func clamp(balance float64, settings overtime.Settings) float64 {
	if settings.MaxOvertimeHours > 0 && balance > settings.MaxOvertimeHours {
		balance = settings.MaxOvertimeHours
	}
	if settings.MaxMinusHours > 0 && balance < -settings.MaxMinusHours {
		balance = -settings.MaxMinusHours
	}
	return worktime.Round2(balance)
}

func monthChanged(a, b time.Time) bool {
	return a.Year() != b.Year() || a.Month() != b.Month()
}
