package overtime

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
	"github.com/Mobiman12/stundenliste-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type recalculatorImpl struct {
	db           *database.DB
	entryRepo    timesheet.DailyEntryRepository
	payoutRepo   overtime.PayoutRepository
	employeeRepo employee.EmployeeRepository
	resolver     shiftplan.Resolver
}

func NewRecalculator(
	db *database.DB,
	entryRepo timesheet.DailyEntryRepository,
	payoutRepo overtime.PayoutRepository,
	employeeRepo employee.EmployeeRepository,
	resolver shiftplan.Resolver,
) overtime.Recalculator {
	return &recalculatorImpl{
		db:           db,
		entryRepo:    entryRepo,
		payoutRepo:   payoutRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
	}
}

// Recalculate implements overtime.Recalculator.
func (r *recalculatorImpl) Recalculate(ctx context.Context, employeeID string, companyID string) (overtime.LedgerResult, error) {
	result, err := r.replay(ctx, employeeID, companyID)
	if err != nil {
		return overtime.LedgerResult{}, err
	}

	if err := r.employeeRepo.UpdateOvertimeBalance(ctx, employeeID, result.Balance, companyID); err != nil {
		return overtime.LedgerResult{}, fmt.Errorf("failed to persist overtime balance: %w", err)
	}

	return result, nil
}

// Summary implements overtime.Recalculator.
func (r *recalculatorImpl) Summary(ctx context.Context, employeeID string, companyID string) (overtime.LedgerResult, error) {
	return r.replay(ctx, employeeID, companyID)
}

// RecordPayout implements overtime.Recalculator. The payout write and the
// ledger recompute run in one transaction serialized per employee, like
// every other ledger-touching write path.
func (r *recalculatorImpl) RecordPayout(ctx context.Context, employeeID, companyID string, date time.Time, hours float64, note string) (overtime.LedgerResult, error) {
	if hours <= 0 {
		return overtime.LedgerResult{}, overtime.ErrInvalidPayout
	}

	var result overtime.LedgerResult
	err := postgresql.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := postgresql.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}

		if _, err := r.payoutRepo.Create(txCtx, overtime.Payout{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Date:       date,
			Hours:      hours,
			Note:       note,
		}); err != nil {
			return fmt.Errorf("failed to create overtime payout: %w", err)
		}

		ledger, err := r.Recalculate(txCtx, employeeID, companyID)
		if err != nil {
			return err
		}
		result = ledger
		return nil
	})
	if err != nil {
		return overtime.LedgerResult{}, err
	}

	return result, nil
}

// DeletePayout implements overtime.Recalculator.
func (r *recalculatorImpl) DeletePayout(ctx context.Context, employeeID, payoutID, companyID string) (overtime.LedgerResult, error) {
	var result overtime.LedgerResult
	err := postgresql.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := postgresql.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}

		if err := r.payoutRepo.Delete(txCtx, payoutID, companyID); err != nil {
			return err
		}

		ledger, err := r.Recalculate(txCtx, employeeID, companyID)
		if err != nil {
			return err
		}
		result = ledger
		return nil
	})
	if err != nil {
		return overtime.LedgerResult{}, err
	}

	return result, nil
}

func (r *recalculatorImpl) replay(ctx context.Context, employeeID string, companyID string) (overtime.LedgerResult, error) {
	emp, err := r.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.LedgerResult{}, employee.ErrEmployeeNotFound
		}
		return overtime.LedgerResult{}, fmt.Errorf("failed to get employee: %w", err)
	}

	entries, err := r.entryRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return overtime.LedgerResult{}, fmt.Errorf("failed to list daily entries: %w", err)
	}

	payouts, err := r.payoutRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return overtime.LedgerResult{}, fmt.Errorf("failed to list overtime payouts: %w", err)
	}

	from, to := replayWindow(entries)
	window, err := r.resolver.Resolve(ctx, employeeID, from, to, companyID)
	if err != nil {
		return overtime.LedgerResult{}, fmt.Errorf("failed to resolve shift plan: %w", err)
	}

	records := BuildDayRecords(entries, window)
	settings := overtime.Settings{
		ImportedBalance:  emp.ImportedOvertimeHours,
		MaxOvertimeHours: emp.MaxOvertimeHours,
		MaxMinusHours:    emp.MaxMinusHours,
	}

	return Recompute(records, payouts, settings), nil
}

// replayWindow spans from the earliest entry (at latest the start of the
// current year) to the later of today and the last entry, so plan-derived
// absence days around the recorded history are picked up.
func replayWindow(entries []timesheet.DailyEntry) (time.Time, time.Time) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	from := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := today

	if len(entries) > 0 {
		if entries[0].Date.Before(from) {
			from = entries[0].Date
		}
		if last := entries[len(entries)-1].Date; last.After(to) {
			to = last
		}
	}
	return from, to
}

// BuildDayRecords merges persisted daily entries with synthetic rows for
// plan days that carry an absence label but have no entry of their own.
func BuildDayRecords(entries []timesheet.DailyEntry, window shiftplan.Window) []overtime.DayRecord {
	records := make([]overtime.DayRecord, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		seen[e.Date.Format("2006-01-02")] = true
		records = append(records, overtime.DayRecord{
			Date:           e.Date,
			NetHours:       e.NetHours,
			PlannedHours:   e.PlannedHours,
			CreditedHours:  e.SickHours + e.ChildSickHours + e.VacationHours + e.HolidayHours,
			ForcedOverflow: e.ForcedOverflow,
		})
	}

	for key, plan := range window.Days {
		if seen[key] || plan.AbsenceLabel == "" {
			continue
		}
		code, ok := TranslateLabel(plan.AbsenceLabel)
		if !ok {
			continue
		}
		records = append(records, syntheticRecord(plan, code))
	}

	return records
}

// TranslateLabel maps a free-text plan absence label to an absence code by
// keyword. Unknown labels stay untranslated and contribute nothing.
func TranslateLabel(label string) (timesheet.AbsenceCode, bool) {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "feiertag") || strings.Contains(lower, "holiday"):
		return timesheet.CodeHoliday, true
	case strings.Contains(lower, "urlaub") || strings.Contains(lower, "vacation"):
		return timesheet.CodeVacation, true
	case strings.Contains(lower, "kurzarbeit") || strings.Contains(lower, "short-work") || strings.Contains(lower, "short work"):
		return timesheet.CodeShortWork, true
	case strings.Contains(lower, "krank") || strings.Contains(lower, "sick"):
		return timesheet.CodeSick, true
	case strings.Contains(lower, "überstunden") || strings.Contains(lower, "overtime") ||
		strings.Contains(lower, "abbau") || strings.Contains(lower, "reduction"):
		return timesheet.CodeOvertimeReduction, true
	default:
		return "", false
	}
}

func syntheticRecord(plan shiftplan.DayPlan, code timesheet.AbsenceCode) overtime.DayRecord {
	rec := overtime.DayRecord{Date: plan.Date, Synthetic: true}

	switch code {
	case timesheet.CodeVacation, timesheet.CodeSick, timesheet.CodeChildSick, timesheet.CodeHoliday:
		rec.PlannedHours = plan.SollHours
		rec.CreditedHours = plan.SollHours
	case timesheet.CodeShortWork, timesheet.CodeUnpaid:
		// Neither SOLL nor credit accrues.
	case timesheet.CodeOvertimeReduction:
		rec.PlannedHours = plan.SollHours
	}

	return rec
}
