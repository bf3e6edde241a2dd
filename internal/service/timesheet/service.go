package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/closing"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
	"github.com/Mobiman12/stundenliste-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type TimesheetServiceImpl struct {
	db           *database.DB
	entryRepo    timesheet.DailyEntryRepository
	employeeRepo employee.EmployeeRepository
	resolver     shiftplan.Resolver
	closing      closing.Service
	recalculator overtime.Recalculator
}

func NewTimesheetService(
	db *database.DB,
	entryRepo timesheet.DailyEntryRepository,
	employeeRepo employee.EmployeeRepository,
	resolver shiftplan.Resolver,
	closingService closing.Service,
	recalculator overtime.Recalculator,
) timesheet.Service {
	return &TimesheetServiceImpl{
		db:           db,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		closing:      closingService,
		recalculator: recalculator,
	}
}

// Save implements timesheet.Service. Lock check, entry write and ledger
// recompute run in one transaction serialized per employee, so concurrent
// saves cannot leave a stale aggregate behind.
func (s *TimesheetServiceImpl) Save(ctx context.Context, req timesheet.SaveEntryRequest) (timesheet.SaveEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SaveEntryResponse{}, err
	}

	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return timesheet.SaveEntryResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return timesheet.SaveEntryResponse{}, timesheet.ErrInvalidDate
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SaveEntryResponse{}, employee.ErrEmployeeNotFound
		}
		return timesheet.SaveEntryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var response timesheet.SaveEntryResponse
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := postgresql.LockEmployee(txCtx, req.EmployeeID); err != nil {
			return err
		}

		closed, err := s.closing.IsClosed(txCtx, req.EmployeeID, date.Year(), date.Month(), companyID)
		if err != nil {
			return err
		}
		if closed {
			return timesheet.ErrMonthClosed
		}

		window, err := s.resolver.Resolve(txCtx, req.EmployeeID, date, date, companyID)
		if err != nil {
			return err
		}

		entry, warnings, err := Normalize(req, window.Day(date))
		if err != nil {
			return err
		}
		entry.CompanyID = companyID
		entry.Date = date

		prev, err := s.entryRepo.GetByEmployeeAndDate(txCtx, req.EmployeeID, date, companyID)
		if err != nil {
			return fmt.Errorf("failed to load previous entry: %w", err)
		}
		entry.LastAdminChange = adminStamp(req.Actor, prev, entry)

		saved, err := s.entryRepo.Upsert(txCtx, entry)
		if err != nil {
			return fmt.Errorf("failed to save daily entry: %w", err)
		}
		saved.EmployeeName = &emp.FullName

		// A save whose recompute fails must not survive; the rollback
		// covers both.
		ledger, err := s.recalculator.Recalculate(txCtx, req.EmployeeID, companyID)
		if err != nil {
			return fmt.Errorf("failed to recompute overtime ledger: %w", err)
		}

		response = timesheet.SaveEntryResponse{
			Entry:           mapEntryToResponse(saved),
			OvertimeBalance: ledger.Balance,
			Warnings:        warnings,
		}
		return nil
	})
	if err != nil {
		return timesheet.SaveEntryResponse{}, err
	}

	return response, nil
}

// Delete implements timesheet.Service.
func (s *TimesheetServiceImpl) Delete(ctx context.Context, employeeID, dateStr string, actor timesheet.Actor) error {
	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return timesheet.ErrInvalidDate
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := postgresql.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}

		closed, err := s.closing.IsClosed(txCtx, employeeID, date.Year(), date.Month(), companyID)
		if err != nil {
			return err
		}
		if closed {
			return timesheet.ErrMonthClosed
		}

		if err := s.entryRepo.Delete(txCtx, employeeID, date, companyID); err != nil {
			return err
		}

		if _, err := s.recalculator.Recalculate(txCtx, employeeID, companyID); err != nil {
			return fmt.Errorf("failed to recompute overtime ledger: %w", err)
		}
		return nil
	})
}

// ListMonth implements timesheet.Service.
func (s *TimesheetServiceImpl) ListMonth(ctx context.Context, filter timesheet.ListEntriesFilter) (timesheet.ListEntriesResponse, error) {
	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return timesheet.ListEntriesResponse{}, err
	}

	entries, err := s.entryRepo.ListByEmployeeMonth(ctx, filter.EmployeeID, filter.Year, time.Month(filter.Month), companyID)
	if err != nil {
		return timesheet.ListEntriesResponse{}, fmt.Errorf("failed to list entries: %w", err)
	}

	response := timesheet.ListEntriesResponse{
		Entries: make([]timesheet.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		response.Entries = append(response.Entries, mapEntryToResponse(e))
		response.Totals.NetHours += e.NetHours
		response.Totals.PlannedHours += e.PlannedHours
		response.Totals.OvertimeDelta += e.OvertimeDelta
		response.Totals.SickHours += e.SickHours
		response.Totals.ChildSickHours += e.ChildSickHours
		response.Totals.ShortWorkHours += e.ShortWorkHours
		response.Totals.VacationHours += e.VacationHours
		response.Totals.HolidayHours += e.HolidayHours
		response.Totals.GrossRevenue = response.Totals.GrossRevenue.Add(e.GrossRevenue)
		if e.Meal == timesheet.MealYes {
			response.Totals.MealCount++
		}
	}

	return response, nil
}

// adminStamp decides the audit stamp for a save: administrators leave a
// per-field diff, employees editing their own sheet clear any prior stamp.
func adminStamp(actor timesheet.Actor, prev *timesheet.DailyEntry, next timesheet.DailyEntry) *timesheet.AdminChange {
	if !actor.IsAdmin {
		return nil
	}

	changeType := "update"
	if prev == nil {
		changeType = "create"
	}
	return &timesheet.AdminChange{
		At:      time.Now().UTC(),
		By:      actor.Name,
		Type:    changeType,
		Summary: diffSummary(prev, next),
	}
}

func mapEntryToResponse(e timesheet.DailyEntry) timesheet.EntryResponse {
	var name string
	if e.EmployeeName != nil {
		name = *e.EmployeeName
	}

	return timesheet.EntryResponse{
		ID:                   e.ID,
		EmployeeID:           e.EmployeeID,
		EmployeeName:         name,
		Date:                 e.Date.Format("2006-01-02"),
		GrossRevenue:         e.GrossRevenue,
		Start1:               e.Start1,
		End1:                 e.End1,
		Start2:               e.Start2,
		End2:                 e.End2,
		Pause:                e.Pause,
		Code:                 string(e.Code),
		Meal:                 string(e.Meal),
		Remark:               e.Remark,
		NetHours:             e.NetHours,
		PlannedHours:         e.PlannedHours,
		SickHours:            e.SickHours,
		ChildSickHours:       e.ChildSickHours,
		ShortWorkHours:       e.ShortWorkHours,
		VacationHours:        e.VacationHours,
		HolidayHours:         e.HolidayHours,
		OvertimeDelta:        e.OvertimeDelta,
		ForcedOverflow:       e.ForcedOverflow,
		RequiredPauseMinutes: e.RequiredPauseMinutes,
		LastAdminChange:      e.LastAdminChange,
	}
}
