package shiftplan

import (
	"context"
	"fmt"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/closing"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
	"github.com/Mobiman12/stundenliste-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type PlannerImpl struct {
	db           *database.DB
	planDayRepo  shiftplan.PlanDayRepository
	resolver     shiftplan.Resolver
	closing      closing.Service
	recalculator overtime.Recalculator
}

func NewPlanner(
	db *database.DB,
	planDayRepo shiftplan.PlanDayRepository,
	resolver shiftplan.Resolver,
	closingService closing.Service,
	recalculator overtime.Recalculator,
) shiftplan.Planner {
	return &PlannerImpl{
		db:           db,
		planDayRepo:  planDayRepo,
		resolver:     resolver,
		closing:      closingService,
		recalculator: recalculator,
	}
}

// SaveDay implements shiftplan.Planner. Changing the plan changes SOLL
// hours, so the ledger recomputes in the same transaction.
func (p *PlannerImpl) SaveDay(ctx context.Context, req shiftplan.SaveDayRequest) (shiftplan.PlanDay, error) {
	if err := req.Validate(); err != nil {
		return shiftplan.PlanDay{}, err
	}

	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return shiftplan.PlanDay{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return shiftplan.PlanDay{}, timesheet.ErrInvalidDate
	}

	day := shiftplan.PlanDay{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Date:       date,
		Segments:   make([]shiftplan.Segment, 0, len(req.Segments)),
	}
	for i, seg := range req.Segments {
		day.Segments = append(day.Segments, shiftplan.Segment{
			Position:     i,
			Available:    seg.Available,
			Start:        seg.Start,
			End:          seg.End,
			PauseMinutes: seg.PauseMinutes,
			Branch:       seg.Branch,
			Label:        seg.Label,
		})
	}

	var saved shiftplan.PlanDay
	err = postgresql.WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := postgresql.LockEmployee(txCtx, req.EmployeeID); err != nil {
			return err
		}

		closed, err := p.closing.IsClosed(txCtx, req.EmployeeID, date.Year(), date.Month(), companyID)
		if err != nil {
			return err
		}
		if closed {
			return timesheet.ErrMonthClosed
		}

		saved, err = p.planDayRepo.Upsert(txCtx, day)
		if err != nil {
			return fmt.Errorf("failed to save plan day: %w", err)
		}

		if _, err := p.recalculator.Recalculate(txCtx, req.EmployeeID, companyID); err != nil {
			return fmt.Errorf("failed to recompute overtime ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return shiftplan.PlanDay{}, err
	}

	return saved, nil
}

// DeleteDay implements shiftplan.Planner.
func (p *PlannerImpl) DeleteDay(ctx context.Context, employeeID, dateStr string) error {
	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return timesheet.ErrInvalidDate
	}

	return postgresql.WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := postgresql.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}

		closed, err := p.closing.IsClosed(txCtx, employeeID, date.Year(), date.Month(), companyID)
		if err != nil {
			return err
		}
		if closed {
			return timesheet.ErrMonthClosed
		}

		if err := p.planDayRepo.Delete(txCtx, employeeID, date, companyID); err != nil {
			return fmt.Errorf("failed to delete plan day: %w", err)
		}

		if _, err := p.recalculator.Recalculate(txCtx, employeeID, companyID); err != nil {
			return fmt.Errorf("failed to recompute overtime ledger: %w", err)
		}
		return nil
	})
}

// GetWindow implements shiftplan.Planner.
func (p *PlannerImpl) GetWindow(ctx context.Context, employeeID, fromStr, toStr string) (shiftplan.Window, error) {
	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return shiftplan.Window{}, err
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return shiftplan.Window{}, timesheet.ErrInvalidDate
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return shiftplan.Window{}, timesheet.ErrInvalidDate
	}

	return p.resolver.Resolve(ctx, employeeID, from, to, companyID)
}

// ApplyAbsenceRange implements shiftplan.Planner. The whole range writes in
// one transaction after every touched month passed the lock check, so a
// vacation spanning a closed month is rejected before the first day lands.
func (p *PlannerImpl) ApplyAbsenceRange(ctx context.Context, req shiftplan.AbsenceRangeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, err := auth.CompanyID(ctx)
	if err != nil {
		return err
	}

	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)

	return postgresql.WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := postgresql.LockEmployee(txCtx, req.EmployeeID); err != nil {
			return err
		}

		if err := p.closing.AssertOpenRange(txCtx, req.EmployeeID, from, to, companyID); err != nil {
			return err
		}

		// Resolve before the first write: the absence segments retain each
		// day's planned times, so the ledger can still price the days.
		window, err := p.resolver.Resolve(txCtx, req.EmployeeID, from, to, companyID)
		if err != nil {
			return fmt.Errorf("failed to resolve shift plan: %w", err)
		}

		label := req.Label
		for cursor := from; !cursor.After(to); cursor = cursor.AddDate(0, 0, 1) {
			plan := window.Day(cursor)
			day := shiftplan.PlanDay{
				EmployeeID: req.EmployeeID,
				CompanyID:  companyID,
				Date:       cursor,
				Segments: []shiftplan.Segment{
					{
						Position:     0,
						Available:    false,
						Start:        plan.Start,
						End:          plan.End,
						PauseMinutes: plan.PauseMinutes,
						Label:        &label,
					},
				},
			}
			if _, err := p.planDayRepo.Upsert(txCtx, day); err != nil {
				return fmt.Errorf("failed to save plan day: %w", err)
			}
		}

		if _, err := p.recalculator.Recalculate(txCtx, req.EmployeeID, companyID); err != nil {
			return fmt.Errorf("failed to recompute overtime ledger: %w", err)
		}
		return nil
	})
}
