package closing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/closing"
	"github.com/jackc/pgx/v5"
)

type ClosingServiceImpl struct {
	repo closing.Repository
}

func NewClosingService(repo closing.Repository) closing.Service {
	return &ClosingServiceImpl{repo: repo}
}

// Close implements closing.Service.
func (s *ClosingServiceImpl) Close(ctx context.Context, employeeID string, year int, month time.Month, actorName string, companyID string) (closing.MonthlyClosing, error) {
	if month < time.January || month > time.December {
		return closing.MonthlyClosing{}, closing.ErrInvalidMonth
	}

	current, err := s.repo.Get(ctx, employeeID, year, month, companyID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return closing.MonthlyClosing{}, fmt.Errorf("failed to get monthly closing: %w", err)
	}
	if err == nil && current.Status == closing.StatusClosed {
		return closing.MonthlyClosing{}, closing.ErrAlreadyClosed
	}

	now := time.Now().UTC()
	updated, err := s.repo.Upsert(ctx, closing.MonthlyClosing{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Year:       year,
		Month:      month,
		Status:     closing.StatusClosed,
		ClosedAt:   &now,
		ClosedBy:   &actorName,
	})
	if err != nil {
		return closing.MonthlyClosing{}, fmt.Errorf("failed to close month: %w", err)
	}
	return updated, nil
}

// Reopen implements closing.Service. Reopening is always permitted; the
// lock has no terminal state.
func (s *ClosingServiceImpl) Reopen(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (closing.MonthlyClosing, error) {
	if month < time.January || month > time.December {
		return closing.MonthlyClosing{}, closing.ErrInvalidMonth
	}

	current, err := s.repo.Get(ctx, employeeID, year, month, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return closing.MonthlyClosing{}, closing.ErrAlreadyOpen
		}
		return closing.MonthlyClosing{}, fmt.Errorf("failed to get monthly closing: %w", err)
	}
	if current.Status == closing.StatusOpen {
		return closing.MonthlyClosing{}, closing.ErrAlreadyOpen
	}

	current.Status = closing.StatusOpen
	current.ClosedAt = nil
	current.ClosedBy = nil

	updated, err := s.repo.Upsert(ctx, current)
	if err != nil {
		return closing.MonthlyClosing{}, fmt.Errorf("failed to reopen month: %w", err)
	}
	return updated, nil
}

// IsClosed implements closing.Service.
func (s *ClosingServiceImpl) IsClosed(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (bool, error) {
	current, err := s.repo.Get(ctx, employeeID, year, month, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get monthly closing: %w", err)
	}
	return current.Status == closing.StatusClosed, nil
}

// AssertOpenRange implements closing.Service. Every month the range
// touches is checked before anything is written, so a multi-day request
// never lands half inside a closed month.
func (s *ClosingServiceImpl) AssertOpenRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) error {
	for cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(to); cursor = cursor.AddDate(0, 1, 0) {
		closed, err := s.IsClosed(ctx, employeeID, cursor.Year(), cursor.Month(), companyID)
		if err != nil {
			return err
		}
		if closed {
			return fmt.Errorf("%w: %04d-%02d", closing.ErrAlreadyClosed, cursor.Year(), int(cursor.Month()))
		}
	}
	return nil
}
