package bonus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/bonus"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/employee"
	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type BonusServiceImpl struct {
	schemeRepo   bonus.SchemeRepository
	payoutRepo   bonus.PayoutRepository
	entryRepo    timesheet.DailyEntryRepository
	employeeRepo employee.EmployeeRepository
}

func NewBonusService(
	schemeRepo bonus.SchemeRepository,
	payoutRepo bonus.PayoutRepository,
	entryRepo timesheet.DailyEntryRepository,
	employeeRepo employee.EmployeeRepository,
) bonus.Service {
	return &BonusServiceImpl{
		schemeRepo:   schemeRepo,
		payoutRepo:   payoutRepo,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
	}
}

type monthKey struct {
	year  int
	month time.Month
}

// MonthSummary implements bonus.Service. The carry-over chain is folded
// from the first recorded month up to the queried one, so editing an old
// month cannot leave later carries stale.
func (s *BonusServiceImpl) MonthSummary(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (bonus.MonthResult, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bonus.MonthResult{}, employee.ErrEmployeeNotFound
		}
		return bonus.MonthResult{}, fmt.Errorf("failed to get employee: %w", err)
	}

	scheme, err := s.schemeRepo.GetByEmployee(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bonus.MonthResult{}, bonus.ErrSchemeNotFound
		}
		return bonus.MonthResult{}, fmt.Errorf("failed to get bonus scheme: %w", err)
	}

	entries, err := s.entryRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return bonus.MonthResult{}, fmt.Errorf("failed to list daily entries: %w", err)
	}

	payouts, err := s.payoutRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return bonus.MonthResult{}, fmt.Errorf("failed to list bonus payouts: %w", err)
	}

	revenueByMonth := make(map[monthKey]decimal.Decimal)
	first := monthKey{year: year, month: month}
	for _, e := range entries {
		key := monthKey{year: e.Date.Year(), month: e.Date.Month()}
		revenueByMonth[key] = revenueByMonth[key].Add(e.GrossRevenue)
		if before(key, first) {
			first = key
		}
	}

	paidByMonth := make(map[monthKey]decimal.Decimal)
	for _, p := range payouts {
		key := monthKey{year: p.Year, month: p.Month}
		paidByMonth[key] = paidByMonth[key].Add(p.Amount)
		if before(key, first) {
			first = key
		}
	}

	target := MonthlyTarget(emp.AnnualRevenueTarget)

	var result bonus.MonthResult
	carry := decimal.Zero
	for key := first; !after(key, monthKey{year: year, month: month}); key = next(key) {
		gross := revenueByMonth[key]
		net := NetRevenue(gross)
		over := net.Sub(target)
		if over.IsNegative() {
			over = decimal.Zero
		}

		calculated, err := Calculate(over, scheme)
		if err != nil {
			return bonus.MonthResult{}, err
		}

		paid := paidByMonth[key]
		available := Available(carry, calculated, paid)

		result = bonus.MonthResult{
			Year:             key.year,
			Month:            key.month,
			GrossRevenue:     gross,
			NetRevenue:       net.Round(2),
			MonthlyTarget:    target.Round(2),
			OverTarget:       over.Round(2),
			Bonus:            calculated.Round(2),
			CarryIn:          carry.Round(2),
			PaidOut:          paid,
			AvailablePayout:  available.Round(2),
			CarryToNextMonth: available.Round(2),
		}
		carry = available
	}

	return result, nil
}

// RecordPayout implements bonus.Service.
func (s *BonusServiceImpl) RecordPayout(ctx context.Context, employeeID string, year int, month time.Month, amount string, companyID string) (bonus.MonthResult, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil || value.LessThanOrEqual(decimal.Zero) {
		return bonus.MonthResult{}, fmt.Errorf("payout amount must be a positive number")
	}

	if _, err := s.payoutRepo.Create(ctx, bonus.Payout{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Year:       year,
		Month:      month,
		Amount:     value,
	}); err != nil {
		return bonus.MonthResult{}, fmt.Errorf("failed to create bonus payout: %w", err)
	}

	return s.MonthSummary(ctx, employeeID, year, month, companyID)
}

// SaveScheme implements bonus.Service.
func (s *BonusServiceImpl) SaveScheme(ctx context.Context, scheme bonus.Scheme) (bonus.Scheme, error) {
	if err := ValidateScheme(scheme); err != nil {
		return bonus.Scheme{}, err
	}

	saved, err := s.schemeRepo.Upsert(ctx, scheme)
	if err != nil {
		return bonus.Scheme{}, fmt.Errorf("failed to save bonus scheme: %w", err)
	}
	return saved, nil
}

func before(a, b monthKey) bool {
	return a.year < b.year || (a.year == b.year && a.month < b.month)
}

func after(a, b monthKey) bool {
	return before(b, a)
}

func next(key monthKey) monthKey {
	if key.month == time.December {
		return monthKey{year: key.year + 1, month: time.January}
	}
	return monthKey{year: key.year, month: key.month + 1}
}
