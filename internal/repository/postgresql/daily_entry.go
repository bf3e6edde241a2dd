package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/timesheet"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailyEntryRepositoryImpl struct {
	db *database.DB
}

func NewDailyEntryRepository(db *database.DB) timesheet.DailyEntryRepository {
	return &dailyEntryRepositoryImpl{db: db}
}

const dailyEntryColumns = `
	id, employee_id, company_id, date,
	gross_revenue, start1, end1, start2, end2, pause, code, meal, remark,
	net_hours, planned_hours, sick_hours, child_sick_hours, short_work_hours,
	vacation_hours, holiday_hours, overtime_delta, forced_overflow,
	required_pause_minutes,
	admin_change_at, admin_change_by, admin_change_type, admin_change_summary,
	created_at, updated_at
`

// Upsert implements timesheet.DailyEntryRepository.
func (r *dailyEntryRepositoryImpl) Upsert(ctx context.Context, e timesheet.DailyEntry) (timesheet.DailyEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_entries (
			id, employee_id, company_id, date,
			gross_revenue, start1, end1, start2, end2, pause, code, meal, remark,
			net_hours, planned_hours, sick_hours, child_sick_hours, short_work_hours,
			vacation_hours, holiday_hours, overtime_delta, forced_overflow,
			required_pause_minutes,
			admin_change_at, admin_change_by, admin_change_type, admin_change_summary,
			created_at, updated_at
		)
		VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20, $21,
			$22,
			$23, $24, $25, $26,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			gross_revenue = EXCLUDED.gross_revenue,
			start1 = EXCLUDED.start1,
			end1 = EXCLUDED.end1,
			start2 = EXCLUDED.start2,
			end2 = EXCLUDED.end2,
			pause = EXCLUDED.pause,
			code = EXCLUDED.code,
			meal = EXCLUDED.meal,
			remark = EXCLUDED.remark,
			net_hours = EXCLUDED.net_hours,
			planned_hours = EXCLUDED.planned_hours,
			sick_hours = EXCLUDED.sick_hours,
			child_sick_hours = EXCLUDED.child_sick_hours,
			short_work_hours = EXCLUDED.short_work_hours,
			vacation_hours = EXCLUDED.vacation_hours,
			holiday_hours = EXCLUDED.holiday_hours,
			overtime_delta = EXCLUDED.overtime_delta,
			forced_overflow = EXCLUDED.forced_overflow,
			required_pause_minutes = EXCLUDED.required_pause_minutes,
			admin_change_at = EXCLUDED.admin_change_at,
			admin_change_by = EXCLUDED.admin_change_by,
			admin_change_type = EXCLUDED.admin_change_type,
			admin_change_summary = EXCLUDED.admin_change_summary,
			updated_at = NOW()
		RETURNING ` + dailyEntryColumns

	var at *time.Time
	var by, changeType, summary *string
	if e.LastAdminChange != nil {
		at = &e.LastAdminChange.At
		by = &e.LastAdminChange.By
		changeType = &e.LastAdminChange.Type
		summary = &e.LastAdminChange.Summary
	}

	row := q.QueryRow(ctx, query,
		e.EmployeeID, e.CompanyID, e.Date,
		e.GrossRevenue, e.Start1, e.End1, e.Start2, e.End2, e.Pause, e.Code, e.Meal, e.Remark,
		e.NetHours, e.PlannedHours, e.SickHours, e.ChildSickHours, e.ShortWorkHours,
		e.VacationHours, e.HolidayHours, e.OvertimeDelta, e.ForcedOverflow,
		e.RequiredPauseMinutes,
		at, by, changeType, summary,
	)
	return scanDailyEntry(row)
}

// GetByEmployeeAndDate implements timesheet.DailyEntryRepository.
func (r *dailyEntryRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*timesheet.DailyEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyEntryColumns + `
		FROM daily_entries
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	entry, err := scanDailyEntry(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// ListByEmployee implements timesheet.DailyEntryRepository.
func (r *dailyEntryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]timesheet.DailyEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyEntryColumns + `
		FROM daily_entries
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDailyEntries(rows)
}

// ListByEmployeeMonth implements timesheet.DailyEntryRepository.
func (r *dailyEntryRepositoryImpl) ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]timesheet.DailyEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyEntryColumns + `
		FROM daily_entries
		WHERE employee_id = $1 AND company_id = $2
		  AND date >= $3 AND date < $4
		ORDER BY date
	`

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	rows, err := q.Query(ctx, query, employeeID, companyID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDailyEntries(rows)
}

// Delete implements timesheet.DailyEntryRepository.
func (r *dailyEntryRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM daily_entries
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, employeeID, date, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}
	return nil
}

func scanDailyEntry(row pgx.Row) (timesheet.DailyEntry, error) {
	var e timesheet.DailyEntry
	var at *time.Time
	var by, changeType, summary *string

	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.CompanyID, &e.Date,
		&e.GrossRevenue, &e.Start1, &e.End1, &e.Start2, &e.End2, &e.Pause, &e.Code, &e.Meal, &e.Remark,
		&e.NetHours, &e.PlannedHours, &e.SickHours, &e.ChildSickHours, &e.ShortWorkHours,
		&e.VacationHours, &e.HolidayHours, &e.OvertimeDelta, &e.ForcedOverflow,
		&e.RequiredPauseMinutes,
		&at, &by, &changeType, &summary,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return timesheet.DailyEntry{}, err
	}

	if at != nil && by != nil && changeType != nil && summary != nil {
		e.LastAdminChange = &timesheet.AdminChange{
			At:      *at,
			By:      *by,
			Type:    *changeType,
			Summary: *summary,
		}
	}
	return e, nil
}

func collectDailyEntries(rows pgx.Rows) ([]timesheet.DailyEntry, error) {
	entries := make([]timesheet.DailyEntry, 0)
	for rows.Next() {
		entry, err := scanDailyEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
