package postgresql

import (
	"context"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/shiftplan"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
)

type planDayRepositoryImpl struct {
	db *database.DB
}

func NewPlanDayRepository(db *database.DB) shiftplan.PlanDayRepository {
	return &planDayRepositoryImpl{db: db}
}

// ListByEmployeeRange implements shiftplan.PlanDayRepository.
func (r *planDayRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]shiftplan.PlanDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pd.id, pd.employee_id, pd.company_id, pd.date, pd.created_at, pd.updated_at,
			   s.position, s.available, s.start_time, s.end_time, s.pause_minutes, s.branch, s.label
		FROM plan_days pd
		JOIN plan_day_segments s ON s.plan_day_id = pd.id
		WHERE pd.employee_id = $1 AND pd.company_id = $2
		  AND pd.date >= $3 AND pd.date <= $4
		ORDER BY pd.date, s.position
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]shiftplan.PlanDay, 0)
	for rows.Next() {
		var day shiftplan.PlanDay
		var seg shiftplan.Segment
		var start, end *string
		if err := rows.Scan(
			&day.ID, &day.EmployeeID, &day.CompanyID, &day.Date, &day.CreatedAt, &day.UpdatedAt,
			&seg.Position, &seg.Available, &start, &end, &seg.PauseMinutes, &seg.Branch, &seg.Label,
		); err != nil {
			return nil, err
		}
		if start != nil {
			seg.Start = *start
		}
		if end != nil {
			seg.End = *end
		}

		// Rows arrive ordered by date then position; consecutive rows of
		// the same day fold into one PlanDay.
		if n := len(days); n > 0 && days[n-1].ID == day.ID {
			days[n-1].Segments = append(days[n-1].Segments, seg)
			continue
		}
		day.Segments = []shiftplan.Segment{seg}
		days = append(days, day)
	}

	return days, rows.Err()
}

// Upsert implements shiftplan.PlanDayRepository. The day's segments are
// replaced wholesale.
func (r *planDayRepositoryImpl) Upsert(ctx context.Context, day shiftplan.PlanDay) (shiftplan.PlanDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO plan_days (id, employee_id, company_id, date, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET updated_at = NOW()
		RETURNING id, employee_id, company_id, date, created_at, updated_at
	`

	var saved shiftplan.PlanDay
	err := q.QueryRow(ctx, query, day.EmployeeID, day.CompanyID, day.Date).Scan(
		&saved.ID, &saved.EmployeeID, &saved.CompanyID, &saved.Date, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return shiftplan.PlanDay{}, err
	}

	if _, err := q.Exec(ctx, `DELETE FROM plan_day_segments WHERE plan_day_id = $1`, saved.ID); err != nil {
		return shiftplan.PlanDay{}, err
	}

	insertSegment := `
		INSERT INTO plan_day_segments (id, plan_day_id, position, available, start_time, end_time, pause_minutes, branch, label)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, seg := range day.Segments {
		var start, end *string
		if seg.Start != "" {
			start = &seg.Start
		}
		if seg.End != "" {
			end = &seg.End
		}
		if _, err := q.Exec(ctx, insertSegment,
			saved.ID, seg.Position, seg.Available, start, end, seg.PauseMinutes, seg.Branch, seg.Label,
		); err != nil {
			return shiftplan.PlanDay{}, err
		}
	}
	saved.Segments = day.Segments

	return saved, nil
}

// Delete implements shiftplan.PlanDayRepository. Segments go with the day
// via the foreign key cascade.
func (r *planDayRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM plan_days
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	_, err := q.Exec(ctx, query, employeeID, date, companyID)
	return err
}

type templateRepositoryImpl struct {
	db *database.DB
}

func NewTemplateRepository(db *database.DB) shiftplan.TemplateRepository {
	return &templateRepositoryImpl{db: db}
}

// ListByEmployee implements shiftplan.TemplateRepository.
func (r *templateRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]shiftplan.TemplateRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wt.id, wt.employee_id, wt.weekday, wt.week, wt.start_time, wt.end_time, wt.pause_minutes
		FROM weekly_templates wt
		JOIN employees e ON wt.employee_id = e.id
		WHERE wt.employee_id = $1 AND e.company_id = $2
		ORDER BY wt.week, wt.weekday
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]shiftplan.TemplateRow, 0)
	for rows.Next() {
		var row shiftplan.TemplateRow
		if err := rows.Scan(
			&row.ID, &row.EmployeeID, &row.Weekday, &row.Week, &row.Start, &row.End, &row.PauseMinutes,
		); err != nil {
			return nil, err
		}
		templates = append(templates, row)
	}

	return templates, rows.Err()
}
