package postgresql

import (
	"context"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/closing"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type closingRepositoryImpl struct {
	db *database.DB
}

func NewClosingRepository(db *database.DB) closing.Repository {
	return &closingRepositoryImpl{db: db}
}

// Get implements closing.Repository.
func (r *closingRepositoryImpl) Get(ctx context.Context, employeeID string, year int, month time.Month, companyID string) (closing.MonthlyClosing, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, year, month, status, closed_at, closed_by, created_at, updated_at
		FROM monthly_closings
		WHERE employee_id = $1 AND year = $2 AND month = $3 AND company_id = $4
	`

	return scanClosing(q.QueryRow(ctx, query, employeeID, year, int(month), companyID))
}

// Upsert implements closing.Repository.
func (r *closingRepositoryImpl) Upsert(ctx context.Context, c closing.MonthlyClosing) (closing.MonthlyClosing, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_closings (id, employee_id, company_id, year, month, status, closed_at, closed_by, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			status = EXCLUDED.status,
			closed_at = EXCLUDED.closed_at,
			closed_by = EXCLUDED.closed_by,
			updated_at = NOW()
		RETURNING id, employee_id, company_id, year, month, status, closed_at, closed_by, created_at, updated_at
	`

	return scanClosing(q.QueryRow(ctx, query,
		c.EmployeeID, c.CompanyID, c.Year, int(c.Month), c.Status, c.ClosedAt, c.ClosedBy,
	))
}

// ListByEmployee implements closing.Repository.
func (r *closingRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]closing.MonthlyClosing, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, year, month, status, closed_at, closed_by, created_at, updated_at
		FROM monthly_closings
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	closings := make([]closing.MonthlyClosing, 0)
	for rows.Next() {
		c, err := scanClosing(rows)
		if err != nil {
			return nil, err
		}
		closings = append(closings, c)
	}

	return closings, rows.Err()
}

func scanClosing(row pgx.Row) (closing.MonthlyClosing, error) {
	var c closing.MonthlyClosing
	var month int
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CompanyID, &c.Year, &month, &c.Status,
		&c.ClosedAt, &c.ClosedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return closing.MonthlyClosing{}, err
	}
	c.Month = time.Month(month)
	return c, nil
}
