package postgresql

import (
	"context"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/overtime"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
)

type overtimePayoutRepositoryImpl struct {
	db *database.DB
}

func NewOvertimePayoutRepository(db *database.DB) overtime.PayoutRepository {
	return &overtimePayoutRepositoryImpl{db: db}
}

// Create implements overtime.PayoutRepository.
func (r *overtimePayoutRepositoryImpl) Create(ctx context.Context, p overtime.Payout) (overtime.Payout, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_payouts (id, employee_id, company_id, date, hours, note, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		RETURNING id, employee_id, company_id, date, hours, note, created_at
	`

	var saved overtime.Payout
	err := q.QueryRow(ctx, query, p.EmployeeID, p.CompanyID, p.Date, p.Hours, p.Note).Scan(
		&saved.ID, &saved.EmployeeID, &saved.CompanyID, &saved.Date, &saved.Hours, &saved.Note, &saved.CreatedAt,
	)
	if err != nil {
		return overtime.Payout{}, err
	}
	return saved, nil
}

// ListByEmployee implements overtime.PayoutRepository.
func (r *overtimePayoutRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]overtime.Payout, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, hours, note, created_at
		FROM overtime_payouts
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payouts := make([]overtime.Payout, 0)
	for rows.Next() {
		var p overtime.Payout
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.CompanyID, &p.Date, &p.Hours, &p.Note, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}

	return payouts, rows.Err()
}

// Delete implements overtime.PayoutRepository.
func (r *overtimePayoutRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM overtime_payouts
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrPayoutNotFound
	}
	return nil
}
