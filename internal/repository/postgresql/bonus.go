package postgresql

import (
	"context"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/bonus"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
)

type bonusSchemeRepositoryImpl struct {
	db *database.DB
}

func NewBonusSchemeRepository(db *database.DB) bonus.SchemeRepository {
	return &bonusSchemeRepositoryImpl{db: db}
}

// GetByEmployee implements bonus.SchemeRepository.
func (r *bonusSchemeRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string, companyID string) (bonus.Scheme, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, kind, percent, created_at, updated_at
		FROM bonus_schemes
		WHERE employee_id = $1 AND company_id = $2
	`

	var scheme bonus.Scheme
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&scheme.ID, &scheme.EmployeeID, &scheme.CompanyID, &scheme.Kind, &scheme.Percent,
		&scheme.CreatedAt, &scheme.UpdatedAt,
	)
	if err != nil {
		return bonus.Scheme{}, err
	}

	tiers, err := r.listTiers(ctx, scheme.ID)
	if err != nil {
		return bonus.Scheme{}, err
	}
	scheme.Tiers = tiers

	return scheme, nil
}

// Upsert implements bonus.SchemeRepository. Tiers are replaced wholesale.
func (r *bonusSchemeRepositoryImpl) Upsert(ctx context.Context, scheme bonus.Scheme) (bonus.Scheme, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bonus_schemes (id, employee_id, company_id, kind, percent, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (employee_id) DO UPDATE SET
			kind = EXCLUDED.kind,
			percent = EXCLUDED.percent,
			updated_at = NOW()
		RETURNING id, employee_id, company_id, kind, percent, created_at, updated_at
	`

	var saved bonus.Scheme
	err := q.QueryRow(ctx, query, scheme.EmployeeID, scheme.CompanyID, scheme.Kind, scheme.Percent).Scan(
		&saved.ID, &saved.EmployeeID, &saved.CompanyID, &saved.Kind, &saved.Percent,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return bonus.Scheme{}, err
	}

	if _, err := q.Exec(ctx, `DELETE FROM bonus_scheme_tiers WHERE scheme_id = $1`, saved.ID); err != nil {
		return bonus.Scheme{}, err
	}

	insertTier := `
		INSERT INTO bonus_scheme_tiers (id, scheme_id, threshold, percent)
		VALUES (uuidv7(), $1, $2, $3)
	`
	for _, tier := range scheme.Tiers {
		if _, err := q.Exec(ctx, insertTier, saved.ID, tier.Threshold, tier.Percent); err != nil {
			return bonus.Scheme{}, err
		}
	}
	saved.Tiers = scheme.Tiers

	return saved, nil
}

func (r *bonusSchemeRepositoryImpl) listTiers(ctx context.Context, schemeID string) ([]bonus.Tier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT threshold, percent
		FROM bonus_scheme_tiers
		WHERE scheme_id = $1
		ORDER BY threshold
	`

	rows, err := q.Query(ctx, query, schemeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiers := make([]bonus.Tier, 0)
	for rows.Next() {
		var tier bonus.Tier
		if err := rows.Scan(&tier.Threshold, &tier.Percent); err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	return tiers, rows.Err()
}

type bonusPayoutRepositoryImpl struct {
	db *database.DB
}

func NewBonusPayoutRepository(db *database.DB) bonus.PayoutRepository {
	return &bonusPayoutRepositoryImpl{db: db}
}

// Create implements bonus.PayoutRepository.
func (r *bonusPayoutRepositoryImpl) Create(ctx context.Context, p bonus.Payout) (bonus.Payout, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bonus_payouts (id, employee_id, company_id, year, month, amount, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		RETURNING id, employee_id, company_id, year, month, amount, created_at
	`

	var saved bonus.Payout
	var month int
	err := q.QueryRow(ctx, query, p.EmployeeID, p.CompanyID, p.Year, int(p.Month), p.Amount).Scan(
		&saved.ID, &saved.EmployeeID, &saved.CompanyID, &saved.Year, &month, &saved.Amount, &saved.CreatedAt,
	)
	if err != nil {
		return bonus.Payout{}, err
	}
	saved.Month = time.Month(month)
	return saved, nil
}

// ListByEmployee implements bonus.PayoutRepository.
func (r *bonusPayoutRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]bonus.Payout, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, year, month, amount, created_at
		FROM bonus_payouts
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY year, month
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payouts := make([]bonus.Payout, 0)
	for rows.Next() {
		var p bonus.Payout
		var month int
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.CompanyID, &p.Year, &month, &p.Amount, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Month = time.Month(month)
		payouts = append(payouts, p)
	}

	return payouts, rows.Err()
}
