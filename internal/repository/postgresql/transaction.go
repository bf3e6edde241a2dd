package postgresql

import (
	"context"
	"fmt"

	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// WithTransaction executes fn inside a database transaction
func WithTransaction(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				fmt.Printf("rollback error during panic recovery: %v\n", rbErr)
			}
			panic(p)
		}
	}()

	// Execute function
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value("tx").(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

// LockEmployee takes a transaction-scoped advisory lock on the employee.
// Entry writes and ledger recomputes for the same employee serialize on it;
// the lock releases with the transaction. Must run inside WithTransaction.
func LockEmployee(ctx context.Context, employeeID string) error {
	tx, ok := ctx.Value("tx").(pgx.Tx)
	if !ok {
		return fmt.Errorf("employee lock requires a transaction")
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("failed to lock employee: %w", err)
	}
	return nil
}
