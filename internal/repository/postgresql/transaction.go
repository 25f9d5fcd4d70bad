package postgresql

import (
	"context"
	"fmt"

	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type txKey string

const TxKey txKey = "tx"

// WithTransaction runs fn inside a single transaction. The transaction is
// exposed to repositories through the context, so every repository call made
// from fn shares it.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, TxKey, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetQuerier returns the transaction bound to the context when there is one,
// otherwise the shared pool.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(TxKey).(database.Querier); ok {
		return tx
	}
	return db
}
