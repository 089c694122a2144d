package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const DBTxKey contextKey = "db_tx"

// WithTx begins a transaction on the request-scoped connection and returns a
// derived context carrying it. Callers must Commit or Rollback the returned
// transaction.
func WithTx(ctx context.Context) (context.Context, pgx.Tx, error) {
	conn := ConnFromContext(ctx)
	if conn == nil {
		return ctx, nil, fmt.Errorf("no database connection in context")
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("begin transaction: %w", err)
	}

	return context.WithValue(ctx, DBTxKey, tx), tx, nil
}

// TxFromContext retrieves the active transaction from context, or nil when
// the caller is not running inside one.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(DBTxKey).(pgx.Tx)
	return tx
}
