package store

import (
	"context"
	"database/sql"
)

// DBTX is the minimal database surface the stores depend on. Both *sql.DB
// and *sql.Tx satisfy it, so a store built over a transaction (via WithTx)
// runs the same queries inside that transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
