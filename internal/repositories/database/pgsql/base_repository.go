package pgsql

import (
	"context"
	"errors"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ctxKey string

const txKey ctxKey = "pgx_tx"

// querier is the query surface shared by *pgxpool.Pool and pgx.Tx.
// Repositories route through it so the same method works inside and
// outside a coordinator transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// conn returns the transaction bound to ctx when one is open, otherwise
// the pool.
func (r *BaseRepository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// TxManager implements the TransactionManager port over a pgx pool. The
// open transaction is carried in the context handed to fn; every
// repository sharing the pool joins it automatically.
type TxManager struct {
	Pool *pgxpool.Pool
}

// NewTxManager creates a TransactionManager backed by the given pool.
func NewTxManager(pool *pgxpool.Pool) portsrepo.TransactionManager {
	return &TxManager{Pool: pool}
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// WithTransaction begins a transaction, runs fn with it bound to the
// context, and commits on nil error. Rollback is deferred so the
// transaction is released on every exit path, panics included.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		// A no-op once committed.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}
