package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
)

type txKey struct{}

// maxTxAttempts bounds how many times a transaction failing with a retryable
// error (deadlock, serialization failure, lost connection) is run.
const maxTxAttempts = 3

// executor is the subset of *sql.DB and *sql.Tx used by repositories.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithinTx runs fn in a transaction carried by the context passed to fn.
// Repositories called with that context join the transaction. Nested calls
// reuse the outer transaction. fn may run more than once if the transaction
// fails with a retryable error.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if err == nil || !db.Retryable(err) || ctx.Err() != nil {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*DB.WithinTx").
			Int("attempt", attempt).
			Msg("retrying transaction")
	}

	return err
}

func (db *DB) runTx(ctx context.Context, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*DB.WithinTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*DB.WithinTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// conn returns the transaction carried by ctx, or the pool.
func (db *DB) conn(ctx context.Context) executor {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}

	return db.DB
}
