package store

import (
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells [Transactor.WithinTx] whether a failed
// transaction may be run again.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// retryableCodes are the SQLSTATE codes after which a ticket purchase or
// sale update is attempted again: lost connections, serialization failures
// and deadlocks between concurrent seat reservations.
var retryableCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for errors coming
// from the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify returns [Retryable] for transient SQLSTATE codes and for
// driver.ErrBadConn. Constraint violations and anything unknown are
// [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}
	if errors.Is(err, driver.ErrBadConn) {
		return Retryable
	}
	if _, ok := retryableCodes[postgresError(err)]; ok {
		return Retryable
	}

	return NonRetryable
}

// postgresError returns the SQLSTATE code of err, or "" when err did not
// come from PostgreSQL.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
