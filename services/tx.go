package services

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxTxRetries = 3

// runSerializable executes fn in a serializable transaction and retries a
// bounded number of times when Postgres aborts it with a serialization
// failure. The balance-sufficiency check reads a derived aggregate, so
// anything weaker lets two concurrent plays both pass the check and
// overdraw the account.
func runSerializable(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	if db.Dialector.Name() != "postgres" {
		// The sqlite driver used in tests rejects explicit isolation
		// levels; it has a single writer anyway.
		opts = &sql.TxOptions{}
	}

	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = db.Transaction(fn, opts)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return conflictf("transaction conflict, try again")
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// lockForUpdate adds FOR UPDATE on dialects that support it. Locking the
// user row serializes plays and deposit approvals per user without making
// unrelated users conflict.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
