package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert or update trips a unique
// constraint. The constraint is the arbiter for the one-review-per-title rule
// and the user identity rule, so services must treat this as a Conflict, not
// an operational failure.
var ErrDuplicate = errors.New("duplicate key value")

const pgUniqueViolation = "23505"

// translateError maps driver-level constraint violations to ErrDuplicate and
// leaves everything else untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}
