// Package pgerr classifies Postgres driver errors into domain error kinds.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the adapters react to.
const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
)

// Code returns the SQLSTATE of err, or "" when err did not come from Postgres.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Constraint returns the name of the violated constraint or index, or "".
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return Code(err) == UniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return Code(err) == ForeignKeyViolation
}

// IsConflict reports errors that mean another transaction won a race on the
// same rows.
func IsConflict(err error) bool {
	switch Code(err) {
	case SerializationFailure, DeadlockDetected:
		return true
	default:
		return false
	}
}
