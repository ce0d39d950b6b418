// Package pgerr maps PostgreSQL failures onto the application error kinds.
package pgerr

import (
	"errors"

	"deliveryno/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes handled by Translate.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
)

// Code returns the SQLSTATE of err, or "" when err is not a PostgreSQL error.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err was raised by a unique constraint.
func IsUniqueViolation(err error) bool {
	return Code(err) == UniqueViolation
}

// Translate turns a unique violation into errs.ValueIsInvalidError for param
// and contention failures into errs.TransientError. Other errors pass through.
func Translate(err error, param string) error {
	switch Code(err) {
	case "":
		return err
	case UniqueViolation:
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	case SerializationFailure, DeadlockDetected, LockNotAvailable:
		return errs.NewTransientErrorWithCause("write "+param, err)
	}
	return err
}
