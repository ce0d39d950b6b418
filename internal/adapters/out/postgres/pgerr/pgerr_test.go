package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"deliveryno/internal/adapters/out/postgres/pgerr"
	"deliveryno/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	testCases := []struct {
		name string
		code string
		want error
	}{
		{"unique violation", pgerr.UniqueViolation, errs.ErrValueIsInvalid},
		{"serialization failure", pgerr.SerializationFailure, errs.ErrTransient},
		{"deadlock", pgerr.DeadlockDetected, errs.ErrTransient},
		{"lock not available", pgerr.LockNotAvailable, errs.ErrTransient},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tc.code})

			require.ErrorIs(t, pgerr.Translate(err, "stock"), tc.want)
		})
	}
}

func TestTranslate_PassesOtherErrors(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Same(t, plain, pgerr.Translate(plain, "stock"))

	check := &pgconn.PgError{Code: "23514"}
	assert.Same(t, check, pgerr.Translate(check, "stock"))

	assert.NoError(t, pgerr.Translate(nil, "stock"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, pgerr.IsUniqueViolation(&pgconn.PgError{Code: pgerr.UniqueViolation}))
	assert.False(t, pgerr.IsUniqueViolation(errors.New("boom")))
}
