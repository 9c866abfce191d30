package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "bad conn", err: driver.ErrBadConn, want: Retryable},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: Retryable},
		{name: "serialization failure", err: pgError(pgerrcode.SerializationFailure), want: Retryable},
		{name: "deadlock wrapped", err: fmt.Errorf("wrap: %w", pgError(pgerrcode.DeadlockDetected)), want: Retryable},
		{name: "too many connections", err: pgError(pgerrcode.TooManyConnections), want: Retryable},
		{name: "admin shutdown", err: pgError(pgerrcode.AdminShutdown), want: Retryable},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: NonRetryable},
		{name: "check violation", err: pgError(pgerrcode.CheckViolation), want: NonRetryable},
		{name: "undefined table", err: pgError(pgerrcode.UndefinedTable), want: NonRetryable},
		{name: "unknown code", err: pgError("XX999"), want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestStoreError_UnwrapsSentinel(t *testing.T) {
	cause := pgError(pgerrcode.SyntaxError)
	err := &StoreError{
		Op:             "op",
		Classification: NonRetryable,
		Err:            fmt.Errorf("%w: %w", ErrExecutingQuery, cause),
	}

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, cause)
	assert.False(t, err.Retryable())
	assert.Contains(t, err.Error(), "op: ")
}
