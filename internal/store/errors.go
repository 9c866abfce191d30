package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an account with the same
	// (normalized) email is already stored.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrFileNotFound is returned when a file attachment does not exist or
	// belongs to a different account.
	ErrFileNotFound = errors.New("file was not found")

	// ErrResetTokenNotFound is returned by RedeemResetToken when no account
	// holds an unexpired reset token with the given digest. The token was
	// never issued, has expired or was already consumed.
	ErrResetTokenNotFound = errors.New("reset token was not found")

	// ErrUnsupportedFileRef is returned when a stored file reference escapes
	// the storage root.
	ErrUnsupportedFileRef = errors.New("unsupported file reference")
)

// Low-level database operation errors. They are wrapped into a [StoreError]
// when a SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a dynamic SQL query
	// fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or a statement
	// with a RETURNING clause fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (UPDATE, DELETE) without result rows fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrStoringFile is returned when the blob storage backend fails.
	ErrStoringFile = errors.New("failed to store file")
)

// StoreError is a persistence failure that domain logic cannot interpret.
// It is surfaced to the caller as an internal error and never retried here;
// Classification tells whether retrying the operation could succeed.
type StoreError struct {
	Op             string
	Classification ErrorClassification
	Err            error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure was transient.
func (e *StoreError) Retryable() bool {
	return e.Classification == Retryable
}
