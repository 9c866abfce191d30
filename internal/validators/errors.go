package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName         = errors.New("name is required")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrEmptyPassword     = errors.New("password is required")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
	ErrInvalidStatus     = errors.New("invalid account status")
	ErrInvalidJoinDate   = errors.New("join date must be in YYYY-MM-DD format")
	ErrEmptyResetToken   = errors.New("reset token is required")
	ErrInvalidPage       = errors.New("page is out of range")
	ErrInvalidLimit      = errors.New("limit must be a positive number")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
	ErrInvalidFileName   = errors.New("file name is required")
	ErrNegativeFileSize  = errors.New("file size cannot be negative")
	ErrMissingFileReader = errors.New("file content is required")
)
