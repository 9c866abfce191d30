package service

import "errors"

var (
	// ErrInvalidDataProvided wraps every input validation failure.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned by Login both for an unknown email
	// and for a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountNotActive is returned by Login for inactive and banned
	// accounts once the password has been verified.
	ErrAccountNotActive = errors.New("account is not active")

	// ErrInvalidOrExpiredResetToken is returned by RedeemReset when the token
	// was never issued, has expired or was already used.
	ErrInvalidOrExpiredResetToken = errors.New("invalid or expired reset token")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrNoFileProvided = errors.New("no file provided")
	ErrTooManyFiles   = errors.New("too many files provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
