package adapter

import "errors"

// Sentinel errors returned by the client. Each wraps the server's message,
// so callers match with errors.Is and still see the reason.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRequestTooLarge     = errors.New("request too large")
	ErrInternalServerError = errors.New("internal server error")
)
