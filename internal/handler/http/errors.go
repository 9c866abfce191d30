// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the "Bearer <token>" form.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Request decoding errors. Handlers wrap them into
// service.ErrInvalidDataProvided so they surface as 400.
var (
	ErrInvalidJSON       = errors.New("invalid JSON was passed")
	ErrInvalidID         = errors.New("invalid id in path")
	ErrInvalidQuery      = errors.New("invalid query parameter")
	ErrInvalidUploadedAt = errors.New("uploadedAt must be an RFC 3339 timestamp")
	ErrInvalidMultipart  = errors.New("invalid multipart body")

	// ErrRequestTooLarge is returned when the body exceeds the configured
	// upload limit.
	ErrRequestTooLarge = errors.New("request body too large")
)
