// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a typed Go client for the accounts HTTP API.
//
// [AccountsClient] hides request building, bearer token handling and the
// multipart encoding of uploads. Non-2xx responses are mapped to the
// sentinel errors in errors.go, so callers can use [errors.Is]
// (e.g. [ErrConflict] for a duplicate email, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

// UploadFile is one file sent by the client.
type UploadFile = models.FileUpload

// ListUsersQuery carries the filter and paging parameters of ListUsers.
type ListUsersQuery struct {
	Filter models.AccountFilter
	Page   models.PageRequest
}

// AccountsClient talks to a running accounts server.
type AccountsClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	// Login calls it on success.
	SetToken(token string)

	// Token returns the stored bearer token, empty when none is set.
	Token() string

	Register(ctx context.Context, req models.RegisterRequest) error

	// Login authenticates and keeps the issued token for later calls.
	Login(ctx context.Context, req models.LoginRequest) (string, error)

	// ForgotPassword returns the raw reset token issued by the server.
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error

	ListUsers(ctx context.Context, query ListUsersQuery) (models.Page[models.Account], error)
	GetUser(ctx context.Context, id int64) (models.Account, error)

	// UpdateUser applies update and, when file is non-nil, attaches it in
	// the same multipart request.
	UpdateUser(ctx context.Context, id int64, update models.ProfileUpdate, file *UploadFile) error
	DeleteUser(ctx context.Context, id int64) error

	UploadFile(ctx context.Context, userID int64, file UploadFile) (models.FileAttachment, error)
	UploadFiles(ctx context.Context, userID int64, files []UploadFile) ([]models.FileAttachment, error)
	ListUserFiles(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.FileAttachment], error)
	UpdateUserFile(ctx context.Context, userID, fileID int64, file UploadFile) (models.FileAttachment, error)

	// Health returns the version reported by the server.
	Health(ctx context.Context) (string, error)
}
