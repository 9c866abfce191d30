package service

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, request models.LoginRequest) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// PasswordResetService issues and redeems single-use password reset tokens.
type PasswordResetService interface {
	// RequestReset returns the raw reset token. Only its digest is stored.
	RequestReset(ctx context.Context, request models.ForgotPasswordRequest) (string, error)
	RedeemReset(ctx context.Context, request models.ResetPasswordRequest) error
}

type AccountService interface {
	Register(ctx context.Context, request models.RegisterRequest) (models.Account, error)
	GetAccount(ctx context.Context, id int64) (models.Account, error)
	ListAccounts(ctx context.Context, filter models.AccountFilter, page models.PageRequest) (models.Page[models.Account], error)

	// UpdateProfile applies update and, when upload is not nil, attaches
	// the file to the account.
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate, upload *models.FileUpload) error
	DeleteAccount(ctx context.Context, id int64) error
}

type FileService interface {
	Upload(ctx context.Context, userID int64, uploads ...models.FileUpload) ([]models.FileAttachment, error)
	ListFiles(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.FileAttachment], error)
	UpdateFile(ctx context.Context, userID, fileID int64, upload models.FileUpload) (models.FileAttachment, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AccountServiceWrapper defines middleware composition for AccountService.
// Implementations wrap an existing AccountService to add behavior such as
// validation.
type AccountServiceWrapper interface {
	Wrap(AccountService) AccountService
}
