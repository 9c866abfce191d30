package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accounts/models"
)

// AccountRepository persists accounts and their password reset state.
// Emails passed in are expected to be normalized already.
type AccountRepository interface {
	// CreateAccount inserts a new account and returns it with the server
	// assigned fields populated. Returns ErrEmailAlreadyExists on duplicates.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	FindAccountByID(ctx context.Context, id int64) (models.Account, error)

	// ListAccounts returns one page of accounts matching filter, newest
	// first, and the total number of matches.
	ListAccounts(ctx context.Context, filter models.AccountFilter, page models.PageRequest) ([]models.Account, int64, error)

	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) error
	DeleteAccount(ctx context.Context, id int64) error

	// SetResetToken stores the digest of a fresh reset token on the account
	// with the given email, replacing any previous one.
	SetResetToken(ctx context.Context, email, tokenDigest string, expiresAt time.Time) error

	// RedeemResetToken atomically replaces the password hash of the account
	// holding tokenDigest, provided the token expires after now, and clears
	// the reset fields. Returns the account id or ErrResetTokenNotFound.
	RedeemResetToken(ctx context.Context, tokenDigest, passwordHash string, now time.Time) (int64, error)
}

// FileRepository persists file attachment records.
type FileRepository interface {
	// CreateFile records an attachment. Returns ErrAccountNotFound when the
	// owner does not exist.
	CreateFile(ctx context.Context, file models.FileAttachment) (models.FileAttachment, error)

	FindFile(ctx context.Context, userID, fileID int64) (models.FileAttachment, error)

	// ListFiles returns one page of the user's attachments, newest first,
	// and the total count.
	ListFiles(ctx context.Context, userID int64, page models.PageRequest) ([]models.FileAttachment, int64, error)

	// AllFiles returns every attachment of the user, newest first.
	AllFiles(ctx context.Context, userID int64) ([]models.FileAttachment, error)

	// UpdateFile rewrites name, path and upload time of an attachment.
	UpdateFile(ctx context.Context, file models.FileAttachment) error
}

// FileStorage stores attachment blobs.
type FileStorage interface {
	// Save writes the upload under key and returns the reference to record.
	Save(ctx context.Context, key string, upload models.FileUpload) (string, error)

	// Delete removes a blob by reference. Missing blobs are not an error.
	Delete(ctx context.Context, ref string) error
}
