package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/jackc/pgerrcode"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository] over the "users" table.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var a models.Account
	var status string
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &status, &a.Name, &a.Phone, &a.Location,
		&a.CompanyName, &a.Position, &a.CustomerID, &a.JoinDate, &a.CreatedAt, &a.UpdatedAt)
	a.Status = models.AccountStatus(status)

	return a, err
}

// CreateAccount inserts the account and returns the stored row.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → [StoreError] wrapping [ErrExecutingQuery].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount,
		account.Email, account.PasswordHash, string(account.Status), account.Name, account.Phone,
		account.Location, account.CompanyName, account.Position, account.CustomerID, account.JoinDate)

	created, err := scanAccount(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Debug().Str("func", "*accountRepository.CreateAccount").Msg("email already taken")
			return models.Account{}, ErrEmailAlreadyExists
		}

		return models.Account{}, r.db.storeError(ctx, "*accountRepository.CreateAccount", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, findAccountByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, r.db.storeError(ctx, "*accountRepository.FindAccountByEmail", ErrScanningRow, err)
	}

	return account, nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, id int64) (models.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, findAccountByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, r.db.storeError(ctx, "*accountRepository.FindAccountByID", ErrScanningRow, err)
	}

	return account, nil
}

// ListAccounts runs the count and the page query built by squirrel.
func (r *accountRepository) ListAccounts(ctx context.Context, filter models.AccountFilter, page models.PageRequest) ([]models.Account, int64, error) {
	const op = "*accountRepository.ListAccounts"

	countQuery, countArgs, err := buildCountAccountsQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, r.db.storeError(ctx, op, ErrExecutingQuery, err)
	}
	if total == 0 {
		return []models.Account{}, 0, nil
	}

	query, args, err := buildListAccountsQuery(filter, page)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, r.db.storeError(ctx, op, ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0, page.Limit)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, r.db.storeError(ctx, op, ErrScanningRows, err)
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, r.db.storeError(ctx, op, ErrScanningRows, err)
	}

	return accounts, total, nil
}

// UpdateProfile writes the non-nil fields of update. A missing account is
// reported as [ErrAccountNotFound].
func (r *accountRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) error {
	query, args, err := buildUpdateProfileQuery(id, update)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.db.storeError(ctx, "*accountRepository.UpdateProfile", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrAccountNotFound)
}

// DeleteAccount removes the account; its attachments go with it through
// ON DELETE CASCADE.
func (r *accountRepository) DeleteAccount(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return r.db.storeError(ctx, "*accountRepository.DeleteAccount", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrAccountNotFound)
}

func (r *accountRepository) SetResetToken(ctx context.Context, email, tokenDigest string, expiresAt time.Time) error {
	result, err := r.db.ExecContext(ctx, setResetToken, tokenDigest, expiresAt, email)
	if err != nil {
		return r.db.storeError(ctx, "*accountRepository.SetResetToken", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrAccountNotFound)
}

func (r *accountRepository) RedeemResetToken(ctx context.Context, tokenDigest, passwordHash string, now time.Time) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, redeemResetToken, passwordHash, tokenDigest, now).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrResetTokenNotFound
		}
		return 0, r.db.storeError(ctx, "*accountRepository.RedeemResetToken", ErrExecutingQuery, err)
	}

	return id, nil
}

// expectAffected maps "zero rows touched" to notFound.
func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}
