package store

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

// MemoryDSN selects the in-memory store instead of PostgreSQL.
const MemoryDSN = "memory://"

// memoryDB holds the state shared by the in-memory repositories. A single
// mutex serializes every operation, which gives reset token redemption the
// same exactly-once behavior as the conditional UPDATE in PostgreSQL.
type memoryDB struct {
	mu sync.Mutex

	accounts      map[int64]*memoryAccount
	files         map[int64]models.FileAttachment
	nextAccountID int64
	nextFileID    int64

	now func() time.Time
}

type memoryAccount struct {
	account     models.Account
	resetDigest string
	resetExpire time.Time
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		accounts: make(map[int64]*memoryAccount),
		files:    make(map[int64]models.FileAttachment),
		now:      time.Now,
	}
}

type memoryAccountRepository struct {
	db     *memoryDB
	logger *logger.Logger
}

type memoryFileRepository struct {
	db     *memoryDB
	logger *logger.Logger
}

// NewMemoryRepositories returns account and file repositories sharing one
// in-memory database.
func NewMemoryRepositories(log *logger.Logger) (AccountRepository, FileRepository) {
	log.Debug().Msg("creating in-memory repositories")

	db := newMemoryDB()
	return &memoryAccountRepository{db: db, logger: log}, &memoryFileRepository{db: db, logger: log}
}

func (r *memoryAccountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.findByEmail(account.Email) != nil {
		return models.Account{}, ErrEmailAlreadyExists
	}

	r.db.nextAccountID++
	now := r.db.now()
	account.ID = r.db.nextAccountID
	account.CreatedAt = now
	account.UpdatedAt = now
	account.Files = nil
	if account.JoinDate == "" {
		account.JoinDate = now.Format(time.DateOnly)
	}

	r.db.accounts[account.ID] = &memoryAccount{account: account}

	return account, nil
}

func (r *memoryAccountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored := r.findByEmail(email)
	if stored == nil {
		return models.Account{}, ErrAccountNotFound
	}

	return stored.account, nil
}

func (r *memoryAccountRepository) FindAccountByID(ctx context.Context, id int64) (models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.accounts[id]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}

	return stored.account, nil
}

func (r *memoryAccountRepository) ListAccounts(ctx context.Context, filter models.AccountFilter, page models.PageRequest) ([]models.Account, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	matched := make([]models.Account, 0)
	for _, stored := range r.db.accounts {
		if matchesFilter(stored.account, filter) {
			matched = append(matched, stored.account)
		}
	}

	slices.SortFunc(matched, func(a, b models.Account) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return paginate(matched, page), int64(len(matched)), nil
}

func (r *memoryAccountRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}

	a := &stored.account
	setIfPresent(&a.Name, update.Name)
	setIfPresent(&a.Phone, update.Phone)
	setIfPresent(&a.Location, update.Location)
	setIfPresent(&a.CompanyName, update.CompanyName)
	setIfPresent(&a.Position, update.Position)
	setIfPresent(&a.CustomerID, update.CustomerID)
	setIfPresent(&a.JoinDate, update.JoinDate)
	if update.Status != nil {
		a.Status = *update.Status
	}
	a.UpdatedAt = r.db.now()

	return nil
}

// DeleteAccount removes the account and, like ON DELETE CASCADE, its files.
func (r *memoryAccountRepository) DeleteAccount(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.accounts[id]; !ok {
		return ErrAccountNotFound
	}

	delete(r.db.accounts, id)
	for fileID, file := range r.db.files {
		if file.UserID == id {
			delete(r.db.files, fileID)
		}
	}

	return nil
}

func (r *memoryAccountRepository) SetResetToken(ctx context.Context, email, tokenDigest string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored := r.findByEmail(email)
	if stored == nil {
		return ErrAccountNotFound
	}

	stored.resetDigest = tokenDigest
	stored.resetExpire = expiresAt
	stored.account.UpdatedAt = r.db.now()

	return nil
}

func (r *memoryAccountRepository) RedeemResetToken(ctx context.Context, tokenDigest, passwordHash string, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if tokenDigest == "" {
		return 0, ErrResetTokenNotFound
	}

	for _, stored := range r.db.accounts {
		if !utils.EqualDigests(stored.resetDigest, tokenDigest) || !stored.resetExpire.After(now) {
			continue
		}

		stored.account.PasswordHash = passwordHash
		stored.account.UpdatedAt = r.db.now()
		stored.resetDigest = ""
		stored.resetExpire = time.Time{}

		return stored.account.ID, nil
	}

	return 0, ErrResetTokenNotFound
}

// findByEmail must be called with the mutex held.
func (r *memoryAccountRepository) findByEmail(email string) *memoryAccount {
	for _, stored := range r.db.accounts {
		if stored.account.Email == email {
			return stored
		}
	}

	return nil
}

func (r *memoryFileRepository) CreateFile(ctx context.Context, file models.FileAttachment) (models.FileAttachment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.accounts[file.UserID]; !ok {
		return models.FileAttachment{}, ErrAccountNotFound
	}

	r.db.nextFileID++
	file.ID = r.db.nextFileID
	if file.UploadedAt.IsZero() {
		file.UploadedAt = r.db.now()
	}
	r.db.files[file.ID] = file

	return file, nil
}

func (r *memoryFileRepository) FindFile(ctx context.Context, userID, fileID int64) (models.FileAttachment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	file, ok := r.db.files[fileID]
	if !ok || file.UserID != userID {
		return models.FileAttachment{}, ErrFileNotFound
	}

	return file, nil
}

func (r *memoryFileRepository) ListFiles(ctx context.Context, userID int64, page models.PageRequest) ([]models.FileAttachment, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	files := r.userFiles(userID)
	return paginate(files, page), int64(len(files)), nil
}

func (r *memoryFileRepository) AllFiles(ctx context.Context, userID int64) ([]models.FileAttachment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.userFiles(userID), nil
}

func (r *memoryFileRepository) UpdateFile(ctx context.Context, file models.FileAttachment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.files[file.ID]
	if !ok || stored.UserID != file.UserID {
		return ErrFileNotFound
	}

	stored.FileName = file.FileName
	stored.FilePath = file.FilePath
	stored.UploadedAt = file.UploadedAt
	r.db.files[file.ID] = stored

	return nil
}

// userFiles must be called with the mutex held.
func (r *memoryFileRepository) userFiles(userID int64) []models.FileAttachment {
	files := make([]models.FileAttachment, 0)
	for _, file := range r.db.files {
		if file.UserID == userID {
			files = append(files, file)
		}
	}

	slices.SortFunc(files, func(a, b models.FileAttachment) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return files
}

func matchesFilter(a models.Account, f models.AccountFilter) bool {
	contains := func(value, part string) bool {
		return part == "" || strings.Contains(strings.ToLower(value), strings.ToLower(part))
	}

	return contains(a.Name, f.Name) &&
		contains(a.Email, f.Email) &&
		contains(a.Phone, f.Phone) &&
		contains(a.Location, f.Location) &&
		contains(a.CompanyName, f.CompanyName) &&
		contains(a.Position, f.Position) &&
		contains(a.CustomerID, f.CustomerID) &&
		(f.JoinDate == "" || a.JoinDate == f.JoinDate) &&
		(f.Status == "" || a.Status == f.Status)
}

func paginate[T any](items []T, page models.PageRequest) []T {
	offset := page.Offset()
	if offset < 0 || offset >= len(items) {
		return []T{}
	}

	end := min(offset+page.Limit, len(items))
	return items[offset:end]
}

func setIfPresent(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
