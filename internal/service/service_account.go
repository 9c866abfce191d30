package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/models"
)

// accountService expects validated input; see NewAccountValidationService.
type accountService struct {
	accountRepository store.AccountRepository
	fileRepository    store.FileRepository
	fileStorage       store.FileStorage
	fileService       FileService
	hasher            *PasswordHasher
	now               func() time.Time

	logger *logger.Logger
}

func NewAccountService(storages *store.Storages, fileService FileService, hasher *PasswordHasher, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepository: storages.AccountRepository,
		fileRepository:    storages.FileRepository,
		fileStorage:       storages.FileStorage,
		fileService:       fileService,
		hasher:            hasher,
		now:               time.Now,
		logger:            logger,
	}
}

// Register creates an account. The email is stored trimmed and lower-cased,
// the status defaults to active and the join date to today. Returns store.ErrEmailAlreadyExists when the
// email is taken.
func (s *accountService) Register(ctx context.Context, request models.RegisterRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	passwordHash, err := s.hasher.Hash(ctx, request.Password)
	if err != nil {
		log.Err(err).Msg("hashing password failed")
		return models.Account{}, fmt.Errorf("error hashing password: %w", err)
	}

	status := request.Status
	if status == "" {
		status = models.StatusActive
	}

	joinDate := request.JoinDate
	if joinDate == "" {
		joinDate = s.now().Format(time.DateOnly)
	}

	account, err := s.accountRepository.CreateAccount(ctx, models.Account{
		Email:        normalizeEmail(request.Email),
		PasswordHash: passwordHash,
		Status:       status,
		Profile: models.Profile{
			Name:        strings.TrimSpace(request.Name),
			Phone:       request.Phone,
			Location:    request.Location,
			CompanyName: request.CompanyName,
			Position:    request.Position,
			CustomerID:  request.CustomerID,
			JoinDate:    joinDate,
		},
	})
	if err != nil {
		if !errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Err(err).Msg("account creation ended with error")
		}
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	log.Info().Int64("account_id", account.ID).Msg("account registered")

	return account, nil
}

// GetAccount returns the account together with all of its attachments.
func (s *accountService) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	account, err := s.accountRepository.FindAccountByID(ctx, id)
	if err != nil {
		return models.Account{}, fmt.Errorf("error finding account: %w", err)
	}

	if account.Files, err = s.fileRepository.AllFiles(ctx, id); err != nil {
		return models.Account{}, fmt.Errorf("error listing account files: %w", err)
	}

	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter models.AccountFilter, page models.PageRequest) (models.Page[models.Account], error) {
	page = page.WithDefaults()
	if filter.Email != "" {
		filter.Email = normalizeEmail(filter.Email)
	}

	accounts, total, err := s.accountRepository.ListAccounts(ctx, filter, page)
	if err != nil {
		return models.Page[models.Account]{}, fmt.Errorf("error listing accounts: %w", err)
	}

	return models.NewPage(accounts, total, page), nil
}

// UpdateProfile writes the non-nil fields of update and then attaches upload,
// if any. A file-only update still fails with store.ErrAccountNotFound for an
// unknown id.
func (s *accountService) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate, upload *models.FileUpload) error {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}

	if !update.IsEmpty() {
		if err := s.accountRepository.UpdateProfile(ctx, id, update); err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}
	}

	if upload != nil {
		if _, err := s.fileService.Upload(ctx, id, *upload); err != nil {
			return fmt.Errorf("error attaching file to profile: %w", err)
		}
	}

	return nil
}

// DeleteAccount removes the account; its attachment rows go with it. Blobs
// are deleted afterwards and failures there are only logged.
func (s *accountService) DeleteAccount(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	files, err := s.fileRepository.AllFiles(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("account_id", id).Msg("listing files before account deletion failed")
	}

	if err = s.accountRepository.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}

	for _, file := range files {
		if err = s.fileStorage.Delete(ctx, file.FilePath); err != nil {
			log.Warn().Err(err).Str("ref", file.FilePath).Msg("deleting blob of removed account failed")
		}
	}

	log.Info().Int64("account_id", id).Int("files", len(files)).Msg("account deleted")

	return nil
}
