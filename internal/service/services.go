package service

import (
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/workers"
)

type Services struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	AccountService       AccountService
	FileService          FileService
	AppInfoService       AppInfoService
}

// NewServices builds every service on top of storages. Password hashing for
// all of them shares one pool of cfg.Workers.HashConcurrency slots.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	logger.Info().Msg("creating new services...")

	hasher, err := NewPasswordHasher(workers.NewPool(cfg.Workers.HashConcurrency), cfg.App.PasswordHashCost)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	fileService := NewFileService(storages, logger)
	accountService := NewAccountValidationService().Wrap(NewAccountService(storages, fileService, hasher, logger))

	return &Services{
		AuthService:          NewAuthService(storages.AccountRepository, hasher, cfg.App, logger),
		PasswordResetService: NewPasswordResetService(storages.AccountRepository, hasher, cfg.App, logger),
		AccountService:       accountService,
		FileService:          fileService,
		AppInfoService:       appInfoService,
	}, nil
}
