package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// passwordResetService keeps at most one pending reset token per account.
// The raw token goes back to the caller; the account row holds its SHA-256
// digest and the expiry.
type passwordResetService struct {
	accountRepository store.AccountRepository
	hasher            *PasswordHasher
	validator         validators.Validator

	// ttl is how long an issued token stays redeemable.
	ttl time.Duration

	// now is the clock; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

func NewPasswordResetService(accountRepository store.AccountRepository, hasher *PasswordHasher, cfg config.App, logger *logger.Logger) PasswordResetService {
	return &passwordResetService{
		accountRepository: accountRepository,
		hasher:            hasher,
		validator:         validators.NewAccountValidator(),
		ttl:               cfg.ResetTokenTTL,
		now:               time.Now,
		logger:            logger,
	}
}

// RequestReset issues a fresh token for the account with the given email,
// overwriting any pending one. Returns store.ErrAccountNotFound for an
// unknown email.
func (p *passwordResetService) RequestReset(ctx context.Context, request models.ForgotPasswordRequest) (string, error) {
	log := logger.FromContext(ctx)

	if err := p.validator.Validate(ctx, request); err != nil {
		return "", invalidData(err)
	}

	token, err := utils.NewResetToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return "", err
	}

	expiresAt := p.now().Add(p.ttl)
	if err = p.accountRepository.SetResetToken(ctx, normalizeEmail(request.Email), utils.HashResetToken(token), expiresAt); err != nil {
		if !errors.Is(err, store.ErrAccountNotFound) {
			log.Err(err).Msg("storing reset token failed")
		}
		return "", fmt.Errorf("error storing reset token: %w", err)
	}

	log.Info().Time("expires_at", expiresAt).Msg("password reset requested")

	return token, nil
}

// RedeemReset sets a new password for the account holding the token, if the
// token is still valid, and consumes the token in the same write.
func (p *passwordResetService) RedeemReset(ctx context.Context, request models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := p.validator.Validate(ctx, request); err != nil {
		return invalidData(err)
	}

	passwordHash, err := p.hasher.Hash(ctx, request.NewPassword)
	if err != nil {
		log.Err(err).Msg("hashing new password failed")
		return fmt.Errorf("error hashing new password: %w", err)
	}

	accountID, err := p.accountRepository.RedeemResetToken(ctx, utils.HashResetToken(request.Token), passwordHash, p.now())
	if errors.Is(err, store.ErrResetTokenNotFound) {
		log.Info().Msg("invalid or expired reset token presented")
		return ErrInvalidOrExpiredResetToken
	}
	if err != nil {
		log.Err(err).Msg("reset token redemption failed")
		return fmt.Errorf("error redeeming reset token: %w", err)
	}

	log.Info().Int64("account_id", accountID).Msg("password reset completed")

	return nil
}
