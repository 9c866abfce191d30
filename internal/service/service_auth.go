package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// authService is the concrete implementation of AuthService.
// It verifies credentials against the AccountRepository and issues HS256
// bearer tokens.
type authService struct {
	// accountRepository is used to look accounts up by email.
	accountRepository store.AccountRepository

	// hasher compares passwords on the hashing pool.
	hasher *PasswordHasher

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the app configuration.
// The returned service is safe for concurrent use.
func NewAuthService(accountRepository store.AccountRepository, hasher *PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		accountRepository: accountRepository,
		hasher:            hasher,
		validator:         validators.NewAccountValidator(),
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// Login authenticates an account and issues a bearer token.
//
// Returns:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrInvalidCredentials if the email is unknown or the password is wrong.
//     Both cases run one bcrypt comparison.
//   - ErrAccountNotActive if the password matched an inactive or banned account.
//   - A wrapped storage error otherwise.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.Token{}, invalidData(err)
	}

	email := normalizeEmail(request.Email)
	account, err := a.accountRepository.FindAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrAccountNotFound) {
		if err = a.hasher.CompareDummy(ctx, request.Password); errors.Is(err, utils.ErrPasswordMismatch) {
			log.Info().Msg("login attempt for unknown email")
			return models.Token{}, ErrInvalidCredentials
		}
		return models.Token{}, fmt.Errorf("error comparing password: %w", err)
	}
	if err != nil {
		log.Err(err).Msg("account search by email failed")
		return models.Token{}, fmt.Errorf("account search by email failed: %w", err)
	}

	if err = a.hasher.Compare(ctx, account.PasswordHash, request.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			log.Info().Int64("account_id", account.ID).Msg("wrong password")
			return models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Int64("account_id", account.ID).Msg("password comparison failed")
		return models.Token{}, fmt.Errorf("error comparing password: %w", err)
	}

	if !account.IsActive() {
		log.Info().Int64("account_id", account.ID).Str("status", string(account.Status)).Msg("login refused for non-active account")
		return models.Token{}, ErrAccountNotActive
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, account.ID, account.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates signature, issuer and expiry of a raw token.
// Any failure is normalised to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// normalizeEmail makes email lookups case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
