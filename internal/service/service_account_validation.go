package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// AccountValidationService validates input before handing it to the wrapped
// AccountService. Every validation failure wraps ErrInvalidDataProvided.
type AccountValidationService struct {
	inner     AccountService
	validator validators.Validator
}

func NewAccountValidationService() AccountServiceWrapper {
	return &AccountValidationService{
		validator: validators.NewAccountValidator(),
	}
}

func (v *AccountValidationService) Register(ctx context.Context, request models.RegisterRequest) (models.Account, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Account{}, invalidData(err)
	}

	return v.inner.Register(ctx, request)
}

func (v *AccountValidationService) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	return v.inner.GetAccount(ctx, id)
}

func (v *AccountValidationService) ListAccounts(ctx context.Context, filter models.AccountFilter, page models.PageRequest) (models.Page[models.Account], error) {
	if err := v.validator.Validate(ctx, filter); err != nil {
		return models.Page[models.Account]{}, invalidData(err)
	}
	if err := v.validator.Validate(ctx, page.WithDefaults()); err != nil {
		return models.Page[models.Account]{}, invalidData(err)
	}

	return v.inner.ListAccounts(ctx, filter, page)
}

// UpdateProfile requires at least one profile field unless a file is attached.
func (v *AccountValidationService) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate, upload *models.FileUpload) error {
	fields := []string{validators.FieldName, validators.FieldStatus, validators.FieldJoinDate}
	if upload == nil {
		fields = append(fields, validators.FieldAnyUpdate)
	}

	if err := v.validator.Validate(ctx, update, fields...); err != nil {
		return invalidData(err)
	}
	if upload != nil {
		if err := v.validator.Validate(ctx, upload); err != nil {
			return invalidData(err)
		}
	}

	return v.inner.UpdateProfile(ctx, id, update, upload)
}

func (v *AccountValidationService) DeleteAccount(ctx context.Context, id int64) error {
	return v.inner.DeleteAccount(ctx, id)
}

func (v *AccountValidationService) Wrap(wrapped AccountService) AccountService {
	v.inner = wrapped
	return v
}

func invalidData(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
