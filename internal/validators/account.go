package validators

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/models"
)

// Field names accepted by [AccountValidator.Validate].
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldStatus   = "status"
	FieldJoinDate = "join_date"
	FieldToken    = "token"
	FieldPage     = "page"
	FieldLimit    = "limit"

	// FieldAnyUpdate requires a ProfileUpdate to carry at least one field.
	FieldAnyUpdate = "any_update"

	FieldFileName    = "file_name"
	FieldFileSize    = "file_size"
	FieldFileContent = "file_content"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AccountValidator validates the request models of the account API:
// RegisterRequest, LoginRequest, ForgotPasswordRequest, ResetPasswordRequest,
// ProfileUpdate, AccountFilter, PageRequest and FileUpload.
type AccountValidator struct {
}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms
// are both accepted. Returns ErrUnsupportedType for anything else.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.ForgotPasswordRequest:
		return v.validateForgotPasswordRequest(value, fields...)
	case *models.ForgotPasswordRequest:
		return v.validateForgotPasswordRequest(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(*value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value, fields...)

	case models.AccountFilter:
		return v.validateAccountFilter(value, fields...)
	case *models.AccountFilter:
		return v.validateAccountFilter(*value, fields...)

	case models.PageRequest:
		return v.validatePageRequest(value, fields...)
	case *models.PageRequest:
		return v.validatePageRequest(*value, fields...)

	case models.FileUpload:
		return v.validateFileUpload(value, fields...)
	case *models.FileUpload:
		return v.validateFileUpload(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRegisterRequest checks name, email and password by default.
// Status and join date are optional and checked only when set.
func (v *AccountValidator) validateRegisterRequest(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword, FieldStatus, FieldJoinDate}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(request.Name) == "" {
				return ErrEmptyName
			}
		case FieldEmail:
			if !isValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if err := checkPassword(request.Password); err != nil {
				return err
			}
		case FieldStatus:
			if request.Status != "" && !request.Status.Valid() {
				return ErrInvalidStatus
			}
		case FieldJoinDate:
			if request.JoinDate != "" && !isValidDate(request.JoinDate) {
				return ErrInvalidJoinDate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLoginRequest only checks presence; a malformed email simply never
// matches an account.
func (v *AccountValidator) validateLoginRequest(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(request.Email) == "" {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateForgotPasswordRequest(request models.ForgotPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(request.Email) == "" {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateResetPasswordRequest(request models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldToken:
			if request.Token == "" {
				return ErrEmptyResetToken
			}
		case FieldPassword:
			if err := checkPassword(request.NewPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateProfileUpdate checks the fields that are present. FieldAnyUpdate
// is not part of the default set: an update may consist of a file only.
func (v *AccountValidator) validateProfileUpdate(update models.ProfileUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldStatus, FieldJoinDate}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
				return ErrEmptyName
			}
		case FieldStatus:
			if update.Status != nil && !update.Status.Valid() {
				return ErrInvalidStatus
			}
		case FieldJoinDate:
			if update.JoinDate != nil && !isValidDate(*update.JoinDate) {
				return ErrInvalidJoinDate
			}
		case FieldAnyUpdate:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateAccountFilter(filter models.AccountFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStatus, FieldJoinDate}
	}

	for _, f := range fields {
		switch f {
		case FieldStatus:
			if filter.Status != "" && !filter.Status.Valid() {
				return ErrInvalidStatus
			}
		case FieldJoinDate:
			if filter.JoinDate != "" && !isValidDate(filter.JoinDate) {
				return ErrInvalidJoinDate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePageRequest expects defaults to be applied already.
func (v *AccountValidator) validatePageRequest(page models.PageRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPage, FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldPage:
			if page.Page <= 0 || page.Page > models.MaxPage {
				return ErrInvalidPage
			}
		case FieldLimit:
			if page.Limit <= 0 {
				return ErrInvalidLimit
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateFileUpload(upload models.FileUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFileName, FieldFileSize, FieldFileContent}
	}

	for _, f := range fields {
		switch f {
		case FieldFileName:
			if strings.TrimSpace(upload.FileName) == "" {
				return ErrInvalidFileName
			}
		case FieldFileSize:
			if upload.Size < 0 {
				return ErrNegativeFileSize
			}
		case FieldFileContent:
			if upload.Content == nil {
				return ErrMissingFileReader
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isValidEmail accepts a bare address such as "a@x.com"; display names
// ("Ann <a@x.com>") are rejected.
func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func isValidDate(date string) bool {
	_, err := time.Parse(time.DateOnly, date)
	return err == nil
}

func checkPassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) > maxPasswordBytes:
		return ErrPasswordTooLong
	}

	return nil
}
