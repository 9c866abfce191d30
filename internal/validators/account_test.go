package validators

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "pw123",
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("value and pointer", func(t *testing.T) {
		r := validRegisterRequest()
		assert.NoError(t, v.Validate(ctx, r))
		assert.NoError(t, v.Validate(ctx, &r))
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validRegisterRequest(), "nope"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// RegisterRequest
// ---------------------------------------------------------------------------

func TestValidate_RegisterRequest(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{name: "valid minimal", mutate: func(r *models.RegisterRequest) {}},
		{
			name: "valid full",
			mutate: func(r *models.RegisterRequest) {
				r.Status = models.StatusBanned
				r.JoinDate = "2024-02-29"
				r.Phone = "+1 555"
			},
		},
		{name: "empty name", mutate: func(r *models.RegisterRequest) { r.Name = "  " }, wantErr: ErrEmptyName},
		{name: "empty email", mutate: func(r *models.RegisterRequest) { r.Email = "" }, wantErr: ErrInvalidEmail},
		{name: "no at sign", mutate: func(r *models.RegisterRequest) { r.Email = "ann.example.com" }, wantErr: ErrInvalidEmail},
		{name: "display name", mutate: func(r *models.RegisterRequest) { r.Email = "Ann <ann@example.com>" }, wantErr: ErrInvalidEmail},
		{name: "empty password", mutate: func(r *models.RegisterRequest) { r.Password = "" }, wantErr: ErrEmptyPassword},
		{
			name:    "password too long",
			mutate:  func(r *models.RegisterRequest) { r.Password = strings.Repeat("x", 73) },
			wantErr: ErrPasswordTooLong,
		},
		{name: "unknown status", mutate: func(r *models.RegisterRequest) { r.Status = "deleted" }, wantErr: ErrInvalidStatus},
		{name: "bad join date", mutate: func(r *models.RegisterRequest) { r.JoinDate = "01/02/2024" }, wantErr: ErrInvalidJoinDate},
		{name: "impossible join date", mutate: func(r *models.RegisterRequest) { r.JoinDate = "2023-02-29" }, wantErr: ErrInvalidJoinDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegisterRequest()
			tt.mutate(&r)

			err := v.Validate(ctx, r)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_RegisterRequest_FieldScoping(t *testing.T) {
	v := NewAccountValidator()
	r := models.RegisterRequest{Email: "ann@example.com"}

	assert.NoError(t, v.Validate(context.Background(), r, FieldEmail))
	assert.ErrorIs(t, v.Validate(context.Background(), r, FieldEmail, FieldName), ErrEmptyName)
}

// ---------------------------------------------------------------------------
// Login / forgot / reset
// ---------------------------------------------------------------------------

func TestValidate_LoginRequest(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "a@x.com", Password: "pw"}))
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Password: "pw"}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, &models.LoginRequest{Email: "a@x.com"}), ErrEmptyPassword)
}

func TestValidate_ForgotPasswordRequest(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ForgotPasswordRequest{Email: "a@x.com"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ForgotPasswordRequest{Email: " "}), ErrInvalidEmail)
}

func TestValidate_ResetPasswordRequest(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ResetPasswordRequest{Token: "t", NewPassword: "pw"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{NewPassword: "pw"}), ErrEmptyResetToken)
	assert.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{Token: "t"}), ErrEmptyPassword)
}

// ---------------------------------------------------------------------------
// ProfileUpdate
// ---------------------------------------------------------------------------

func TestValidate_ProfileUpdate(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	t.Run("empty update passes default set", func(t *testing.T) {
		assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{}))
	})

	t.Run("empty update fails any_update", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{}, FieldAnyUpdate), ErrNoFieldsToUpdate)
	})

	t.Run("blank name", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Name: ptr("")}), ErrEmptyName)
	})

	t.Run("bad status", func(t *testing.T) {
		status := models.AccountStatus("gone")
		assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Status: &status}), ErrInvalidStatus)
	})

	t.Run("bad join date", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, &models.ProfileUpdate{JoinDate: ptr("yesterday")}), ErrInvalidJoinDate)
	})

	t.Run("valid", func(t *testing.T) {
		status := models.StatusInactive
		u := models.ProfileUpdate{Name: ptr("Bob"), Status: &status, JoinDate: ptr("2020-01-01")}
		assert.NoError(t, v.Validate(ctx, u, FieldName, FieldStatus, FieldJoinDate, FieldAnyUpdate))
	})
}

// ---------------------------------------------------------------------------
// Filter / paging / files
// ---------------------------------------------------------------------------

func TestValidate_AccountFilter(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.AccountFilter{Name: "a"}))
	assert.ErrorIs(t, v.Validate(ctx, models.AccountFilter{Status: "x"}), ErrInvalidStatus)
	assert.ErrorIs(t, v.Validate(ctx, models.AccountFilter{JoinDate: "2024"}), ErrInvalidJoinDate)
}

func TestValidate_PageRequest(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.PageRequest{Page: 1, Limit: 10}))
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{Page: 0, Limit: 10}), ErrInvalidPage)
	assert.NoError(t, v.Validate(ctx, models.PageRequest{Page: models.MaxPage, Limit: models.MaxLimit}))
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{Page: models.MaxPage + 1, Limit: 10}), ErrInvalidPage)
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{Page: math.MaxInt, Limit: 10}), ErrInvalidPage)
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{Page: 1, Limit: -1}), ErrInvalidLimit)
}

func TestValidate_FileUpload(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	ok := models.FileUpload{FileName: "a.txt", Size: 1, Content: strings.NewReader("a")}
	assert.NoError(t, v.Validate(ctx, ok))

	noName := ok
	noName.FileName = ""
	assert.ErrorIs(t, v.Validate(ctx, noName), ErrInvalidFileName)

	negative := ok
	negative.Size = -1
	assert.ErrorIs(t, v.Validate(ctx, &negative), ErrNegativeFileSize)

	noContent := ok
	noContent.Content = nil
	assert.ErrorIs(t, v.Validate(ctx, noContent), ErrMissingFileReader)
}
