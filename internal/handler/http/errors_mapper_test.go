package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name is required", service.ErrInvalidDataProvided), http.StatusBadRequest},
		{service.ErrNoFileProvided, http.StatusBadRequest},
		{service.ErrTooManyFiles, http.StatusBadRequest},
		{service.ErrInvalidOrExpiredResetToken, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
		{service.ErrAccountNotActive, http.StatusForbidden},
		{fmt.Errorf("error creating account: %w", store.ErrEmailAlreadyExists), http.StatusConflict},
		{store.ErrAccountNotFound, http.StatusNotFound},
		{store.ErrFileNotFound, http.StatusNotFound},
		{ErrRequestTooLarge, http.StatusRequestEntityTooLarge},
		{&store.StoreError{Op: "find", Err: store.ErrScanningRow}, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestErrorMappings_UniqueTargets(t *testing.T) {
	seen := make(map[error]bool, len(errorMappings))
	for _, m := range errorMappings {
		assert.False(t, seen[m.target], "duplicate mapping for %v", m.target)
		seen[m.target] = true
		assert.NotEmpty(t, m.msg, "no message for %v", m.target)
	}
}

// An error wrapping a specific sentinel together with the generic invalid
// data error must always resolve to the specific one.
func TestStatusFromError_SpecificBeforeGeneric(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, store.ErrAccountNotFound)

	for range 50 {
		assert.Equal(t, http.StatusNotFound, statusFromError(err))
		assert.Equal(t, "User not found", messageFromError(err))
	}
}

func TestWriteError_Body(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	writeError(rr, req, service.ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	body := decodeResponse[models.ErrorResponse](t, rr)
	assert.Equal(t, models.ErrorResponse{Msg: "Invalid email or password", Error: service.ErrInvalidCredentials.Error()}, body)
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)

	writeError(rr, req, &store.StoreError{Op: "list", Err: errors.New("dial tcp 10.0.0.5:5432: refused")})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
	assert.Equal(t, "Error", decodeResponse[models.ErrorResponse](t, rr).Msg)
}
