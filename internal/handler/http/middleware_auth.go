package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
)

const bearerScheme = "Bearer"

// auth is an HTTP middleware that enforces bearer token authentication.
//
// The token from the "Authorization" header is checked with
// [service.AuthService.ParseToken]. On success the account id is stored in
// the request context (see [utils.WithAccountID]); any failure ends the
// request with 401 and an error body.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		logger.FromContext(ctx).Debug().Int64("account_id", token.AccountID).Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(utils.WithAccountID(ctx, token.AccountID)))
	})
}

// getTokenFromAuthHeader extracts the token from a "Bearer <token>" header
// value. The scheme is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
