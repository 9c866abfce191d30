package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var request models.RegisterRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.Register(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("account_id", account.ID).Msg("account registered")
	writeJSON(w, r, models.MessageResponse{Msg: app.MsgUserRegistered})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var request models.LoginRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.Login(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("account_id", token.AccountID).Msg("account logged in")

	w.Header().Set("Authorization", fmt.Sprintf("%s %s", bearerScheme, token.SignedString))
	writeJSON(w, r, models.LoginResponse{Msg: app.MsgLoginSuccessful, Token: token.SignedString})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var request models.ForgotPasswordRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	resetToken, err := h.services.PasswordResetService.RequestReset(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.ForgotPasswordResponse{Msg: app.MsgResetTokenGenerated, ResetToken: resetToken})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var request models.ResetPasswordRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.PasswordResetService.RedeemReset(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Msg: app.MsgPasswordUpdated})
}
