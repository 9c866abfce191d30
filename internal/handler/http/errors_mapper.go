package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

// errorMapping ties a sentinel to its HTTP status and response message.
type errorMapping struct {
	target error
	status int
	msg    string
}

// errorMappings is matched in order with errors.Is, so an error wrapping
// several sentinels gets the first entry. Specific errors come before the
// generic ErrInvalidDataProvided.
var errorMappings = []errorMapping{
	{store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},
	{store.ErrAccountNotFound, http.StatusNotFound, app.MsgUserNotFound},
	{store.ErrFileNotFound, http.StatusNotFound, app.MsgFileNotFound},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgUnauthorized},
	{service.ErrAccountNotActive, http.StatusForbidden, app.MsgAccountNotActive},
	{service.ErrInvalidOrExpiredResetToken, http.StatusBadRequest, app.MsgInvalidResetToken},
	{service.ErrNoFileProvided, http.StatusBadRequest, app.MsgNoFileUploaded},
	{service.ErrTooManyFiles, http.StatusBadRequest, app.MsgTooManyFiles},

	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},
	{ErrEmptyToken, http.StatusUnauthorized, app.MsgUnauthorized},
	{ErrRequestTooLarge, http.StatusRequestEntityTooLarge, app.MsgRequestTooLarge},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, app.MsgRequestTimedOut},

	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
}

func findMapping(err error) (errorMapping, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return errorMapping{}, false
}

func statusFromError(err error) int {
	if m, ok := findMapping(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	if m, ok := findMapping(err); ok {
		return m.msg
	}
	return app.MsgError
}

// writeError logs err and answers with the mapped status and an
// [models.ErrorResponse]. Details of unmapped errors stay in the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	body := models.ErrorResponse{Msg: messageFromError(err), Error: err.Error()}

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		body.Error = http.StatusText(status)
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, wErr := utils.WriteJSON(w, body, status); wErr != nil {
		log.Err(wErr).Msg("error writing error response")
	}
}

// writeJSON answers with data and logs a failed write.
func writeJSON(w http.ResponseWriter, r *http.Request, data any) {
	if _, err := utils.WriteJSON(w, data, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// writeErrorStatus answers with a fixed status for failures that carry no
// domain error, such as unknown routes.
func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Msg: msg, Error: http.StatusText(status)}, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing error response")
	}
}
