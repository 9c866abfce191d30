package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/MKhiriev/go-accounts/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := pageFromQuery(query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.AccountService.ListAccounts(r.Context(), filterFromQuery(query), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, result)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if account.Files == nil {
		account.Files = []models.FileAttachment{}
	}

	writeJSON(w, r, account)
}

// updateUser accepts either a JSON body with the changed fields, or a
// multipart body with the same JSON in the "user" field plus an optional
// "file" and "uploadedAt".
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var (
		update models.ProfileUpdate
		upload *models.FileUpload
	)

	if isMultipart(r) {
		form, err := parseMultipart(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer form.cleanup()

		if update, upload, err = profileUpdateFromForm(form); err != nil {
			writeError(w, r, err)
			return
		}
	} else if err = decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.AccountService.UpdateProfile(r.Context(), id, update, upload); err != nil {
		writeError(w, r, err)
		return
	}

	msg := app.MsgUserUpdated
	if upload != nil {
		msg = app.MsgUserUpdatedWithFile
	}
	writeJSON(w, r, models.MessageResponse{Msg: msg})
}

func profileUpdateFromForm(form *multipartForm) (models.ProfileUpdate, *models.FileUpload, error) {
	var update models.ProfileUpdate

	if raw := strings.TrimSpace(form.value("user")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &update); err != nil {
			return update, nil, invalidRequest(fmt.Errorf("%w: user: %w", ErrInvalidJSON, err))
		}
	}

	files, err := form.files("file")
	if err != nil || len(files) == 0 {
		return update, nil, err
	}

	uploadedAt, err := form.uploadedAt()
	if err != nil {
		return update, nil, err
	}
	files[0].UploadedAt = uploadedAt

	return update, &files[0], nil
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.AccountService.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Msg: app.MsgUserDeleted})
}
