package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/models"
)

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "file", func(files []models.FileAttachment) any {
		return models.FileResponse{Msg: app.MsgFileUploaded, File: files[0]}
	})
}

func (h *Handler) uploadFiles(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "files", func(files []models.FileAttachment) any {
		return models.FilesResponse{Msg: app.MsgFilesUploaded, Files: files}
	})
}

// upload stores the files sent under field for the account in {userId}.
// A single "uploadedAt" value applies to every file.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request, field string, respond func([]models.FileAttachment) any) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	form, err := parseMultipart(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.cleanup()

	uploads, err := form.files(field)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if field == "file" && len(uploads) > 1 {
		uploads = uploads[:1]
	}

	uploadedAt, err := form.uploadedAt()
	if err != nil {
		writeError(w, r, err)
		return
	}
	for i := range uploads {
		uploads[i].UploadedAt = uploadedAt
	}

	files, err := h.services.FileService.Upload(r.Context(), userID, uploads...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, respond(files))
}

func (h *Handler) listUserFiles(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := pageFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.FileService.ListFiles(r.Context(), userID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, result)
}

func (h *Handler) updateUserFile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	fileID, err := pathID(r, "fileId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	form, err := parseMultipart(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer form.cleanup()

	uploads, err := form.files("file")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(uploads) == 0 {
		writeError(w, r, service.ErrNoFileProvided)
		return
	}

	uploadedAt, err := form.uploadedAt()
	if err != nil {
		writeError(w, r, err)
		return
	}
	uploads[0].UploadedAt = uploadedAt

	file, err := h.services.FileService.UpdateFile(r.Context(), userID, fileID, uploads[0])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.FileResponse{Msg: app.MsgFileUpdated, File: file})
}

// serveUploads exposes the local attachment directory read-only.
// Directory listings are not served.
func (h *Handler) serveUploads() http.Handler {
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.filesDir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
