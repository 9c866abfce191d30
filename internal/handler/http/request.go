package http

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-chi/chi/v5"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// invalidRequest marks a decoding failure as a client error. Oversized
// bodies are reported as such.
func invalidRequest(err error) error {
	if maxBytesErr := new(http.MaxBytesError); errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrRequestTooLarge, maxBytesErr.Limit)
	}
	return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
}

func decodeJSON(r *http.Request, v any) error {
	if err := utils.DecodeJSON(r, v); err != nil {
		return invalidRequest(fmt.Errorf("%w: %w", ErrInvalidJSON, err))
	}
	return nil
}

// pathID parses the positive integer URL parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidRequest(fmt.Errorf("%w: %s=%q", ErrInvalidID, name, raw))
	}
	return id, nil
}

// pageFromQuery reads "page" and "limit". Absent values stay zero so the
// service applies its defaults.
func pageFromQuery(query url.Values) (models.PageRequest, error) {
	var page models.PageRequest

	for key, dst := range map[string]*int{"page": &page.Page, "limit": &page.Limit} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return models.PageRequest{}, invalidRequest(fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, raw))
		}
		*dst = n
	}

	return page, nil
}

func filterFromQuery(query url.Values) models.AccountFilter {
	return models.AccountFilter{
		Name:        query.Get("name"),
		Email:       query.Get("email"),
		Phone:       query.Get("phone"),
		Location:    query.Get("location"),
		CompanyName: query.Get("companyName"),
		Position:    query.Get("position"),
		CustomerID:  query.Get("customerId"),
		JoinDate:    query.Get("joinDate"),
		Status:      models.AccountStatus(query.Get("status")),
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// multipartForm parses a multipart body. The caller must run the returned
// cleanup, which closes opened files and removes temporary ones.
type multipartForm struct {
	form   *multipart.Form
	opened []multipart.File
	log    *logger.Logger
}

func parseMultipart(r *http.Request) (*multipartForm, error) {
	if !isMultipart(r) {
		return nil, invalidRequest(fmt.Errorf("%w: expected multipart/form-data", ErrInvalidMultipart))
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, invalidRequest(fmt.Errorf("%w: %w", ErrInvalidMultipart, err))
	}

	return &multipartForm{form: r.MultipartForm, log: logger.FromRequest(r)}, nil
}

func (f *multipartForm) value(key string) string {
	if values := f.form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// uploadedAt parses the optional "uploadedAt" field. Empty means now.
func (f *multipartForm) uploadedAt() (time.Time, error) {
	raw := strings.TrimSpace(f.value("uploadedAt"))
	if raw == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, invalidRequest(fmt.Errorf("%w: %q", ErrInvalidUploadedAt, raw))
	}
	return t, nil
}

// files opens every file sent under key.
func (f *multipartForm) files(key string) ([]models.FileUpload, error) {
	headers := f.form.File[key]
	uploads := make([]models.FileUpload, 0, len(headers))

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("error opening uploaded file %q: %w", header.Filename, err)
		}
		f.opened = append(f.opened, file)

		uploads = append(uploads, models.FileUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		})
	}

	return uploads, nil
}

func (f *multipartForm) cleanup() {
	for _, file := range f.opened {
		_ = file.Close()
	}
	if err := f.form.RemoveAll(); err != nil {
		f.log.Warn().Err(err).Msg("error removing multipart temporary files")
	}
}
