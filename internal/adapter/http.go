package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

type httpAccountsClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAccountsClient constructs an HTTP implementation of [AccountsClient].
// address may omit the scheme, "http://" is assumed then. A non-positive
// timeout selects the default of 15 seconds.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func NewHTTPAccountsClient(address string, timeout time.Duration, logger *logger.Logger) (AccountsClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid accounts api address: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := utils.NewHTTPClient(baseURL)
	client.SetTimeout(timeout)

	return &httpAccountsClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAccountsClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAccountsClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAccountsClient) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	return mapHTTPError(resp)
}

// Login prefers the token from the Authorization response header and falls
// back to the body when the header is stripped by a proxy.
func (h *httpAccountsClient) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var body models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&body).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		if body.Token == "" {
			return "", fmt.Errorf("login parse bearer token: %w", err)
		}
		token = body.Token
	}

	h.SetToken(token)
	return token, nil
}

func (h *httpAccountsClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	var body models.ForgotPasswordResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.ForgotPasswordRequest{Email: email}).
		SetResult(&body).
		Post("/forgot-password")
	if err != nil {
		return "", fmt.Errorf("forgot password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return body.ResetToken, nil
}

func (h *httpAccountsClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/reset-password")
	if err != nil {
		return fmt.Errorf("reset password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountsClient) ListUsers(ctx context.Context, query ListUsersQuery) (models.Page[models.Account], error) {
	var page models.Page[models.Account]

	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(listUsersValues(query)).
		SetResult(&page).
		Get("/users")
	if err != nil {
		return page, fmt.Errorf("list users request: %w", err)
	}

	return page, mapHTTPError(resp)
}

func (h *httpAccountsClient) GetUser(ctx context.Context, id int64) (models.Account, error) {
	var account models.Account

	resp, err := h.authedRequest(ctx).
		SetResult(&account).
		Get(fmt.Sprintf("/user/%d", id))
	if err != nil {
		return account, fmt.Errorf("get user request: %w", err)
	}

	return account, mapHTTPError(resp)
}

func (h *httpAccountsClient) UpdateUser(ctx context.Context, id int64, update models.ProfileUpdate, file *UploadFile) error {
	req := h.authedRequest(ctx)

	if file == nil {
		req.SetBody(update)
	} else {
		payload, err := json.Marshal(update)
		if err != nil {
			return fmt.Errorf("encode profile update: %w", err)
		}
		req.SetMultipartFormData(map[string]string{"user": string(payload)})
		setUploadedAt(req, *file)
		addFile(req, "file", *file)
	}

	resp, err := req.Put(fmt.Sprintf("/user/%d", id))
	if err != nil {
		return fmt.Errorf("update user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountsClient) DeleteUser(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).Delete(fmt.Sprintf("/user/%d", id))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountsClient) UploadFile(ctx context.Context, userID int64, file UploadFile) (models.FileAttachment, error) {
	var body models.FileResponse

	req := h.authedRequest(ctx).SetResult(&body)
	setUploadedAt(req, file)
	addFile(req, "file", file)

	resp, err := req.Post(fmt.Sprintf("/upload/%d", userID))
	if err != nil {
		return models.FileAttachment{}, fmt.Errorf("upload file request: %w", err)
	}

	return body.File, mapHTTPError(resp)
}

// UploadFiles sends every file in one request. The upload time of the first
// file applies to all of them.
func (h *httpAccountsClient) UploadFiles(ctx context.Context, userID int64, files []UploadFile) ([]models.FileAttachment, error) {
	var body models.FilesResponse

	req := h.authedRequest(ctx).SetResult(&body)
	if len(files) > 0 {
		setUploadedAt(req, files[0])
	}
	for _, file := range files {
		addFile(req, "files", file)
	}

	resp, err := req.Post(fmt.Sprintf("/upload/multiple/%d", userID))
	if err != nil {
		return nil, fmt.Errorf("upload files request: %w", err)
	}

	return body.Files, mapHTTPError(resp)
}

func (h *httpAccountsClient) ListUserFiles(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.FileAttachment], error) {
	var result models.Page[models.FileAttachment]

	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(pageValues(page)).
		SetResult(&result).
		Get(fmt.Sprintf("/user/%d/files", userID))
	if err != nil {
		return result, fmt.Errorf("list user files request: %w", err)
	}

	return result, mapHTTPError(resp)
}

func (h *httpAccountsClient) UpdateUserFile(ctx context.Context, userID, fileID int64, file UploadFile) (models.FileAttachment, error) {
	var body models.FileResponse

	req := h.authedRequest(ctx).SetResult(&body)
	setUploadedAt(req, file)
	addFile(req, "file", file)

	resp, err := req.Put(fmt.Sprintf("/user/%d/files/%d", userID, fileID))
	if err != nil {
		return models.FileAttachment{}, fmt.Errorf("update user file request: %w", err)
	}

	return body.File, mapHTTPError(resp)
}

func (h *httpAccountsClient) Health(ctx context.Context) (string, error) {
	var body models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/health")
	if err != nil {
		return "", fmt.Errorf("health request: %w", err)
	}

	return body.Version, mapHTTPError(resp)
}

func (h *httpAccountsClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	} else {
		h.logger.Debug().Msg("sending authenticated request without a token")
	}
	return req
}

func addFile(req *resty.Request, field string, file UploadFile) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.SetMultipartField(field, file.FileName, contentType, file.Content)
}

func setUploadedAt(req *resty.Request, file UploadFile) {
	if !file.UploadedAt.IsZero() {
		req.SetMultipartFormData(map[string]string{"uploadedAt": file.UploadedAt.UTC().Format(time.RFC3339)})
	}
}

func pageValues(page models.PageRequest) url.Values {
	values := url.Values{}
	if page.Page > 0 {
		values.Set("page", strconv.Itoa(page.Page))
	}
	if page.Limit > 0 {
		values.Set("limit", strconv.Itoa(page.Limit))
	}
	return values
}

func listUsersValues(query ListUsersQuery) url.Values {
	values := pageValues(query.Page)

	f := query.Filter
	for key, value := range map[string]string{
		"name":        f.Name,
		"email":       f.Email,
		"phone":       f.Phone,
		"location":    f.Location,
		"companyName": f.CompanyName,
		"position":    f.Position,
		"customerId":  f.CustomerID,
		"joinDate":    f.JoinDate,
		"status":      string(f.Status),
	} {
		if value != "" {
			values.Set(key, value)
		}
	}

	return values
}
