package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

// Each fake implements one service interface through function fields, so
// a test only sets the calls it expects. An unexpected call panics and is
// turned into a 500 by the Recoverer.

type fakeAuthService struct {
	loginFn      func(ctx context.Context, request models.LoginRequest) (models.Token, error)
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (f *fakeAuthService) Login(ctx context.Context, request models.LoginRequest) (models.Token, error) {
	return f.loginFn(ctx, request)
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return f.parseTokenFn(ctx, tokenString)
}

type fakePasswordResetService struct {
	requestResetFn func(ctx context.Context, request models.ForgotPasswordRequest) (string, error)
	redeemResetFn  func(ctx context.Context, request models.ResetPasswordRequest) error
}

func (f *fakePasswordResetService) RequestReset(ctx context.Context, request models.ForgotPasswordRequest) (string, error) {
	return f.requestResetFn(ctx, request)
}

func (f *fakePasswordResetService) RedeemReset(ctx context.Context, request models.ResetPasswordRequest) error {
	return f.redeemResetFn(ctx, request)
}

type fakeAccountService struct {
	registerFn      func(ctx context.Context, request models.RegisterRequest) (models.Account, error)
	getAccountFn    func(ctx context.Context, id int64) (models.Account, error)
	listAccountsFn  func(ctx context.Context, filter models.AccountFilter, page models.PageRequest) (models.Page[models.Account], error)
	updateProfileFn func(ctx context.Context, id int64, update models.ProfileUpdate, upload *models.FileUpload) error
	deleteAccountFn func(ctx context.Context, id int64) error
}

func (f *fakeAccountService) Register(ctx context.Context, request models.RegisterRequest) (models.Account, error) {
	return f.registerFn(ctx, request)
}

func (f *fakeAccountService) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	return f.getAccountFn(ctx, id)
}

func (f *fakeAccountService) ListAccounts(ctx context.Context, filter models.AccountFilter, page models.PageRequest) (models.Page[models.Account], error) {
	return f.listAccountsFn(ctx, filter, page)
}

func (f *fakeAccountService) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate, upload *models.FileUpload) error {
	return f.updateProfileFn(ctx, id, update, upload)
}

func (f *fakeAccountService) DeleteAccount(ctx context.Context, id int64) error {
	return f.deleteAccountFn(ctx, id)
}

type fakeFileService struct {
	uploadFn     func(ctx context.Context, userID int64, uploads ...models.FileUpload) ([]models.FileAttachment, error)
	listFilesFn  func(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.FileAttachment], error)
	updateFileFn func(ctx context.Context, userID, fileID int64, upload models.FileUpload) (models.FileAttachment, error)
}

func (f *fakeFileService) Upload(ctx context.Context, userID int64, uploads ...models.FileUpload) ([]models.FileAttachment, error) {
	return f.uploadFn(ctx, userID, uploads...)
}

func (f *fakeFileService) ListFiles(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.FileAttachment], error) {
	return f.listFilesFn(ctx, userID, page)
}

func (f *fakeFileService) UpdateFile(ctx context.Context, userID, fileID int64, upload models.FileUpload) (models.FileAttachment, error) {
	return f.updateFileFn(ctx, userID, fileID, upload)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testBearer = "Bearer good-token"

// acceptingAuth accepts "good-token" as the token of account 1.
func acceptingAuth() *fakeAuthService {
	return &fakeAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != "good-token" {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{AccountID: 1}, nil
		},
	}
}

// newTestRouter fills missing services with empty fakes and returns the
// full router.
func newTestRouter(t *testing.T, services *service.Services) http.Handler {
	t.Helper()

	if services.AuthService == nil {
		services.AuthService = acceptingAuth()
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &fakeAppInfoService{version: "test"}
	}
	if services.AccountService == nil {
		services.AccountService = &fakeAccountService{}
	}
	if services.PasswordResetService == nil {
		services.PasswordResetService = &fakePasswordResetService{}
	}
	if services.FileService == nil {
		services.FileService = &fakeFileService{}
	}

	return NewHandler(services, config.Server{MaxUploadSize: 1 << 20}, "", logger.Nop()).Init()
}

// serve runs one request through handler. A non-empty bearer is sent as
// the Authorization header.
func serve(handler http.Handler, method, target string, body io.Reader, contentType, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// multipartFile is one file part of a test multipart body.
type multipartFile struct {
	field, name, content string
}

// multipartBody encodes fields and files and returns the body together with
// its Content-Type.
func multipartBody(t *testing.T, fields map[string]string, files ...multipartFile) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

// readUploads drains the contents of uploads, for assertions.
func readUploads(t *testing.T, uploads []models.FileUpload) []string {
	t.Helper()
	contents := make([]string, 0, len(uploads))
	for _, u := range uploads {
		b, err := io.ReadAll(u.Content)
		require.NoError(t, err)
		contents = append(contents, string(b))
	}
	return contents
}
