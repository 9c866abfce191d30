package models

// MessageResponse is the generic success body.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the uniform failure body returned by every endpoint.
type ErrorResponse struct {
	Msg   string `json:"msg"`
	Error string `json:"error,omitempty"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}

// ForgotPasswordResponse hands the raw reset token back to the caller.
type ForgotPasswordResponse struct {
	Msg        string `json:"msg"`
	ResetToken string `json:"resetToken"`
}

// FileResponse is returned after a single file upload or update.
type FileResponse struct {
	Msg  string         `json:"msg"`
	File FileAttachment `json:"file"`
}

// FilesResponse is returned after a multiple file upload.
type FilesResponse struct {
	Msg   string           `json:"msg"`
	Files []FileAttachment `json:"files"`
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Page is one page of a listing together with its pagination data.
type Page[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPage assembles a page from the fetched rows and the total row count.
func NewPage[T any](data []T, total int64, req PageRequest) Page[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 0
	if req.Limit > 0 {
		totalPages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}

	return Page[T]{
		Success: true,
		Data:    data,
		Pagination: Pagination{
			Total:      total,
			Page:       req.Page,
			Limit:      req.Limit,
			TotalPages: totalPages,
		},
	}
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Msg     string `json:"msg"`
	Version string `json:"version"`
}
