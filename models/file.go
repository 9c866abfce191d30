package models

import (
	"io"
	"time"
)

// FileAttachment is a stored file record owned by exactly one account.
// It is removed together with its owner.
type FileAttachment struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`

	// FileName is the name the file was uploaded with.
	FileName string `json:"fileName"`

	// FilePath is the reference returned by the blob storage backend
	// (a relative path for local storage, an object key for S3).
	FilePath string `json:"filePath"`

	UploadedAt time.Time `json:"uploadedAt"`
}

// TableName returns the name of the database table
// associated with the FileAttachment model.
func (f FileAttachment) TableName() string {
	return "user_files"
}

// FileUpload is an inbound file as received by the transport layer.
// Content is read exactly once by the storage backend.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader

	// UploadedAt is the client supplied upload time. Zero means "now".
	UploadedAt time.Time
}
