package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// MaxFilesPerUpload caps a single multiple-file upload.
const MaxFilesPerUpload = 10

type fileService struct {
	accountRepository store.AccountRepository
	fileRepository    store.FileRepository
	fileStorage       store.FileStorage

	validator validators.Validator
	uuids     *utils.UUIDGenerator
	now       func() time.Time

	logger *logger.Logger
}

func NewFileService(storages *store.Storages, logger *logger.Logger) FileService {
	return &fileService{
		accountRepository: storages.AccountRepository,
		fileRepository:    storages.FileRepository,
		fileStorage:       storages.FileStorage,
		validator:         validators.NewAccountValidator(),
		uuids:             utils.NewUUIDGenerator(),
		now:               time.Now,
		logger:            logger,
	}
}

// Upload stores each file and records it for userID. Files stored before a
// failure stay recorded.
//
// Returns ErrNoFileProvided, ErrTooManyFiles, store.ErrAccountNotFound or a
// wrapped storage error.
func (f *fileService) Upload(ctx context.Context, userID int64, uploads ...models.FileUpload) ([]models.FileAttachment, error) {
	if len(uploads) == 0 {
		return nil, ErrNoFileProvided
	}
	if len(uploads) > MaxFilesPerUpload {
		return nil, fmt.Errorf("%w: at most %d files per upload", ErrTooManyFiles, MaxFilesPerUpload)
	}
	for _, upload := range uploads {
		if err := f.validator.Validate(ctx, upload); err != nil {
			return nil, invalidData(err)
		}
	}

	if _, err := f.accountRepository.FindAccountByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("error checking file owner: %w", err)
	}

	files := make([]models.FileAttachment, 0, len(uploads))
	for _, upload := range uploads {
		file, err := f.store(ctx, userID, upload)
		if err != nil {
			return files, err
		}

		recorded, err := f.fileRepository.CreateFile(ctx, file)
		if err != nil {
			f.deleteBlob(ctx, file.FilePath)
			return files, fmt.Errorf("error recording file: %w", err)
		}
		files = append(files, recorded)
	}

	return files, nil
}

func (f *fileService) ListFiles(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.FileAttachment], error) {
	page = page.WithDefaults()
	if err := f.validator.Validate(ctx, page); err != nil {
		return models.Page[models.FileAttachment]{}, invalidData(err)
	}

	files, total, err := f.fileRepository.ListFiles(ctx, userID, page)
	if err != nil {
		return models.Page[models.FileAttachment]{}, fmt.Errorf("error listing files: %w", err)
	}

	return models.NewPage(files, total, page), nil
}

// UpdateFile replaces the blob behind one attachment of userID. The old blob
// is deleted best-effort once the record points at the new one.
func (f *fileService) UpdateFile(ctx context.Context, userID, fileID int64, upload models.FileUpload) (models.FileAttachment, error) {
	if err := f.validator.Validate(ctx, upload); err != nil {
		return models.FileAttachment{}, invalidData(err)
	}

	current, err := f.fileRepository.FindFile(ctx, userID, fileID)
	if err != nil {
		return models.FileAttachment{}, fmt.Errorf("error finding file: %w", err)
	}

	replacement, err := f.store(ctx, userID, upload)
	if err != nil {
		return models.FileAttachment{}, err
	}
	replacement.ID = current.ID

	if err = f.fileRepository.UpdateFile(ctx, replacement); err != nil {
		f.deleteBlob(ctx, replacement.FilePath)
		return models.FileAttachment{}, fmt.Errorf("error updating file record: %w", err)
	}
	f.deleteBlob(ctx, current.FilePath)

	return replacement, nil
}

// store writes the blob under users/<id>/<uuid><ext> and returns the record
// to persist.
func (f *fileService) store(ctx context.Context, userID int64, upload models.FileUpload) (models.FileAttachment, error) {
	key := fmt.Sprintf("users/%d/%s%s", userID, f.uuids.Generate(), fileExt(upload.FileName))

	ref, err := f.fileStorage.Save(ctx, key, upload)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).Msg("saving file failed")
		return models.FileAttachment{}, fmt.Errorf("error saving file: %w", err)
	}

	uploadedAt := upload.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = f.now()
	}

	return models.FileAttachment{
		UserID:     userID,
		FileName:   path.Base(upload.FileName),
		FilePath:   ref,
		UploadedAt: uploadedAt.UTC(),
	}, nil
}

func (f *fileService) deleteBlob(ctx context.Context, ref string) {
	if err := f.fileStorage.Delete(ctx, ref); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("ref", ref).Msg("deleting file blob failed")
	}
}

// fileExt returns the lower-cased extension of name, or "" when it has none
// or it contains anything but letters and digits.
func fileExt(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if len(ext) < 2 || len(ext) > 16 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}

	return ext
}
