package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/jackc/pgerrcode"
)

// fileRepository is the PostgreSQL-backed implementation of
// [FileRepository] over the "user_files" table.
type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

func scanFile(row rowScanner) (models.FileAttachment, error) {
	var f models.FileAttachment
	err := row.Scan(&f.ID, &f.UserID, &f.FileName, &f.FilePath, &f.UploadedAt)
	return f, err
}

// CreateFile inserts an attachment record. A foreign key violation means the
// owner does not exist.
func (r *fileRepository) CreateFile(ctx context.Context, file models.FileAttachment) (models.FileAttachment, error) {
	created, err := scanFile(r.db.QueryRowContext(ctx, createFile, file.UserID, file.FileName, file.FilePath, file.UploadedAt))
	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.FileAttachment{}, ErrAccountNotFound
		}
		return models.FileAttachment{}, r.db.storeError(ctx, "*fileRepository.CreateFile", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *fileRepository) FindFile(ctx context.Context, userID, fileID int64) (models.FileAttachment, error) {
	file, err := scanFile(r.db.QueryRowContext(ctx, findFile, fileID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FileAttachment{}, ErrFileNotFound
		}
		return models.FileAttachment{}, r.db.storeError(ctx, "*fileRepository.FindFile", ErrScanningRow, err)
	}

	return file, nil
}

func (r *fileRepository) ListFiles(ctx context.Context, userID int64, page models.PageRequest) ([]models.FileAttachment, int64, error) {
	const op = "*fileRepository.ListFiles"

	var total int64
	if err := r.db.QueryRowContext(ctx, countFiles, userID).Scan(&total); err != nil {
		return nil, 0, r.db.storeError(ctx, op, ErrExecutingQuery, err)
	}
	if total == 0 {
		return []models.FileAttachment{}, 0, nil
	}

	files, err := r.queryFiles(ctx, op, listFilesPage, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}

	return files, total, nil
}

func (r *fileRepository) AllFiles(ctx context.Context, userID int64) ([]models.FileAttachment, error) {
	return r.queryFiles(ctx, "*fileRepository.AllFiles", listAllFiles, userID)
}

func (r *fileRepository) UpdateFile(ctx context.Context, file models.FileAttachment) error {
	result, err := r.db.ExecContext(ctx, updateFile, file.FileName, file.FilePath, file.UploadedAt, file.ID, file.UserID)
	if err != nil {
		return r.db.storeError(ctx, "*fileRepository.UpdateFile", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrFileNotFound)
}

func (r *fileRepository) queryFiles(ctx context.Context, op, query string, args ...any) ([]models.FileAttachment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.db.storeError(ctx, op, ErrExecutingQuery, err)
	}
	defer rows.Close()

	files := make([]models.FileAttachment, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, r.db.storeError(ctx, op, ErrScanningRows, err)
		}
		files = append(files, file)
	}
	if err = rows.Err(); err != nil {
		return nil, r.db.storeError(ctx, op, ErrScanningRows, err)
	}

	return files, nil
}
