// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
)

// Storages bundles the repositories and the blob store selected by config.
type Storages struct {
	AccountRepository AccountRepository
	FileRepository    FileRepository
	FileStorage       FileStorage

	// LocalFilesDir is set when blobs live on the local disk, so the
	// transport can serve them read-only.
	LocalFilesDir string

	db *DB
}

// NewStorages connects to the database named by cfg.DB.DSN, applies
// migrations and prepares the blob store. The DSN "memory://" selects the
// in-memory repositories; a non-empty S3 bucket selects the S3 blob store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := new(Storages)

	if cfg.DB.DSN == MemoryDSN {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		storages.AccountRepository, storages.FileRepository = NewMemoryRepositories(log)
	} else {
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error applying migrations: %w", err)
		}

		storages.db = db
		storages.AccountRepository = NewAccountRepository(db, log)
		storages.FileRepository = NewFileRepository(db, log)
	}

	fileStorage, err := newFileStorage(ctx, cfg.Files, log)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}
	storages.FileStorage = fileStorage
	if cfg.Files.S3.Bucket == "" {
		storages.LocalFilesDir = cfg.Files.Dir
	}

	return storages, nil
}

func newFileStorage(ctx context.Context, cfg config.Files, log *logger.Logger) (FileStorage, error) {
	if cfg.S3.Bucket != "" {
		return NewS3FileStorage(ctx, cfg.S3, log)
	}

	return NewLocalFileStorage(cfg.Dir, log)
}

// Close releases the database pool, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
