// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

// localFileStorage writes attachment blobs below a root directory. The
// returned reference is the slash separated key, which is also the path the
// files are served under at /uploads/.
type localFileStorage struct {
	root   string
	logger *logger.Logger
}

// NewLocalFileStorage creates root if needed and returns a [FileStorage]
// writing into it.
func NewLocalFileStorage(root string, log *logger.Logger) (FileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating files dir: %w", ErrStoringFile, err)
	}

	log.Debug().Str("dir", root).Msg("creating local file storage")
	return &localFileStorage{root: root, logger: log}, nil
}

func (s *localFileStorage) Save(ctx context.Context, key string, upload models.FileUpload) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStoringFile, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStoringFile, err)
	}

	if _, err = io.Copy(f, upload.Content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: writing %s: %w", ErrStoringFile, key, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStoringFile, err)
	}

	logger.FromContext(ctx).Debug().Str("func", "*localFileStorage.Save").Str("key", key).Msg("file stored")
	return key, nil
}

func (s *localFileStorage) Delete(ctx context.Context, ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: deleting %s: %w", ErrStoringFile, ref, err)
	}

	return nil
}

// resolve maps a slash separated reference to a path inside root.
func (s *localFileStorage) resolve(ref string) (string, error) {
	rel := filepath.FromSlash(ref)
	if ref == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileRef, ref)
	}

	return filepath.Join(s.root, rel), nil
}
