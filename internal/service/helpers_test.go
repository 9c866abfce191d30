package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/workers"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────
// Shared fixtures
// ─────────────────────────────────────────────

const testSignKey = "test-sign-key"

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:     testSignKey,
		TokenIssuer:      "go-accounts-test",
		TokenDuration:    time.Hour,
		ResetTokenTTL:    15 * time.Minute,
		PasswordHashCost: bcrypt.MinCost,
		Version:          "test",
	}
}

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	hasher, err := NewPasswordHasher(workers.NewPool(2), bcrypt.MinCost)
	require.NoError(t, err)
	return hasher
}

// newMemoryStorages returns in-memory repositories with blobs in a temp dir.
func newMemoryStorages(t *testing.T) *store.Storages {
	t.Helper()
	storages, err := store.NewStorages(context.Background(), config.Storage{
		DB:    config.DB{DSN: store.MemoryDSN},
		Files: config.Files{Dir: t.TempDir()},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

func ptr[T any](v T) *T { return &v }
