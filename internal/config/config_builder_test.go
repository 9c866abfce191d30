package config

import (
	"encoding/json"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// requiredConfig carries the two values defaults never provide.
func requiredConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "memory://"}},
	}
}

func testBuilder() *configBuilder {
	b := newConfigBuilder()
	b.args = nil
	return b
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := testBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := testBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_DefaultsFillTheRest(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, requiredConfig())

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "memory://", cfg.Storage.DB.DSN)
	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, 90*24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 15*time.Minute, cfg.App.ResetTokenTTL)
	assert.Equal(t, defaultPasswordHashCost, cfg.App.PasswordHashCost)
	assert.Equal(t, int64(defaultMaxUploadSize), cfg.Server.MaxUploadSize)
	assert.Equal(t, defaultFilesDir, cfg.Storage.Files.Dir)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers.HashConcurrency)
}

func TestBuild_FirstSourceWins(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenIssuer: "first"}},
		&StructuredConfig{App: App{TokenIssuer: "second", Version: "1.0.0"}},
		requiredConfig(),
	)

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.App.TokenIssuer)
	assert.Equal(t, "1.0.0", cfg.App.Version)
}

func TestBuild_MissingSignKeyIsFatal(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{DB: DB{DSN: "memory://"}}})

	cfg, err := b.withDefaults().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestBuild_MissingDSNIsFatal(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{TokenSignKey: "secret"}})

	cfg, err := b.withDefaults().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ParsesBuilderArgs(t *testing.T) {
	b := testBuilder()
	b.args = []string{"-a", "127.0.0.1:8081", "-token-sign-key", "flag-secret", "-d", "memory://"}

	cfg, err := b.withFlags().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "flag-secret", cfg.App.TokenSignKey)
}

func TestWithFlags_InvalidFlagSetsError(t *testing.T) {
	b := testBuilder()
	b.args = []string{"-a", "not-an-address"}

	b.withFlags()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LoadsFileFromEarlierSource(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"token_sign_key": "json-secret", "reset_token_ttl": "5m"},
		"storage": map[string]any{"db": map[string]any{"dsn": "memory://"}},
	})

	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})

	cfg, err := b.withJSON().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, "json-secret", cfg.App.TokenSignKey)
	assert.Equal(t, 5*time.Minute, cfg.App.ResetTokenTTL)
}

func TestWithJSON_EarlierPathWins(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"token_issuer": "first"}})
	second := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"token_issuer": "second"}})

	b := testBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
	)

	b.withJSON()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "first", b.configs[2].App.TokenIssuer)
}

func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	b.withJSON()
	assert.Error(t, b.err)
}
