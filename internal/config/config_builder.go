package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"dario.cat/mergo"
)

const (
	defaultHTTPAddress      = "localhost:3000"
	defaultTokenIssuer      = "go-accounts"
	defaultTokenDuration    = 90 * 24 * time.Hour
	defaultResetTokenTTL    = 15 * time.Minute
	defaultPasswordHashCost = 10
	defaultMaxUploadSize    = 32 << 20
	defaultFilesDir         = "uploads"
)

type configBuilder struct {
	configs []*StructuredConfig
	args    []string
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
		args:    os.Args[1:],
	}
}

// build merges the collected configs in order. mergo only fills zero
// fields, so earlier sources take precedence over later ones.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags, err := ParseFlags(b.args)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error parsing flags: %w", err))
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	// the first source that names a file wins, same as for every other field
	for i := len(b.configs) - 1; i >= 0; i-- {
		if b.configs[i].JSONFilePath != "" {
			jsonPath = b.configs[i].JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

// withDefaults appends the lowest priority source. It never sets
// TokenSignKey or the DSN: both must be given explicitly.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			TokenIssuer:      defaultTokenIssuer,
			TokenDuration:    defaultTokenDuration,
			ResetTokenTTL:    defaultResetTokenTTL,
			PasswordHashCost: defaultPasswordHashCost,
		},
		Server: Server{
			HTTPAddress:   defaultHTTPAddress,
			MaxUploadSize: defaultMaxUploadSize,
		},
		Storage: Storage{
			Files: Files{Dir: defaultFilesDir},
		},
		Workers: Workers{
			HashConcurrency: runtime.NumCPU(),
		},
	})

	return b
}
