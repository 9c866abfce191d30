package http

import (
	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// defaultMaxUploadSize applies when config leaves the upload limit unset.
const defaultMaxUploadSize = 32 << 20

type Handler struct {
	services *service.Services
	cfg      config.Server

	// filesDir is served read-only under /uploads/ when non-empty.
	filesDir string

	registry *prometheus.Registry
	metrics  *httpMetrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, filesDir string, logger *logger.Logger) *Handler {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaultMaxUploadSize
	}

	registry := newRegistry()

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		filesDir: filesDir,
		registry: registry,
		metrics:  newHTTPMetrics(registry),
		logger:   logger,
	}
}
