package http

import (
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(h.cors())
	router.Use(middleware.Compress(5))
	router.Use(withGzipRequest)
	router.Use(middleware.RequestSize(h.cfg.MaxUploadSize))
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, r, http.StatusNotFound, app.MsgRouteNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, r, http.StatusMethodNotAllowed, app.MsgMethodNotAllowed)
	})

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/forgot-password", h.forgotPassword)
		r.Post("/reset-password", h.resetPassword)

		r.Get("/health", h.health)
		r.Method(http.MethodGet, "/metrics", h.metricsHandler())

		if h.filesDir != "" {
			r.Method(http.MethodGet, "/uploads/*", h.serveUploads())
		}
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/users", h.listUsers)

		r.Get("/user/{id}", h.getUser)
		r.Put("/user/{id}", h.updateUser)
		r.Delete("/user/{id}", h.deleteUser)
		r.Get("/user/{id}/files", h.listUserFiles)
		r.Put("/user/{id}/files/{fileId}", h.updateUserFile)

		r.Post("/upload/{userId}", h.uploadFile)
		r.Post("/upload/multiple/{userId}", h.uploadFiles)
	})

	return router
}

func (h *Handler) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Content-Encoding", traceIDHeader},
		ExposedHeaders: []string{"Authorization", traceIDHeader},
		MaxAge:         300,
	})
}
