// Package httpapi exposes the application as a JSON HTTP API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

const requestTimeout = 60 * time.Second

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// NewRouter returns a chi router with the default middleware, a health
// endpoint and every API route.
func NewRouter(app ports.AppProvider, version string, logger *log.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: "prodvana", Version: version})
	})

	RegisterRoutes(r, app)
	return r
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r chi.Router, app ports.AppProvider) {
	h := &handler{app: app}

	r.Get("/state", h.getState)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/trial", h.startTrial)
		r.Post("/logout", h.logout)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.listTasks)
		r.Post("/", h.createTask)
		r.Put("/{id}", h.editTask)
		r.Delete("/{id}", h.deleteTask)
		r.Post("/{id}/toggle", h.toggleTask)
	})

	r.Route("/store", func(r chi.Router) {
		r.Get("/items", h.listStoreItems)
		r.Post("/purchase", h.purchase)
	})

	r.Get("/report", h.getReport)

	r.Route("/session", func(r chi.Router) {
		r.Post("/start", h.startSession)
		r.Post("/finish", h.finishSession)
		r.Post("/restart", h.restartSession)
		r.Post("/cancel", h.cancelSession)
	})
}

// requestLogger logs every request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
