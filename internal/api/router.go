// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mobivoice/internal/api/handler"
	"mobivoice/internal/metrics"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(assistantHandler *handler.AssistantHandler, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests

	// Command surface
	r.Post("/process", assistantHandler.Process)
	r.Get("/audio/{audioID}", assistantHandler.Audio)
	r.Get("/balance", assistantHandler.Balance)

	// Operational endpoints
	r.Get("/health", assistantHandler.Health)
	r.Handle("/metrics", m.Handler())

	return r
}
