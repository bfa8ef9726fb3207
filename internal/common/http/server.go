// internal/common/http/server.go
package http

import (
	"context"
	"net/http"
	"time"

	"biodata-service/internal/common/config"
	apperrors "biodata-service/internal/common/errors"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer builds the listener-side server. It does not start listening.
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       config.GetDuration(cfg.ReadTimeout),
		ReadHeaderTimeout: config.GetDuration(cfg.ReadTimeout),
		WriteTimeout:      config.GetDuration(cfg.WriteTimeout),
	}
}

// PingFunc checks a dependency for the readiness probe.
type PingFunc func(ctx context.Context) error

// RegisterOperational mounts /health, /ready, /metrics and a JSON 404 fallback.
func RegisterOperational(mux *http.ServeMux, ping PingFunc, errs *apperrors.ErrorHandler) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			errs.Write(w, r, apperrors.NewStoreUnavailableError(err))
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		errs.Write(w, r, apperrors.NewRouteNotFoundError(r.Method, r.URL.Path))
	})
}
