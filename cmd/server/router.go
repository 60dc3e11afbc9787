package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"signup/internal/platform/metrics"
	"signup/internal/platform/middleware"
	"signup/internal/registration/handler"
	"signup/pkg/platform/httputil"
	"signup/pkg/platform/middleware/device"
)

// newRouter mounts the ops endpoints and the registration routes behind the
// shared middleware stack. health may be nil when there is no backend to ping.
func newRouter(
	log *slog.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	health func(context.Context) error,
	pages *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(device.Middleware)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(m))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				log.WarnContext(r.Context(), "health check failed", "error", err)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusFound)
	})

	pages.Register(r)
	return r
}
