package systemhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/transport/http/api"
	"hrerp/internal/transport/http/middleware"
)

const readyTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	DB      Pinger
	Perms   middleware.Authorizer
	Metrics *metrics.Collector
}

func NewHandler(db Pinger, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{DB: db, Perms: perms, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	if h.Metrics != nil {
		r.With(middleware.RequirePermission(auth.PermSystemAdmin, h.Perms)).Get("/metrics", h.handleMetrics)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}
