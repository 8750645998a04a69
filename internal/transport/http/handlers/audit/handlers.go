package audithandler

import (
	"context"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/audit"
	"hrerp/internal/domain/auth"
	"hrerp/internal/transport/http/api"
	"hrerp/internal/transport/http/middleware"
	"hrerp/internal/transport/http/shared"
)

const exportLimit = 10000

type Service interface {
	List(ctx context.Context, tenantID string, filter audit.Filter, limit, offset int) ([]audit.Event, error)
	Count(ctx context.Context, tenantID string, filter audit.Filter) (int, error)
}

type Handler struct {
	Service Service
	Perms   middleware.Authorizer
}

func NewHandler(service Service, perms middleware.Authorizer) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermAuditRead, h.Perms))
		r.Get("/events", h.handleListEvents)
		r.Get("/events/export", h.handleExportEvents)
	})
}

func filterFrom(r *http.Request) audit.Filter {
	q := r.URL.Query()
	return audit.Filter{
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
		ActorID:    q.Get("actorId"),
	}
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 100, 500)
	filter := filterFrom(r)

	total, err := h.Service.Count(r.Context(), user.TenantID, filter)
	if err != nil {
		slog.Warn("audit count failed", "err", err, "request_id", middleware.GetRequestID(r.Context()))
	}
	events, err := h.Service.List(r.Context(), user.TenantID, filter, page.Limit, page.Offset)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.SuccessPage(w, events, api.Page{Limit: page.Limit, Offset: page.Offset, Count: len(events)}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	events, err := h.Service.List(r.Context(), user.TenantID, filterFrom(r), exportLimit, 0)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=audit-events.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "actor_id", "action", "entity_type", "entity_id", "request_id", "created_at"}); err != nil {
		slog.Warn("audit export header failed", "err", err)
	}
	for _, evt := range events {
		if err := writer.Write([]string{evt.ID, evt.ActorID, evt.Action, evt.EntityType, evt.EntityID, evt.RequestID, evt.CreatedAt.UTC().Format(time.RFC3339)}); err != nil {
			slog.Warn("audit export row failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("audit export flush failed", "err", err)
	}
}
