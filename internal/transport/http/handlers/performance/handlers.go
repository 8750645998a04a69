package performancehandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/performance"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/transport/http/api"
	crudhandler "hrerp/internal/transport/http/handlers/crud"
	"hrerp/internal/transport/http/middleware"
)

type Service interface {
	Summary(ctx context.Context, tenantID, employeeID string) (performance.PerformanceSummary, error)
}

type Handler struct {
	Service Service
	Perms   middleware.Authorizer
	Metrics *metrics.Collector
	goals   crudhandler.Registrar
}

func NewHandler(svc *performance.Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service: svc,
		Perms:   perms,
		Metrics: collector,
		goals: &crudhandler.Handler[performance.Goal]{
			Path:     "/goals",
			Resource: svc.Goals,
			Read:     auth.PermPerformanceRead,
			Write:    auth.PermPerformanceWrite,
			Filters:  map[string]string{"employeeId": "employee_id", "status": "status"},
			OrderBy:  []datastore.Order{datastore.Asc("due_date")},
			Perms:    perms,
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	if h.goals != nil {
		h.goals.RegisterRoutes(r)
	}
	r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/performance/summary", h.handleSummary)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := strings.TrimSpace(r.URL.Query().Get("employeeId"))
	summary, err := h.Service.Summary(r.Context(), user.TenantID, employeeID)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("performance.summary")
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
