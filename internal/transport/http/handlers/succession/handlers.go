package successionhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/succession"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/transport/http/api"
	crudhandler "hrerp/internal/transport/http/handlers/crud"
	"hrerp/internal/transport/http/middleware"
)

type Service interface {
	Summary(ctx context.Context, tenantID string) (succession.Summary, error)
	RecordProgress(ctx context.Context, tenantID, successorID string, progress int) (succession.Successor, error)
}

type Handler struct {
	Service  Service
	Perms    middleware.Authorizer
	Metrics  *metrics.Collector
	entities []crudhandler.Registrar
}

func NewHandler(svc *succession.Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service: svc,
		Perms:   perms,
		Metrics: collector,
		entities: []crudhandler.Registrar{
			&crudhandler.Handler[succession.KeyPosition]{
				Path:     "/key-positions",
				Resource: svc.Positions,
				Read:     auth.PermSuccessionRead,
				Write:    auth.PermSuccessionWrite,
				Filters:  map[string]string{"departmentId": "department_id", "riskLevel": "risk_level", "criticality": "criticality"},
				OrderBy:  []datastore.Order{datastore.Asc("title")},
				Perms:    perms,
			},
			&crudhandler.Handler[succession.Successor]{
				Path:     "/successors",
				Resource: svc.Successors,
				Read:     auth.PermSuccessionRead,
				Write:    auth.PermSuccessionWrite,
				Filters:  map[string]string{"positionId": "position_id", "employeeId": "employee_id", "readinessLevel": "readiness_level"},
				OrderBy:  []datastore.Order{datastore.Desc("development_progress")},
				Perms:    perms,
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, e := range h.entities {
		e.RegisterRoutes(r)
	}
	r.Route("/succession", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermSuccessionRead, h.Perms)).Get("/summary", h.handleSummary)
		r.With(middleware.RequirePermission(auth.PermSuccessionWrite, h.Perms)).Put("/successors/{id}/progress", h.handleProgress)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	summary, err := h.Service.Summary(r.Context(), user.TenantID)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("succession.summary")
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var body struct {
		DevelopmentProgress int `json:"developmentProgress"`
	}
	if !crudhandler.Decode(w, r, &body) {
		return
	}
	successor, err := h.Service.RecordProgress(r.Context(), user.TenantID, chi.URLParam(r, "id"), body.DevelopmentProgress)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, successor, middleware.GetRequestID(r.Context()))
}
