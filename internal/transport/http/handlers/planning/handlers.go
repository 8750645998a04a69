package planninghandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/planning"
	"hrerp/internal/domain/rollup"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/transport/http/api"
	crudhandler "hrerp/internal/transport/http/handlers/crud"
	"hrerp/internal/transport/http/middleware"
)

type Service interface {
	CapacitySummary(ctx context.Context, tenantID, period string) (planning.CapacitySummary, error)
	SetPriority(ctx context.Context, tenantID, planID string, priority rollup.Priority) (planning.CapacityPlan, error)
	SkillGaps(ctx context.Context, tenantID string, filters ...datastore.Filter) (planning.SkillGapReport, error)
}

type Handler struct {
	Service  Service
	Perms    middleware.Authorizer
	Metrics  *metrics.Collector
	entities []crudhandler.Registrar
}

func NewHandler(svc *planning.Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service: svc,
		Perms:   perms,
		Metrics: collector,
		entities: []crudhandler.Registrar{
			&crudhandler.Handler[planning.CapacityPlan]{
				Path:     "/capacity-plans",
				Resource: svc.Plans,
				Read:     auth.PermPlanningRead,
				Write:    auth.PermPlanningWrite,
				Filters:  map[string]string{"period": "period", "departmentId": "department_id", "priority": "priority"},
				OrderBy:  []datastore.Order{datastore.Desc("period")},
				Perms:    perms,
			},
			&crudhandler.Handler[planning.Skill]{
				Path:     "/skills",
				Resource: svc.Skills,
				Read:     auth.PermPlanningRead,
				Write:    auth.PermPlanningWrite,
				Filters:  map[string]string{"category": "category"},
				OrderBy:  []datastore.Order{datastore.Asc("name")},
				Perms:    perms,
			},
			&crudhandler.Handler[planning.SkillAssessment]{
				Path:     "/skill-assessments",
				Resource: svc.Assessments,
				Read:     auth.PermPlanningRead,
				Write:    auth.PermPlanningWrite,
				Filters:  map[string]string{"employeeId": "employee_id", "skillId": "skill_id"},
				OrderBy:  []datastore.Order{datastore.Desc("assessed_at")},
				Perms:    perms,
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, e := range h.entities {
		e.RegisterRoutes(r)
	}
	read := middleware.RequirePermission(auth.PermPlanningRead, h.Perms)
	write := middleware.RequirePermission(auth.PermPlanningWrite, h.Perms)
	r.Route("/planning", func(r chi.Router) {
		r.With(read).Get("/capacity", h.handleCapacity)
		r.With(read).Get("/skill-gaps", h.handleSkillGaps)
		r.With(write).Put("/capacity-plans/{id}/priority", h.handleSetPriority)
	})
}

func (h *Handler) handleCapacity(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	summary, err := h.Service.CapacitySummary(r.Context(), user.TenantID, strings.TrimSpace(r.URL.Query().Get("period")))
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("planning.capacity")
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSkillGaps(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var filters []datastore.Filter
	if id := strings.TrimSpace(r.URL.Query().Get("employeeId")); id != "" {
		filters = append(filters, datastore.Eq("employee_id", id))
	}
	if id := strings.TrimSpace(r.URL.Query().Get("skillId")); id != "" {
		filters = append(filters, datastore.Eq("skill_id", id))
	}
	report, err := h.Service.SkillGaps(r.Context(), user.TenantID, filters...)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("planning.skill_gaps")
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetPriority(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var body struct {
		Priority string `json:"priority"`
	}
	if !crudhandler.Decode(w, r, &body) {
		return
	}
	priority := rollup.Priority(strings.ToLower(strings.TrimSpace(body.Priority)))
	plan, err := h.Service.SetPriority(r.Context(), user.TenantID, chi.URLParam(r, "id"), priority)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, plan, middleware.GetRequestID(r.Context()))
}
