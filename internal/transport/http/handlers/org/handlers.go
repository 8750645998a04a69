package orghandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/org"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/transport/http/api"
	crudhandler "hrerp/internal/transport/http/handlers/crud"
	"hrerp/internal/transport/http/middleware"
)

type Service interface {
	Chart(ctx context.Context, tenantID string) (*org.Chart, error)
	Chain(ctx context.Context, tenantID, employeeID string) ([]org.Employee, error)
	DepartmentSummary(ctx context.Context, tenantID string) ([]org.DepartmentRollup, error)
}

type Handler struct {
	Service  Service
	Perms    middleware.Authorizer
	Metrics  *metrics.Collector
	entities []crudhandler.Registrar
}

func NewHandler(svc *org.Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service: svc,
		Perms:   perms,
		Metrics: collector,
		entities: []crudhandler.Registrar{
			&crudhandler.Handler[org.Employee]{
				Path:     "/employees",
				Resource: svc.Employees,
				Read:     auth.PermEmployeesRead,
				Write:    auth.PermEmployeesWrite,
				Filters:  map[string]string{"status": "status", "departmentId": "department_id", "managerId": "manager_id"},
				OrderBy:  []datastore.Order{datastore.Asc("last_name"), datastore.Asc("first_name")},
				Perms:    perms,
			},
			&crudhandler.Handler[org.Department]{
				Path:     "/departments",
				Resource: svc.Departments,
				Read:     auth.PermOrgRead,
				Write:    auth.PermOrgWrite,
				OrderBy:  []datastore.Order{datastore.Asc("name")},
				Perms:    perms,
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, e := range h.entities {
		e.RegisterRoutes(r)
	}
	read := middleware.RequirePermission(auth.PermOrgRead, h.Perms)
	r.Route("/org", func(r chi.Router) {
		r.With(read).Get("/chart", h.handleChart)
		r.With(read).Get("/employees/{id}/chain", h.handleChain)
		r.With(read).Get("/departments/summary", h.handleDepartments)
	})
}

// handleChart answers 422 when the manager graph has a cycle; the body
// still carries every employee that could be placed.
func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	chart, err := h.Service.Chart(r.Context(), user.TenantID)
	var cycle *org.CycleError
	if errors.As(err, &cycle) {
		h.Metrics.CycleDetected()
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "cycle_detected", "manager references form a cycle", map[string]any{
			"members":  cycle.Members,
			"unplaced": cycle.Unplaced,
			"chart":    chart,
		}, requestID)
		return
	}
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.Metrics.Aggregation("org.chart")
	api.Success(w, chart, requestID)
}

func (h *Handler) handleChain(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	chain, err := h.Service.Chain(r.Context(), user.TenantID, chi.URLParam(r, "id"))
	if err != nil && !errors.Is(err, org.ErrCycleDetected) {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		h.Metrics.CycleDetected()
	}
	h.Metrics.Aggregation("org.chain")
	api.Success(w, map[string]any{
		"chain":     chain,
		"truncated": err != nil,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rollups, err := h.Service.DepartmentSummary(r.Context(), user.TenantID)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("org.departments")
	api.Success(w, rollups, middleware.GetRequestID(r.Context()))
}
