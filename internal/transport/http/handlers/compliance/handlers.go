package compliancehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/compliance"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/transport/http/api"
	crudhandler "hrerp/internal/transport/http/handlers/crud"
	"hrerp/internal/transport/http/middleware"
)

type Service interface {
	Summary(ctx context.Context, tenantID string) (compliance.Summary, error)
	PolicyAcknowledgment(ctx context.Context, tenantID, policyID string) (compliance.PolicyAcknowledgment, error)
}

type Handler struct {
	Service  Service
	Perms    middleware.Authorizer
	Metrics  *metrics.Collector
	entities []crudhandler.Registrar
}

func NewHandler(svc *compliance.Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service: svc,
		Perms:   perms,
		Metrics: collector,
		entities: []crudhandler.Registrar{
			&crudhandler.Handler[compliance.Policy]{
				Path:     "/policies",
				Resource: svc.Policies,
				Read:     auth.PermComplianceRead,
				Write:    auth.PermComplianceWrite,
				OrderBy:  []datastore.Order{datastore.Asc("title")},
				Perms:    perms,
			},
			&crudhandler.Handler[compliance.Acknowledgment]{
				Path:     "/policy-acknowledgments",
				Resource: svc.Acknowledgments,
				Read:     auth.PermComplianceRead,
				Write:    auth.PermComplianceWrite,
				Filters:  map[string]string{"policyId": "policy_id", "employeeId": "employee_id"},
				OrderBy:  []datastore.Order{datastore.Desc("acknowledged_at")},
				Perms:    perms,
			},
			&crudhandler.Handler[compliance.Item]{
				Path:     "/compliance-items",
				Resource: svc.Items,
				Read:     auth.PermComplianceRead,
				Write:    auth.PermComplianceWrite,
				Filters:  map[string]string{"status": "status", "category": "category", "ownerId": "owner_id"},
				OrderBy:  []datastore.Order{datastore.Asc("due_date")},
				Perms:    perms,
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, e := range h.entities {
		e.RegisterRoutes(r)
	}
	read := middleware.RequirePermission(auth.PermComplianceRead, h.Perms)
	r.Route("/compliance", func(r chi.Router) {
		r.With(read).Get("/summary", h.handleSummary)
		r.With(read).Get("/policies/{id}/acknowledgment", h.handleAcknowledgment)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	summary, err := h.Service.Summary(r.Context(), user.TenantID)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("compliance.summary")
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAcknowledgment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	row, err := h.Service.PolicyAcknowledgment(r.Context(), user.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("compliance.acknowledgment")
	api.Success(w, row, middleware.GetRequestID(r.Context()))
}
