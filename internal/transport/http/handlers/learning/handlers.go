package learninghandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/learning"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/transport/http/api"
	crudhandler "hrerp/internal/transport/http/handlers/crud"
	"hrerp/internal/transport/http/middleware"
)

type Service interface {
	Summary(ctx context.Context, tenantID string) (learning.Summary, error)
	RecordProgress(ctx context.Context, tenantID, enrollmentID string, progress int) (learning.Enrollment, error)
}

type Handler struct {
	Service  Service
	Perms    middleware.Authorizer
	Metrics  *metrics.Collector
	entities []crudhandler.Registrar
}

func NewHandler(svc *learning.Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service: svc,
		Perms:   perms,
		Metrics: collector,
		entities: []crudhandler.Registrar{
			&crudhandler.Handler[learning.Course]{
				Path:     "/courses",
				Resource: svc.Courses,
				Read:     auth.PermLearningRead,
				Write:    auth.PermLearningWrite,
				Filters:  map[string]string{"category": "category"},
				OrderBy:  []datastore.Order{datastore.Asc("title")},
				Perms:    perms,
			},
			&crudhandler.Handler[learning.Enrollment]{
				Path:     "/enrollments",
				Resource: svc.Enrollments,
				Read:     auth.PermLearningRead,
				Write:    auth.PermLearningWrite,
				Filters:  map[string]string{"courseId": "course_id", "employeeId": "employee_id", "status": "status"},
				OrderBy:  []datastore.Order{datastore.Desc("enrolled_at")},
				Perms:    perms,
			},
			&crudhandler.Handler[learning.Certification]{
				Path:     "/certifications",
				Resource: svc.Certifications,
				Read:     auth.PermLearningRead,
				Write:    auth.PermLearningWrite,
				Filters:  map[string]string{"employeeId": "employee_id"},
				OrderBy:  []datastore.Order{datastore.Asc("expiry_date")},
				Perms:    perms,
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, e := range h.entities {
		e.RegisterRoutes(r)
	}
	r.Route("/learning", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLearningRead, h.Perms)).Get("/summary", h.handleSummary)
		r.With(middleware.RequirePermission(auth.PermLearningWrite, h.Perms)).Put("/enrollments/{id}/progress", h.handleProgress)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	summary, err := h.Service.Summary(r.Context(), user.TenantID)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("learning.summary")
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var body struct {
		Progress int `json:"progress"`
	}
	if !crudhandler.Decode(w, r, &body) {
		return
	}
	enrollment, err := h.Service.RecordProgress(r.Context(), user.TenantID, chi.URLParam(r, "id"), body.Progress)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, enrollment, middleware.GetRequestID(r.Context()))
}
