package attendancehandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/attendance"
	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/stats"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/transport/http/api"
	crudhandler "hrerp/internal/transport/http/handlers/crud"
	"hrerp/internal/transport/http/middleware"
	"hrerp/internal/transport/http/shared"
)

// defaultWindowDays is the range used when from/to are omitted.
const defaultWindowDays = 30

type Service interface {
	Stats(ctx context.Context, tenantID string, from, to time.Time, period stats.Period) (attendance.Stats, error)
	Timesheets(ctx context.Context, tenantID string, from, to time.Time) ([]attendance.Timesheet, error)
}

type Handler struct {
	Service Service
	Perms   middleware.Authorizer
	Metrics *metrics.Collector
	records crudhandler.Registrar
}

func NewHandler(svc *attendance.Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service: svc,
		Perms:   perms,
		Metrics: collector,
		records: &crudhandler.Handler[attendance.Record]{
			Path:     "/attendance/records",
			Resource: svc.Records,
			Read:     auth.PermAttendanceRead,
			Write:    auth.PermAttendanceWrite,
			Filters:  map[string]string{"employeeId": "employee_id", "status": "status", "workDate": "work_date"},
			OrderBy:  []datastore.Order{datastore.Desc("work_date")},
			Perms:    perms,
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	if h.records != nil {
		h.records.RegisterRoutes(r)
	}
	read := middleware.RequirePermission(auth.PermAttendanceRead, h.Perms)
	r.With(read).Get("/attendance/stats", h.handleStats)
	r.With(read).Get("/attendance/timesheets", h.handleTimesheets)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rng, err := shared.ParseRange(r, defaultWindowDays)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	out, err := h.Service.Stats(r.Context(), user.TenantID, rng.From, rng.To, rng.Period)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("attendance.stats")
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTimesheets(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rng, err := shared.ParseRange(r, defaultWindowDays)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	rows, err := h.Service.Timesheets(r.Context(), user.TenantID, rng.From, rng.To)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("attendance.timesheets")
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}
