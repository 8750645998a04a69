package reportshandler

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/reports"
	"hrerp/internal/domain/stats"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/platform/pdf"
	"hrerp/internal/transport/http/api"
	"hrerp/internal/transport/http/middleware"
	"hrerp/internal/transport/http/shared"
)

const defaultWindowDays = 90

type Service interface {
	Dashboard(ctx context.Context, tenantID string, from, to time.Time, period stats.Period) (reports.Dashboard, error)
}

type Handler struct {
	Service Service
	Perms   middleware.Authorizer
	Metrics *metrics.Collector
}

func NewHandler(svc Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{Service: svc, Perms: perms, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermReportsRead, h.Perms)
	r.Route("/reports", func(r chi.Router) {
		r.With(read).Get("/dashboard", h.handleDashboard)
		r.With(read).Get("/workforce.pdf", h.handleWorkforcePDF)
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) (reports.Dashboard, bool) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	rng, err := shared.ParseRange(r, defaultWindowDays)
	if err != nil {
		api.FailError(w, err, requestID)
		return reports.Dashboard{}, false
	}
	d, err := h.Service.Dashboard(r.Context(), user.TenantID, rng.From, rng.To, rng.Period)
	if err != nil {
		api.FailError(w, err, requestID)
		return reports.Dashboard{}, false
	}
	h.Metrics.Aggregation("reports.dashboard")
	return d, true
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	api.Success(w, d, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleWorkforcePDF(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := pdf.Render(&buf, reports.WorkforceDocument(d)); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=workforce-"+d.To.Format("2006-01-02")+".pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
