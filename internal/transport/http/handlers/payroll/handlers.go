package payrollhandler

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/payroll"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/platform/pdf"
	"hrerp/internal/transport/http/api"
	crudhandler "hrerp/internal/transport/http/handlers/crud"
	"hrerp/internal/transport/http/middleware"
)

type Service interface {
	Summary(ctx context.Context, tenantID, period string) (payroll.PeriodSummary, error)
	Payslip(ctx context.Context, tenantID, recordID string) (payroll.Payslip, error)
}

type Handler struct {
	Service Service
	Perms   middleware.Authorizer
	Metrics *metrics.Collector
	records crudhandler.Registrar
}

func NewHandler(svc *payroll.Service, perms middleware.Authorizer, collector *metrics.Collector) *Handler {
	return &Handler{
		Service: svc,
		Perms:   perms,
		Metrics: collector,
		records: &crudhandler.Handler[payroll.Record]{
			Path:     "/payroll-records",
			Resource: svc.Records,
			Read:     auth.PermPayrollRead,
			Write:    auth.PermPayrollWrite,
			Filters:  map[string]string{"employeeId": "employee_id", "period": "period", "currency": "currency"},
			OrderBy:  []datastore.Order{datastore.Desc("period"), datastore.Asc("employee_name")},
			Perms:    perms,
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	if h.records != nil {
		h.records.RegisterRoutes(r)
	}
	read := middleware.RequirePermission(auth.PermPayrollRead, h.Perms)
	r.Route("/payroll", func(r chi.Router) {
		r.With(read).Get("/summary", h.handleSummary)
		r.With(read).Get("/records/{id}/payslip", h.handlePayslip)
		r.With(read).Get("/records/{id}/payslip.pdf", h.handlePayslipPDF)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	summary, err := h.Service.Summary(r.Context(), user.TenantID, strings.TrimSpace(r.URL.Query().Get("period")))
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Metrics.Aggregation("payroll.summary")
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	slip, err := h.Service.Payslip(r.Context(), user.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, slip, middleware.GetRequestID(r.Context()))
}

// handlePayslipPDF renders into memory first so a render failure can still
// be answered with a JSON error.
func (h *Handler) handlePayslipPDF(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	slip, err := h.Service.Payslip(r.Context(), user.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	var buf bytes.Buffer
	if err := pdf.Render(&buf, payroll.PayslipDocument(slip)); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payslip-"+slip.Period+"-"+slip.RecordID+".pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
