package audithandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrerp/internal/domain/audit"
	"hrerp/internal/domain/auth"
	"hrerp/internal/requestctx"
)

type fakeService struct {
	events     []audit.Event
	lastFilter audit.Filter
	lastLimit  int
}

func (f *fakeService) List(_ context.Context, _ string, filter audit.Filter, limit, _ int) ([]audit.Event, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	return f.events, nil
}

func (f *fakeService) Count(context.Context, string, audit.Filter) (int, error) {
	return len(f.events) + 40, nil
}

func newRouter(t *testing.T, svc Service, role string) http.Handler {
	t.Helper()
	enforcer, err := auth.NewEnforcer()
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestctx.WithUser(req.Context(), auth.UserContext{UserID: "u1", TenantID: "t1", RoleName: role})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	NewHandler(svc, enforcer).RegisterRoutes(r)
	return r
}

func sampleEvents() []audit.Event {
	return []audit.Event{{
		ID:         "a-1",
		ActorID:    "u-7",
		Action:     "update",
		EntityType: "employees",
		EntityID:   "e-1",
		RequestID:  "req-1",
		CreatedAt:  time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}}
}

func TestListEventsPassesFilters(t *testing.T) {
	svc := &fakeService{events: sampleEvents()}
	router := newRouter(t, svc, auth.RoleHR)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/events?action=update&entityType=employees&actorId=u-7&limit=1000", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "41", rec.Header().Get("X-Total-Count"))
	assert.Equal(t, audit.Filter{Action: "update", EntityType: "employees", ActorID: "u-7"}, svc.lastFilter)
	assert.Equal(t, 500, svc.lastLimit)
	assert.Contains(t, rec.Body.String(), `"entityId":"e-1"`)
}

func TestExportEventsWritesCSV(t *testing.T) {
	svc := &fakeService{events: sampleEvents()}
	router := newRouter(t, svc, auth.RoleSystemAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/events/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a-1,u-7,update,employees,e-1,req-1,2024-03-01T09:30:00Z", lines[1])
}

func TestAuditRequiresPermission(t *testing.T) {
	router := newRouter(t, &fakeService{}, auth.RoleManager)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/events", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
