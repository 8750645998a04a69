package compliancehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/compliance"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/requestctx"
)

type fakeService struct {
	policies map[string]compliance.Policy
	acked    int
	active   int
}

func (f *fakeService) Summary(context.Context, string) (compliance.Summary, error) {
	return compliance.Summary{ActiveEmployees: f.active}, nil
}

func (f *fakeService) PolicyAcknowledgment(_ context.Context, _ string, id string) (compliance.PolicyAcknowledgment, error) {
	p, ok := f.policies[id]
	if !ok {
		return compliance.PolicyAcknowledgment{}, datastore.ErrNotFound
	}
	return compliance.AcknowledgmentRate(p, f.acked, f.active), nil
}

func newRouter(t *testing.T, svc Service) http.Handler {
	t.Helper()
	enforcer, err := auth.NewEnforcer()
	require.NoError(t, err)
	h := &Handler{Service: svc, Perms: enforcer}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestctx.WithUser(req.Context(), auth.UserContext{UserID: "u1", TenantID: "t1", RoleName: auth.RoleHR})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.RegisterRoutes(r)
	return r
}

func TestPolicyAcknowledgmentPercentage(t *testing.T) {
	svc := &fakeService{
		policies: map[string]compliance.Policy{"p1": {ID: "p1", Title: "Code of conduct", RequiresAcknowledgment: true}},
		acked:    7,
		active:   10,
	}
	router := newRouter(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compliance/policies/p1/acknowledgment", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env struct {
		Data compliance.PolicyAcknowledgment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 70, env.Data.Percentage)
	assert.Equal(t, 3, env.Data.Pending)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compliance/policies/nope/acknowledgment", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPolicyAcknowledgmentWithNoEmployeesIsZero(t *testing.T) {
	svc := &fakeService{policies: map[string]compliance.Policy{"p1": {ID: "p1"}}}
	rec := httptest.NewRecorder()
	newRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compliance/policies/p1/acknowledgment", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data compliance.PolicyAcknowledgment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 0, env.Data.Percentage)
}
