package orghandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/org"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/requestctx"
)

type fakeService struct {
	employees []org.Employee
	err       error
}

func (f *fakeService) Chart(context.Context, string) (*org.Chart, error) {
	if f.err != nil {
		return nil, f.err
	}
	return org.BuildChart(f.employees, nil)
}

func (f *fakeService) Chain(_ context.Context, _ string, id string) ([]org.Employee, error) {
	return org.ChainOfCommand(f.employees, id)
}

func (f *fakeService) DepartmentSummary(context.Context, string) ([]org.DepartmentRollup, error) {
	return org.RollupDepartments(f.employees, nil), nil
}

func ref(id string) *string { return &id }

func employee(id string, manager *string) org.Employee {
	return org.Employee{ID: id, FirstName: id, LastName: "Doe", Status: org.StatusActive, ManagerID: manager}
}

func newRouter(t *testing.T, svc Service, collector *metrics.Collector) http.Handler {
	t.Helper()
	enforcer, err := auth.NewEnforcer()
	require.NoError(t, err)
	h := &Handler{Service: svc, Perms: enforcer, Metrics: collector}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestctx.WithUser(req.Context(), auth.UserContext{UserID: "u1", TenantID: "t1", RoleName: auth.RoleEmployee})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.RegisterRoutes(r)
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestChartReturnsForest(t *testing.T) {
	svc := &fakeService{employees: []org.Employee{
		employee("ceo", nil),
		employee("cto", ref("ceo")),
		employee("dev", ref("cto")),
	}}
	collector := metrics.New()
	rec := get(newRouter(t, svc, collector), "/org/chart")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data org.Chart `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data.Roots, 1)
	assert.Equal(t, "ceo", env.Data.Roots[0].ID)
	require.Len(t, env.Data.Roots[0].Reports, 1)
	assert.Equal(t, "dev", env.Data.Roots[0].Reports[0].Reports[0].ID)

	aggregations := collector.Snapshot()["aggregationsTotal"].(map[string]uint64)
	assert.Equal(t, uint64(1), aggregations["org.chart"])
}

func TestChartCycleIsUnprocessableWithPartialChart(t *testing.T) {
	svc := &fakeService{employees: []org.Employee{
		employee("root", nil),
		employee("a", ref("b")),
		employee("b", ref("a")),
	}}
	collector := metrics.New()
	rec := get(newRouter(t, svc, collector), "/org/chart")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var env struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Members []string  `json:"members"`
				Chart   org.Chart `json:"chart"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "cycle_detected", env.Error.Code)
	assert.ElementsMatch(t, []string{"a", "b"}, env.Error.Details.Members)
	require.Len(t, env.Error.Details.Chart.Roots, 1)
	assert.Equal(t, "root", env.Error.Details.Chart.Roots[0].ID)
	assert.Equal(t, uint64(1), collector.Snapshot()["cycleDetectedTotal"])
}

func TestChartStoreFailureIsInternalError(t *testing.T) {
	rec := get(newRouter(t, &fakeService{err: errors.New("connection refused")}, metrics.New()), "/org/chart")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChainListsManagersNearestFirst(t *testing.T) {
	svc := &fakeService{employees: []org.Employee{
		employee("ceo", nil),
		employee("cto", ref("ceo")),
		employee("dev", ref("cto")),
	}}
	rec := get(newRouter(t, svc, metrics.New()), "/org/employees/dev/chain")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data struct {
			Chain     []org.Employee `json:"chain"`
			Truncated bool           `json:"truncated"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data.Chain, 2)
	assert.Equal(t, "cto", env.Data.Chain[0].ID)
	assert.Equal(t, "ceo", env.Data.Chain[1].ID)
	assert.False(t, env.Data.Truncated)
}

func TestChainUnknownEmployeeIsNotFound(t *testing.T) {
	rec := get(newRouter(t, &fakeService{}, metrics.New()), "/org/employees/ghost/chain")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
