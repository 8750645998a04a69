package successionhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/succession"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/requestctx"
)

type fakeService struct {
	positions  []succession.KeyPosition
	successors []succession.Successor
}

func (f *fakeService) Summary(context.Context, string) (succession.Summary, error) {
	return succession.Summarize(f.positions, f.successors), nil
}

func (f *fakeService) RecordProgress(_ context.Context, _ string, id string, progress int) (succession.Successor, error) {
	var issues datastore.Issues
	issues.Range("developmentProgress", float64(progress), 0, 100)
	if err := issues.Err(); err != nil {
		return succession.Successor{}, err
	}
	return succession.Successor{ID: id, DevelopmentProgress: progress}, nil
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

func TestSummaryCountsReadiness(t *testing.T) {
	svc := &fakeService{
		positions: []succession.KeyPosition{
			{ID: "p1", Title: "CFO", RiskLevel: succession.LevelHigh},
			{ID: "p2", Title: "CTO", RiskLevel: succession.LevelLow},
		},
		successors: []succession.Successor{
			{ID: "s1", PositionID: "p1", ReadinessLevel: succession.ReadyNow, DevelopmentProgress: 90},
			{ID: "s2", PositionID: "p1", ReadinessLevel: succession.ReadyTwoPlus, DevelopmentProgress: 30},
		},
	}
	rec := httptest.NewRecorder()
	newRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/succession/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data succession.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 2, env.Data.TotalPositions)
	assert.Equal(t, 1, env.Data.UncoveredPositions)
	assert.Equal(t, 1, env.Data.ByReadiness[succession.ReadyNow])
	require.Len(t, env.Data.Positions, 2)
	assert.True(t, env.Data.Positions[0].HasReadySuccessor)
	assert.Equal(t, float64(60), env.Data.Positions[0].AverageProgress)
}

func TestProgressRejectsOutOfRange(t *testing.T) {
	router := newRouter(t, &fakeService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/succession/successors/s1/progress", strings.NewReader(`{"developmentProgress":140}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/succession/successors/s1/progress", strings.NewReader(`{"developmentProgress":55}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
