package performance

import (
	"context"
	"strings"
	"time"

	"hrerp/internal/platform/datastore"
)

type Service struct {
	store *Store
	now   func() time.Time
	Goals *datastore.Resource[Goal]
}

func NewService(store *Store) *Service {
	s := &Service{store: store, now: time.Now}
	s.Goals = datastore.NewResource(store.Goals, validateGoal)
	return s
}

// Summary rolls up every goal of the tenant, or only one employee's goals
// when employeeID is set.
func (s *Service) Summary(ctx context.Context, tenantID, employeeID string) (PerformanceSummary, error) {
	var q datastore.Query
	if employeeID != "" {
		q = q.Where(datastore.Eq("employee_id", employeeID))
	}
	goals, err := s.store.Goals.List(ctx, tenantID, q)
	if err != nil {
		return PerformanceSummary{}, err
	}
	return BuildSummary(goals, s.now()), nil
}

func validateGoal(_ context.Context, _, _ string, g Goal) (Goal, error) {
	g.Title = strings.TrimSpace(g.Title)
	if g.Status == "" {
		g.Status = GoalStatusActive
	}
	var issues datastore.Issues
	issues.Required("employeeId", g.EmployeeID)
	issues.UUID("employeeId", &g.EmployeeID)
	issues.Required("title", g.Title)
	issues.Enum("status", g.Status, GoalStatuses...)
	issues.Range("progress", g.Progress, 0, 100)
	if g.Rating != nil {
		issues.Range("rating", *g.Rating, MinRating, MaxRating)
	}
	return g, issues.Err()
}

func (s *Service) AllGoals(ctx context.Context, tenantID string) ([]Goal, error) {
	return s.store.Goals.List(ctx, tenantID, datastore.Query{OrderBy: []datastore.Order{datastore.Asc("due_date")}})
}
