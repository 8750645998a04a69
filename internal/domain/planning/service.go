package planning

import (
	"context"
	"strings"
	"time"

	"hrerp/internal/domain/rollup"
	"hrerp/internal/platform/datastore"
)

type Service struct {
	store       *Store
	threshold   float64
	Plans       *datastore.Resource[CapacityPlan]
	Skills      *datastore.Resource[Skill]
	Assessments *datastore.Resource[SkillAssessment]
}

// NewService uses threshold as the critical skill-gap magnitude; a
// non-positive value falls back to rollup.DefaultCriticalThreshold.
func NewService(store *Store, threshold float64) *Service {
	if threshold <= 0 {
		threshold = rollup.DefaultCriticalThreshold
	}
	s := &Service{store: store, threshold: threshold}
	s.Plans = datastore.NewResource(store.Plans, validatePlan)
	s.Skills = datastore.NewResource(store.Skills, validateSkill)
	s.Assessments = datastore.NewResource(store.Assessments, validateAssessment)
	return s
}

func (s *Service) Threshold() float64 {
	return s.threshold
}

func (s *Service) CapacitySummary(ctx context.Context, tenantID, period string) (CapacitySummary, error) {
	q := datastore.Query{OrderBy: []datastore.Order{datastore.Asc("period"), datastore.Asc("department_name")}}
	if period != "" {
		q = q.Where(datastore.Eq("period", period))
	}
	plans, err := s.store.Plans.List(ctx, tenantID, q)
	if err != nil {
		return CapacitySummary{}, err
	}
	return SummarizeCapacity(plans), nil
}

// SetPriority changes only the stored priority of a plan.
func (s *Service) SetPriority(ctx context.Context, tenantID, planID string, priority rollup.Priority) (CapacityPlan, error) {
	if !priority.Valid() {
		var issues datastore.Issues
		issues.Enum("priority", string(priority), string(rollup.PriorityLow), string(rollup.PriorityMedium), string(rollup.PriorityHigh))
		return CapacityPlan{}, issues.Err()
	}
	return s.Plans.Update(ctx, tenantID, planID, datastore.Patch{"priority": string(priority)})
}

func (s *Service) SkillGaps(ctx context.Context, tenantID string, filters ...datastore.Filter) (SkillGapReport, error) {
	assessments, err := s.store.Assessments.List(ctx, tenantID, datastore.Query{Filters: filters})
	if err != nil {
		return SkillGapReport{}, err
	}
	return BuildSkillGapReport(assessments, s.threshold), nil
}

func validatePlan(_ context.Context, _, _ string, p CapacityPlan) (CapacityPlan, error) {
	p.Period = strings.TrimSpace(p.Period)
	if p.Priority == "" {
		p.Priority = rollup.PriorityMedium
	}
	var issues datastore.Issues
	issues.Required("period", p.Period)
	issues.UUID("departmentId", p.DepartmentID)
	issues.NonNegative("currentHeadcount", float64(p.CurrentHeadcount))
	issues.NonNegative("plannedHeadcount", float64(p.PlannedHeadcount))
	issues.NonNegative("capacity", float64(p.Capacity))
	issues.NonNegative("openPositions", float64(p.OpenPositions))
	issues.Enum("priority", string(p.Priority), string(rollup.PriorityLow), string(rollup.PriorityMedium), string(rollup.PriorityHigh))
	return p, issues.Err()
}

func validateSkill(_ context.Context, _, _ string, sk Skill) (Skill, error) {
	sk.Name = strings.TrimSpace(sk.Name)
	sk.Category = strings.TrimSpace(sk.Category)
	var issues datastore.Issues
	issues.Required("name", sk.Name)
	return sk, issues.Err()
}

func validateAssessment(_ context.Context, _, _ string, a SkillAssessment) (SkillAssessment, error) {
	if a.AssessedAt.IsZero() {
		a.AssessedAt = time.Now().UTC().Truncate(24 * time.Hour)
	}
	var issues datastore.Issues
	issues.Required("employeeId", a.EmployeeID)
	issues.UUID("employeeId", &a.EmployeeID)
	issues.Required("skillId", a.SkillID)
	issues.UUID("skillId", &a.SkillID)
	issues.Range("currentLevel", float64(a.CurrentLevel), 0, 100)
	issues.Range("targetLevel", float64(a.TargetLevel), 0, 100)
	return a, issues.Err()
}
