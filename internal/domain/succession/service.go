package succession

import (
	"context"
	"strings"

	"hrerp/internal/platform/datastore"
)

type Service struct {
	store      *Store
	Positions  *datastore.Resource[KeyPosition]
	Successors *datastore.Resource[Successor]
}

func NewService(store *Store) *Service {
	return &Service{
		store:      store,
		Positions:  datastore.NewResource(store.Positions, validatePosition),
		Successors: datastore.NewResource(store.Successors, validateSuccessor),
	}
}

func (s *Service) Summary(ctx context.Context, tenantID string) (Summary, error) {
	positions, err := s.store.Positions.List(ctx, tenantID, datastore.Query{OrderBy: []datastore.Order{datastore.Asc("title")}})
	if err != nil {
		return Summary{}, err
	}
	successors, err := s.store.Successors.List(ctx, tenantID, datastore.Query{OrderBy: []datastore.Order{datastore.Desc("development_progress")}})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(positions, successors), nil
}

// RecordProgress updates a candidate's development progress alone.
func (s *Service) RecordProgress(ctx context.Context, tenantID, successorID string, progress int) (Successor, error) {
	var issues datastore.Issues
	issues.Range("developmentProgress", float64(progress), 0, 100)
	if err := issues.Err(); err != nil {
		return Successor{}, err
	}
	return s.Successors.Update(ctx, tenantID, successorID, datastore.Patch{"development_progress": progress})
}

func validatePosition(_ context.Context, _, _ string, p KeyPosition) (KeyPosition, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Criticality == "" {
		p.Criticality = LevelMedium
	}
	if p.RiskLevel == "" {
		p.RiskLevel = LevelMedium
	}
	var issues datastore.Issues
	issues.Required("title", p.Title)
	issues.Enum("criticality", p.Criticality, LevelLow, LevelMedium, LevelHigh, LevelCritical)
	issues.Enum("riskLevel", p.RiskLevel, LevelLow, LevelMedium, LevelHigh)
	issues.UUID("departmentId", p.DepartmentID)
	issues.UUID("incumbentId", p.IncumbentID)
	return p, issues.Err()
}

func validateSuccessor(_ context.Context, _, _ string, s Successor) (Successor, error) {
	var issues datastore.Issues
	issues.Required("positionId", s.PositionID)
	issues.UUID("positionId", &s.PositionID)
	issues.Required("employeeId", s.EmployeeID)
	issues.UUID("employeeId", &s.EmployeeID)
	issues.Enum("readinessLevel", string(s.ReadinessLevel), string(ReadyNow), string(ReadyOneToTwo), string(ReadyTwoPlus))
	issues.Range("developmentProgress", float64(s.DevelopmentProgress), 0, 100)
	return s, issues.Err()
}
