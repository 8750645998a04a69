package compliance

import (
	"context"
	"strings"
	"time"

	"hrerp/internal/platform/datastore"
)

// Headcounter reports how many employees are currently active.
type Headcounter interface {
	ActiveHeadcount(ctx context.Context, tenantID string) (int, error)
}

type Service struct {
	store           *Store
	employees       Headcounter
	now             func() time.Time
	Policies        *datastore.Resource[Policy]
	Acknowledgments *datastore.Resource[Acknowledgment]
	Items           *datastore.Resource[Item]
}

func NewService(store *Store, employees Headcounter) *Service {
	s := &Service{store: store, employees: employees, now: time.Now}
	s.Policies = datastore.NewResource(store.Policies, validatePolicy)
	s.Acknowledgments = datastore.NewResource(store.Acknowledgments, s.validateAcknowledgment)
	s.Items = datastore.NewResource(store.Items, validateItem)
	return s
}

func (s *Service) Summary(ctx context.Context, tenantID string) (Summary, error) {
	active, err := s.employees.ActiveHeadcount(ctx, tenantID)
	if err != nil {
		return Summary{}, err
	}
	policies, err := s.store.Policies.List(ctx, tenantID, datastore.Query{OrderBy: []datastore.Order{datastore.Asc("title")}})
	if err != nil {
		return Summary{}, err
	}
	acks, err := s.store.Acknowledgments.List(ctx, tenantID, datastore.Query{})
	if err != nil {
		return Summary{}, err
	}
	items, err := s.store.Items.List(ctx, tenantID, datastore.Query{OrderBy: []datastore.Order{datastore.Asc("due_date")}})
	if err != nil {
		return Summary{}, err
	}
	rows := RollupAcknowledgments(policies, acks, active)
	return Summary{
		ActiveEmployees: active,
		Policies:        rows,
		OverallRate:     OverallRate(rows),
		Items:           SummarizeItems(items, s.now()),
	}, nil
}

// PolicyAcknowledgment reports one policy's acknowledgment percentage.
func (s *Service) PolicyAcknowledgment(ctx context.Context, tenantID, policyID string) (PolicyAcknowledgment, error) {
	policy, err := s.store.Policies.Get(ctx, tenantID, policyID)
	if err != nil {
		return PolicyAcknowledgment{}, err
	}
	active, err := s.employees.ActiveHeadcount(ctx, tenantID)
	if err != nil {
		return PolicyAcknowledgment{}, err
	}
	acknowledged, err := s.store.Acknowledgments.Count(ctx, tenantID,
		datastore.Eq("policy_id", policyID),
		datastore.Eq("employee_status", "active"),
	)
	if err != nil {
		return PolicyAcknowledgment{}, err
	}
	return AcknowledgmentRate(policy, acknowledged, active), nil
}

func validatePolicy(_ context.Context, _, _ string, p Policy) (Policy, error) {
	p.Title = strings.TrimSpace(p.Title)
	if strings.TrimSpace(p.Version) == "" {
		p.Version = "1.0"
	}
	if p.EffectiveDate.IsZero() {
		p.EffectiveDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	var issues datastore.Issues
	issues.Required("title", p.Title)
	return p, issues.Err()
}

func (s *Service) validateAcknowledgment(_ context.Context, _, _ string, a Acknowledgment) (Acknowledgment, error) {
	if a.AcknowledgedAt.IsZero() {
		a.AcknowledgedAt = s.now().UTC()
	}
	var issues datastore.Issues
	issues.Required("policyId", a.PolicyID)
	issues.UUID("policyId", &a.PolicyID)
	issues.Required("employeeId", a.EmployeeID)
	issues.UUID("employeeId", &a.EmployeeID)
	return a, issues.Err()
}

func validateItem(_ context.Context, _, _ string, i Item) (Item, error) {
	i.Title = strings.TrimSpace(i.Title)
	if i.Status == "" {
		i.Status = ItemPending
	}
	var issues datastore.Issues
	issues.Required("title", i.Title)
	if i.DueDate.IsZero() {
		issues.Add("dueDate", "is required")
	}
	issues.Enum("status", i.Status, ItemPending, ItemInProgress, ItemCompleted)
	issues.UUID("ownerId", i.OwnerID)
	return i, issues.Err()
}

func (s *Service) AllItems(ctx context.Context, tenantID string) ([]Item, error) {
	return s.store.Items.List(ctx, tenantID, datastore.Query{OrderBy: []datastore.Order{datastore.Asc("due_date")}})
}
