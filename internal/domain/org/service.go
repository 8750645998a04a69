package org

import (
	"context"
	"fmt"
	"strings"

	"hrerp/internal/platform/datastore"
)

// byName is the listing order used for chart input, so sibling order is
// stable between requests.
var byName = datastore.Query{OrderBy: []datastore.Order{datastore.Asc("last_name"), datastore.Asc("first_name")}}

type Service struct {
	store       *Store
	Employees   *datastore.Resource[Employee]
	Departments *datastore.Resource[Department]
}

func NewService(store *Store) *Service {
	s := &Service{store: store}
	s.Employees = datastore.NewResource(store.Employees, s.validateEmployee)
	s.Departments = datastore.NewResource(store.Departments, validateDepartment)
	return s
}

// Snapshot returns every employee and department of the tenant.
func (s *Service) Snapshot(ctx context.Context, tenantID string) ([]Employee, []Department, error) {
	employees, err := s.store.Employees.List(ctx, tenantID, byName)
	if err != nil {
		return nil, nil, err
	}
	departments, err := s.store.Departments.List(ctx, tenantID, datastore.Query{OrderBy: []datastore.Order{datastore.Asc("name")}})
	if err != nil {
		return nil, nil, err
	}
	return employees, departments, nil
}

func (s *Service) AllEmployees(ctx context.Context, tenantID string) ([]Employee, error) {
	return s.store.Employees.List(ctx, tenantID, byName)
}

func (s *Service) ActiveHeadcount(ctx context.Context, tenantID string) (int, error) {
	return s.store.Employees.Count(ctx, tenantID, datastore.Eq("status", StatusActive))
}

// Chart builds the org chart. A *CycleError is returned together with the
// placeable part of the chart.
func (s *Service) Chart(ctx context.Context, tenantID string) (*Chart, error) {
	employees, departments, err := s.Snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return BuildChart(employees, departments)
}

func (s *Service) Chain(ctx context.Context, tenantID, employeeID string) ([]Employee, error) {
	employees, err := s.store.Employees.List(ctx, tenantID, datastore.Query{})
	if err != nil {
		return nil, err
	}
	return ChainOfCommand(employees, employeeID)
}

func (s *Service) DepartmentSummary(ctx context.Context, tenantID string) ([]DepartmentRollup, error) {
	employees, departments, err := s.Snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return RollupDepartments(employees, departments), nil
}

func (s *Service) validateEmployee(ctx context.Context, tenantID, id string, e Employee) (Employee, error) {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.Position = strings.TrimSpace(e.Position)
	if e.Status == "" {
		e.Status = StatusActive
	}
	e.DepartmentID = blankToNil(e.DepartmentID)
	e.ManagerID = blankToNil(e.ManagerID)

	var issues datastore.Issues
	issues.Required("firstName", e.FirstName)
	issues.Required("lastName", e.LastName)
	if !strings.Contains(e.Email, "@") {
		issues.Add("email", "must be a valid email address")
	}
	issues.Enum("status", e.Status, StatusActive, StatusInactive, StatusTerminated)
	issues.UUID("departmentId", e.DepartmentID)
	issues.UUID("managerId", e.ManagerID)
	if id != "" && e.ManagerID != nil && *e.ManagerID == id {
		issues.Add("managerId", "an employee cannot manage themselves")
	}
	if err := issues.Err(); err != nil {
		return e, err
	}

	// A new employee has no reports, so only an update can close a loop.
	if id == "" || e.ManagerID == nil {
		return e, nil
	}
	employees, err := s.store.Employees.List(ctx, tenantID, datastore.Query{})
	if err != nil {
		return e, err
	}
	if WouldCreateCycle(employees, id, *e.ManagerID) {
		return e, fmt.Errorf("assign manager %s to %s: %w", *e.ManagerID, id, ErrCycleDetected)
	}
	return e, nil
}

func validateDepartment(_ context.Context, _, _ string, d Department) (Department, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.HeadID = blankToNil(d.HeadID)
	var issues datastore.Issues
	issues.Required("name", d.Name)
	issues.UUID("headId", d.HeadID)
	return d, issues.Err()
}

func blankToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
