package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrerp/internal/platform/querier"
)

type seedDepartment struct {
	Name string
}

type seedEmployee struct {
	FirstName  string
	LastName   string
	Email      string
	Position   string
	Department string
	Manager    string // email of the manager, empty for a root
}

var demoDepartments = []seedDepartment{
	{Name: "Executive"},
	{Name: "Engineering"},
	{Name: "People"},
}

// Managers are listed before their reports.
var demoEmployees = []seedEmployee{
	{FirstName: "Avery", LastName: "Stone", Email: "avery.stone@example.com", Position: "Chief Executive Officer", Department: "Executive"},
	{FirstName: "Jordan", LastName: "Reyes", Email: "jordan.reyes@example.com", Position: "Head of Engineering", Department: "Engineering", Manager: "avery.stone@example.com"},
	{FirstName: "Sam", LastName: "Okafor", Email: "sam.okafor@example.com", Position: "Software Engineer", Department: "Engineering", Manager: "jordan.reyes@example.com"},
	{FirstName: "Riley", LastName: "Chen", Email: "riley.chen@example.com", Position: "HR Partner", Department: "People", Manager: "avery.stone@example.com"},
}

// Seed makes sure a tenant with the given name exists and carries a small
// demo org. It is safe to run repeatedly. The tenant id is returned.
func Seed(ctx context.Context, q querier.Querier, tenantName string) (string, error) {
	tenantID, err := ensureTenant(ctx, q, tenantName)
	if err != nil {
		return "", err
	}
	deptIDs, err := ensureDepartments(ctx, q, tenantID)
	if err != nil {
		return "", err
	}
	if err := ensureEmployees(ctx, q, tenantID, deptIDs); err != nil {
		return "", err
	}
	return tenantID, nil
}

func ensureTenant(ctx context.Context, q querier.Querier, name string) (string, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id::text FROM tenants WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("seed tenant: %w", err)
	}

	if err := q.QueryRow(ctx, "INSERT INTO tenants (name) VALUES ($1) RETURNING id::text", name).Scan(&id); err != nil {
		return "", fmt.Errorf("seed tenant: %w", err)
	}
	return id, nil
}

func ensureDepartments(ctx context.Context, q querier.Querier, tenantID string) (map[string]string, error) {
	ids := make(map[string]string, len(demoDepartments))
	for _, d := range demoDepartments {
		var id string
		err := q.QueryRow(ctx,
			"INSERT INTO departments (tenant_id, name) VALUES ($1, $2) ON CONFLICT (tenant_id, name) DO UPDATE SET name = EXCLUDED.name RETURNING id::text",
			tenantID, d.Name).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed department %s: %w", d.Name, err)
		}
		ids[d.Name] = id
	}
	return ids, nil
}

func ensureEmployees(ctx context.Context, q querier.Querier, tenantID string, deptIDs map[string]string) error {
	ids := make(map[string]string, len(demoEmployees))
	for _, e := range demoEmployees {
		var managerID *string
		if e.Manager != "" {
			id, ok := ids[e.Manager]
			if !ok {
				return fmt.Errorf("seed employee %s: manager %s not seeded yet", e.Email, e.Manager)
			}
			managerID = &id
		}
		var departmentID *string
		if id, ok := deptIDs[e.Department]; ok {
			departmentID = &id
		}

		var id string
		err := q.QueryRow(ctx,
			"INSERT INTO employees (tenant_id, first_name, last_name, email, position, department_id, manager_id) VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (tenant_id, email) DO UPDATE SET email = EXCLUDED.email RETURNING id::text",
			tenantID, e.FirstName, e.LastName, e.Email, e.Position, departmentID, managerID).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", e.Email, err)
		}
		ids[e.Email] = id
	}
	return nil
}
