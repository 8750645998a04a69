package org

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrerp/internal/platform/datastore"
)

var employeeColumns = []string{
	"id", "first_name", "last_name", "email", "position", "status",
	"department_id", "manager_id", "hired_at", "department_name", "created_at", "updated_at",
}

func newMockService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewService(NewStore(mock)), mock
}

func employeeRows(employees ...Employee) *pgxmock.Rows {
	rows := pgxmock.NewRows(employeeColumns)
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range employees {
		rows.AddRow(e.ID, e.FirstName, e.LastName, e.Email, e.Position, e.Status,
			e.DepartmentID, e.ManagerID, (*time.Time)(nil), e.DepartmentName, now, now)
	}
	return rows
}

func TestReplaceEmployeeRejectsManagerCycle(t *testing.T) {
	svc, mock := newMockService(t)

	const (
		first  = "8a1f0c9e-0000-4000-8000-000000000001"
		second = "8a1f0c9e-0000-4000-8000-000000000002"
		third  = "8a1f0c9e-0000-4000-8000-000000000003"
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE tenant_id = $1")).
		WithArgs("tenant-1").
		WillReturnRows(employeeRows(emp(first, nil), emp(second, ref(first)), emp(third, ref(second))))

	_, err := svc.Employees.Replace(context.Background(), "tenant-1", first, Employee{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		ManagerID: ref(third),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleDetected))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployeeValidatesAndNormalizes(t *testing.T) {
	svc, mock := newMockService(t)

	_, err := svc.Employees.Create(context.Background(), "tenant-1", Employee{Email: "nope", Status: "retired"})
	var verr *datastore.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := []string{}
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"firstName", "lastName", "email", "status"}, fields)

	insert := regexp.QuoteMeta("INSERT INTO employees (tenant_id, first_name, last_name, email, position, status, department_id, manager_id, hired_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)")
	mock.ExpectQuery(insert).
		WithArgs("tenant-1", "Ada", "Lovelace", "ada@example.com", "", StatusActive, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(employeeRows(Employee{ID: "e-1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Status: StatusActive}))

	created, err := svc.Employees.Create(context.Background(), "tenant-1", Employee{
		FirstName:    " Ada ",
		LastName:     "Lovelace",
		Email:        "ADA@example.com",
		DepartmentID: ref("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "e-1", created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChartFetchesSnapshotAndBuilds(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE tenant_id = $1 ORDER BY last_name ASC, first_name ASC")).
		WithArgs("tenant-1").
		WillReturnRows(employeeRows(emp("1", nil), emp("2", ref("1"))))
	mock.ExpectQuery(regexp.QuoteMeta("FROM departments WHERE tenant_id = $1 ORDER BY name ASC")).
		WithArgs("tenant-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "head_id", "headcount", "created_at", "updated_at"}))

	chart, err := svc.Chart(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 2, chart.Size())
	require.Len(t, chart.Roots, 1)
	assert.Equal(t, "2", chart.Roots[0].Reports[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployeeRejectsMalformedReferences(t *testing.T) {
	svc, mock := newMockService(t)

	_, err := svc.Employees.Create(context.Background(), "tenant-1", Employee{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		DepartmentID: ref("engineering"),
		ManagerID:    ref("not-a-uuid"),
	})
	var verr *datastore.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := []string{}
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"departmentId", "managerId"}, fields)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeQueriesMatchJoinedTenant(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("(SELECT d.name FROM departments d WHERE d.id = employees.department_id AND d.tenant_id = employees.tenant_id) FROM employees WHERE tenant_id = $1")).
		WithArgs("tenant-1").
		WillReturnRows(employeeRows())
	mock.ExpectQuery(regexp.QuoteMeta("(SELECT COUNT(1) FROM employees e WHERE e.department_id = departments.id AND e.tenant_id = departments.tenant_id) FROM departments WHERE tenant_id = $1")).
		WithArgs("tenant-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "head_id", "headcount", "created_at", "updated_at"}))

	_, err := svc.Chart(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
