package org

import (
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/querier"
)

type Store struct {
	Employees   *datastore.Table[Employee]
	Departments *datastore.Table[Department]
}

func NewStore(db querier.Querier) *Store {
	return &Store{
		Employees:   datastore.NewTable(db, employeeSchema()),
		Departments: datastore.NewTable(db, departmentSchema()),
	}
}

func employeeSchema() datastore.Schema[Employee] {
	return datastore.Schema[Employee]{
		Table: "employees",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "first_name", Writable: true},
			{Name: "last_name", Writable: true},
			{Name: "email", Writable: true},
			{Name: "position", Writable: true},
			{Name: "status", Writable: true},
			{Name: "department_id", Expr: "department_id::text", Writable: true},
			{Name: "manager_id", Expr: "manager_id::text", Writable: true},
			{Name: "hired_at", Writable: true},
			{Name: "department_name", Expr: "(SELECT d.name FROM departments d WHERE d.id = employees.department_id AND d.tenant_id = employees.tenant_id)", Joined: true},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Employee, error) {
			var e Employee
			err := row.Scan(
				&e.ID,
				&e.FirstName,
				&e.LastName,
				&e.Email,
				&e.Position,
				&e.Status,
				&e.DepartmentID,
				&e.ManagerID,
				&e.HiredAt,
				&e.DepartmentName,
				&e.CreatedAt,
				&e.UpdatedAt,
			)
			return e, err
		},
		Values: func(e Employee) []any {
			return []any{e.FirstName, e.LastName, e.Email, e.Position, e.Status, e.DepartmentID, e.ManagerID, e.HiredAt}
		},
	}
}

func departmentSchema() datastore.Schema[Department] {
	return datastore.Schema[Department]{
		Table: "departments",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "name", Writable: true},
			{Name: "head_id", Expr: "head_id::text", Writable: true},
			{Name: "headcount", Expr: "(SELECT COUNT(1) FROM employees e WHERE e.department_id = departments.id AND e.tenant_id = departments.tenant_id)", Joined: true},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Department, error) {
			var d Department
			err := row.Scan(&d.ID, &d.Name, &d.HeadID, &d.Headcount, &d.CreatedAt, &d.UpdatedAt)
			return d, err
		},
		Values: func(d Department) []any {
			return []any{d.Name, d.HeadID}
		},
	}
}
