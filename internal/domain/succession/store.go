package succession

import (
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/querier"
)

type Store struct {
	Positions  *datastore.Table[KeyPosition]
	Successors *datastore.Table[Successor]
}

func NewStore(db querier.Querier) *Store {
	return &Store{
		Positions:  datastore.NewTable(db, positionSchema()),
		Successors: datastore.NewTable(db, successorSchema()),
	}
}

func positionSchema() datastore.Schema[KeyPosition] {
	return datastore.Schema[KeyPosition]{
		Table: "key_positions",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "title", Writable: true},
			{Name: "department_id", Expr: "department_id::text", Writable: true},
			{Name: "incumbent_id", Expr: "incumbent_id::text", Writable: true},
			{Name: "criticality", Writable: true},
			{Name: "risk_level", Writable: true},
			{Name: "department_name", Expr: "(SELECT d.name FROM departments d WHERE d.id = key_positions.department_id AND d.tenant_id = key_positions.tenant_id)", Joined: true},
			{Name: "incumbent_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = key_positions.incumbent_id AND e.tenant_id = key_positions.tenant_id)", Joined: true},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (KeyPosition, error) {
			var p KeyPosition
			err := row.Scan(
				&p.ID,
				&p.Title,
				&p.DepartmentID,
				&p.IncumbentID,
				&p.Criticality,
				&p.RiskLevel,
				&p.DepartmentName,
				&p.IncumbentName,
				&p.CreatedAt,
				&p.UpdatedAt,
			)
			return p, err
		},
		Values: func(p KeyPosition) []any {
			return []any{p.Title, p.DepartmentID, p.IncumbentID, p.Criticality, p.RiskLevel}
		},
	}
}

func successorSchema() datastore.Schema[Successor] {
	return datastore.Schema[Successor]{
		Table: "successors",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "position_id", Expr: "position_id::text", Writable: true},
			{Name: "employee_id", Expr: "employee_id::text", Writable: true},
			{Name: "readiness_level", Writable: true},
			{Name: "development_progress", Writable: true},
			{Name: "employee_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = successors.employee_id AND e.tenant_id = successors.tenant_id)", Joined: true},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Successor, error) {
			var s Successor
			err := row.Scan(&s.ID, &s.PositionID, &s.EmployeeID, &s.ReadinessLevel, &s.DevelopmentProgress, &s.EmployeeName, &s.CreatedAt, &s.UpdatedAt)
			return s, err
		},
		Values: func(s Successor) []any {
			return []any{s.PositionID, s.EmployeeID, string(s.ReadinessLevel), s.DevelopmentProgress}
		},
	}
}
