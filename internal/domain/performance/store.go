package performance

import (
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/querier"
)

type Store struct {
	Goals *datastore.Table[Goal]
}

func NewStore(db querier.Querier) *Store {
	return &Store{Goals: datastore.NewTable(db, goalSchema())}
}

func goalSchema() datastore.Schema[Goal] {
	return datastore.Schema[Goal]{
		Table: "goals",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "employee_id", Expr: "employee_id::text", Writable: true},
			{Name: "title", Writable: true},
			{Name: "status", Writable: true},
			{Name: "progress", Writable: true},
			{Name: "rating", Writable: true},
			{Name: "due_date", Writable: true},
			{Name: "employee_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = goals.employee_id AND e.tenant_id = goals.tenant_id)", Joined: true},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Goal, error) {
			var g Goal
			var name *string
			err := row.Scan(&g.ID, &g.EmployeeID, &g.Title, &g.Status, &g.Progress, &g.Rating, &g.DueDate, &name, &g.CreatedAt, &g.UpdatedAt)
			if name != nil {
				g.EmployeeName = *name
			}
			return g, err
		},
		Values: func(g Goal) []any {
			return []any{g.EmployeeID, g.Title, g.Status, g.Progress, g.Rating, g.DueDate}
		},
	}
}
