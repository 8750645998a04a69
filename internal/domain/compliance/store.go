package compliance

import (
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/querier"
)

type Store struct {
	Policies        *datastore.Table[Policy]
	Acknowledgments *datastore.Table[Acknowledgment]
	Items           *datastore.Table[Item]
}

func NewStore(db querier.Querier) *Store {
	return &Store{
		Policies:        datastore.NewTable(db, policySchema()),
		Acknowledgments: datastore.NewTable(db, acknowledgmentSchema()),
		Items:           datastore.NewTable(db, itemSchema()),
	}
}

func policySchema() datastore.Schema[Policy] {
	return datastore.Schema[Policy]{
		Table: "policies",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "title", Writable: true},
			{Name: "version", Writable: true},
			{Name: "effective_date", Writable: true},
			{Name: "requires_acknowledgment", Writable: true},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Policy, error) {
			var p Policy
			err := row.Scan(&p.ID, &p.Title, &p.Version, &p.EffectiveDate, &p.RequiresAcknowledgment, &p.UpdatedAt)
			return p, err
		},
		Values: func(p Policy) []any {
			return []any{p.Title, p.Version, p.EffectiveDate, p.RequiresAcknowledgment}
		},
	}
}

func acknowledgmentSchema() datastore.Schema[Acknowledgment] {
	return datastore.Schema[Acknowledgment]{
		Table: "policy_acknowledgments",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "policy_id", Expr: "policy_id::text", Writable: true},
			{Name: "employee_id", Expr: "employee_id::text", Writable: true},
			{Name: "acknowledged_at", Writable: true},
			{Name: "employee_status", Expr: "(SELECT e.status FROM employees e WHERE e.id = policy_acknowledgments.employee_id AND e.tenant_id = policy_acknowledgments.tenant_id)", Joined: true},
		},
		Scan: func(row datastore.Scanner) (Acknowledgment, error) {
			var a Acknowledgment
			err := row.Scan(&a.ID, &a.PolicyID, &a.EmployeeID, &a.AcknowledgedAt, &a.EmployeeStatus)
			return a, err
		},
		Values: func(a Acknowledgment) []any {
			return []any{a.PolicyID, a.EmployeeID, a.AcknowledgedAt}
		},
	}
}

func itemSchema() datastore.Schema[Item] {
	return datastore.Schema[Item]{
		Table: "compliance_items",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "title", Writable: true},
			{Name: "category", Writable: true},
			{Name: "owner_id", Expr: "owner_id::text", Writable: true},
			{Name: "due_date", Writable: true},
			{Name: "status", Writable: true},
			{Name: "owner_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = compliance_items.owner_id AND e.tenant_id = compliance_items.tenant_id)", Joined: true},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Item, error) {
			var i Item
			err := row.Scan(&i.ID, &i.Title, &i.Category, &i.OwnerID, &i.DueDate, &i.Status, &i.OwnerName, &i.UpdatedAt)
			return i, err
		},
		Values: func(i Item) []any {
			return []any{i.Title, i.Category, i.OwnerID, i.DueDate, i.Status}
		},
	}
}
