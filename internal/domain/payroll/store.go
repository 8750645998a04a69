package payroll

import (
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/querier"
)

type Store struct {
	Records *datastore.Table[Record]
}

func NewStore(db querier.Querier) *Store {
	return &Store{Records: datastore.NewTable(db, recordSchema())}
}

func recordSchema() datastore.Schema[Record] {
	return datastore.Schema[Record]{
		Table: "payroll_records",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "employee_id", Expr: "employee_id::text", Writable: true},
			{Name: "period", Writable: true},
			{Name: "base_salary", Writable: true},
			{Name: "earnings", Writable: true},
			{Name: "deductions", Writable: true},
			{Name: "currency", Writable: true},
			{Name: "employee_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = payroll_records.employee_id AND e.tenant_id = payroll_records.tenant_id)", Joined: true},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Record, error) {
			var r Record
			var name *string
			err := row.Scan(&r.ID, &r.EmployeeID, &r.Period, &r.BaseSalary, &r.Earnings, &r.Deductions, &r.Currency, &name, &r.UpdatedAt)
			if name != nil {
				r.EmployeeName = *name
			}
			return r, err
		},
		Values: func(r Record) []any {
			return []any{r.EmployeeID, r.Period, r.BaseSalary, r.Earnings, r.Deductions, r.Currency}
		},
	}
}
