package attendance

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
		Table: "attendance_records",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "employee_id", Expr: "employee_id::text", Writable: true},
			{Name: "work_date", Writable: true},
			{Name: "status", Writable: true},
			{Name: "hours_worked", Writable: true},
			{Name: "employee_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = attendance_records.employee_id AND e.tenant_id = attendance_records.tenant_id)", Joined: true},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Record, error) {
			var r Record
			err := row.Scan(&r.ID, &r.EmployeeID, &r.WorkDate, &r.Status, &r.HoursWorked, &r.EmployeeName, &r.UpdatedAt)
			return r, err
		},
		Values: func(r Record) []any {
			return []any{r.EmployeeID, r.WorkDate, r.Status, r.HoursWorked}
		},
	}
}
