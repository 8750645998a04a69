package learning

import (
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/querier"
)

type Store struct {
	Courses        *datastore.Table[Course]
	Enrollments    *datastore.Table[Enrollment]
	Certifications *datastore.Table[Certification]
}

func NewStore(db querier.Querier) *Store {
	return &Store{
		Courses:        datastore.NewTable(db, courseSchema()),
		Enrollments:    datastore.NewTable(db, enrollmentSchema()),
		Certifications: datastore.NewTable(db, certificationSchema()),
	}
}

func courseSchema() datastore.Schema[Course] {
	return datastore.Schema[Course]{
		Table: "courses",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "title", Writable: true},
			{Name: "category", Writable: true},
			{Name: "duration_hours", Writable: true},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Course, error) {
			var c Course
			err := row.Scan(&c.ID, &c.Title, &c.Category, &c.DurationHours, &c.CreatedAt, &c.UpdatedAt)
			return c, err
		},
		Values: func(c Course) []any {
			return []any{c.Title, c.Category, c.DurationHours}
		},
	}
}

// enrollmentSchema expands each enrollment with its course title.
func enrollmentSchema() datastore.Schema[Enrollment] {
	return datastore.Schema[Enrollment]{
		Table: "enrollments",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "course_id", Expr: "course_id::text", Writable: true},
			{Name: "employee_id", Expr: "employee_id::text", Writable: true},
			{Name: "status", Writable: true},
			{Name: "progress", Writable: true},
			{Name: "enrolled_at"},
			{Name: "completed_at", Writable: true},
			{Name: "course_title", Expr: "(SELECT c.title FROM courses c WHERE c.id = enrollments.course_id AND c.tenant_id = enrollments.tenant_id)", Joined: true},
			{Name: "employee_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = enrollments.employee_id AND e.tenant_id = enrollments.tenant_id)", Joined: true},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Enrollment, error) {
			var e Enrollment
			err := row.Scan(
				&e.ID,
				&e.CourseID,
				&e.EmployeeID,
				&e.Status,
				&e.Progress,
				&e.EnrolledAt,
				&e.CompletedAt,
				&e.CourseTitle,
				&e.EmployeeName,
				&e.UpdatedAt,
			)
			return e, err
		},
		Values: func(e Enrollment) []any {
			return []any{e.CourseID, e.EmployeeID, e.Status, e.Progress, e.CompletedAt}
		},
	}
}

func certificationSchema() datastore.Schema[Certification] {
	return datastore.Schema[Certification]{
		Table: "certifications",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "employee_id", Expr: "employee_id::text", Writable: true},
			{Name: "name", Writable: true},
			{Name: "issuer", Writable: true},
			{Name: "issue_date", Writable: true},
			{Name: "expiry_date", Writable: true},
			{Name: "employee_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = certifications.employee_id AND e.tenant_id = certifications.tenant_id)", Joined: true},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (Certification, error) {
			var c Certification
			err := row.Scan(&c.ID, &c.EmployeeID, &c.Name, &c.Issuer, &c.IssueDate, &c.ExpiryDate, &c.EmployeeName, &c.UpdatedAt)
			return c, err
		},
		Values: func(c Certification) []any {
			return []any{c.EmployeeID, c.Name, c.Issuer, c.IssueDate, c.ExpiryDate}
		},
	}
}
