package planning

import (
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/querier"
)

type Store struct {
	Plans       *datastore.Table[CapacityPlan]
	Skills      *datastore.Table[Skill]
	Assessments *datastore.Table[SkillAssessment]
}

func NewStore(db querier.Querier) *Store {
	return &Store{
		Plans:       datastore.NewTable(db, planSchema()),
		Skills:      datastore.NewTable(db, skillSchema()),
		Assessments: datastore.NewTable(db, assessmentSchema()),
	}
}

func planSchema() datastore.Schema[CapacityPlan] {
	return datastore.Schema[CapacityPlan]{
		Table: "capacity_plans",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "department_id", Expr: "department_id::text", Writable: true},
			{Name: "period", Writable: true},
			{Name: "current_headcount", Writable: true},
			{Name: "planned_headcount", Writable: true},
			{Name: "capacity", Writable: true},
			{Name: "open_positions", Writable: true},
			{Name: "priority", Writable: true},
			{Name: "notes", Writable: true},
			{Name: "department_name", Expr: "(SELECT d.name FROM departments d WHERE d.id = capacity_plans.department_id AND d.tenant_id = capacity_plans.tenant_id)", Joined: true},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (CapacityPlan, error) {
			var p CapacityPlan
			err := row.Scan(
				&p.ID,
				&p.DepartmentID,
				&p.Period,
				&p.CurrentHeadcount,
				&p.PlannedHeadcount,
				&p.Capacity,
				&p.OpenPositions,
				&p.Priority,
				&p.Notes,
				&p.DepartmentName,
				&p.CreatedAt,
				&p.UpdatedAt,
			)
			return p, err
		},
		Values: func(p CapacityPlan) []any {
			return []any{p.DepartmentID, p.Period, p.CurrentHeadcount, p.PlannedHeadcount, p.Capacity, p.OpenPositions, string(p.Priority), p.Notes}
		},
	}
}

func skillSchema() datastore.Schema[Skill] {
	return datastore.Schema[Skill]{
		Table: "skills",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "name", Writable: true},
			{Name: "category", Writable: true},
			{Name: "created_at"},
		},
		Scan: func(row datastore.Scanner) (Skill, error) {
			var s Skill
			err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt)
			return s, err
		},
		Values: func(s Skill) []any {
			return []any{s.Name, s.Category}
		},
	}
}

func assessmentSchema() datastore.Schema[SkillAssessment] {
	return datastore.Schema[SkillAssessment]{
		Table: "skill_assessments",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "employee_id", Expr: "employee_id::text", Writable: true},
			{Name: "skill_id", Expr: "skill_id::text", Writable: true},
			{Name: "current_level", Writable: true},
			{Name: "target_level", Writable: true},
			{Name: "assessed_at", Writable: true},
			{Name: "skill_name", Expr: "(SELECT s.name FROM skills s WHERE s.id = skill_assessments.skill_id AND s.tenant_id = skill_assessments.tenant_id)", Joined: true},
			{Name: "employee_name", Expr: "(SELECT e.first_name || ' ' || e.last_name FROM employees e WHERE e.id = skill_assessments.employee_id AND e.tenant_id = skill_assessments.tenant_id)", Joined: true},
			{Name: "created_at"},
			{Name: "updated_at"},
		},
		Touch: "updated_at",
		Scan: func(row datastore.Scanner) (SkillAssessment, error) {
			var a SkillAssessment
			err := row.Scan(
				&a.ID,
				&a.EmployeeID,
				&a.SkillID,
				&a.CurrentLevel,
				&a.TargetLevel,
				&a.AssessedAt,
				&a.SkillName,
				&a.EmployeeName,
				&a.CreatedAt,
				&a.UpdatedAt,
			)
			return a, err
		},
		Values: func(a SkillAssessment) []any {
			return []any{a.EmployeeID, a.SkillID, a.CurrentLevel, a.TargetLevel, a.AssessedAt}
		},
	}
}
