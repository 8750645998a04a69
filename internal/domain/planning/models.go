package planning

import (
	"time"

	"hrerp/internal/domain/rollup"
)

// UnknownLabel stands in for a skill, employee or department missing from
// the fetched rows.
const UnknownLabel = "Unknown"

// CapacityPlan priority is stored data, set by planners.
type CapacityPlan struct {
	ID               string          `json:"id"`
	DepartmentID     *string         `json:"departmentId"`
	Period           string          `json:"period"`
	CurrentHeadcount int             `json:"currentHeadcount"`
	PlannedHeadcount int             `json:"plannedHeadcount"`
	Capacity         int             `json:"capacity"`
	OpenPositions    int             `json:"openPositions"`
	Priority         rollup.Priority `json:"priority"`
	Notes            string          `json:"notes"`
	DepartmentName   *string         `json:"departmentName,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type Skill struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type SkillAssessment struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	SkillID      string    `json:"skillId"`
	CurrentLevel int       `json:"currentLevel"`
	TargetLevel  int       `json:"targetLevel"`
	AssessedAt   time.Time `json:"assessedAt"`
	SkillName    *string   `json:"skillName,omitempty"`
	EmployeeName *string   `json:"employeeName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
