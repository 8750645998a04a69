package succession

import "time"

type Readiness string

const (
	ReadyNow      Readiness = "Ready Now"
	ReadyOneToTwo Readiness = "1-2 Years"
	ReadyTwoPlus  Readiness = "2+ Years"
)

var ReadinessLevels = []Readiness{ReadyNow, ReadyOneToTwo, ReadyTwoPlus}

const (
	LevelLow      = "low"
	LevelMedium   = "medium"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// KeyPosition criticality and risk level are stored, never derived.
type KeyPosition struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	DepartmentID   *string   `json:"departmentId"`
	IncumbentID    *string   `json:"incumbentId"`
	Criticality    string    `json:"criticality"`
	RiskLevel      string    `json:"riskLevel"`
	DepartmentName *string   `json:"departmentName,omitempty"`
	IncumbentName  *string   `json:"incumbentName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Successor struct {
	ID                  string    `json:"id"`
	PositionID          string    `json:"positionId"`
	EmployeeID          string    `json:"employeeId"`
	ReadinessLevel      Readiness `json:"readinessLevel"`
	DevelopmentProgress int       `json:"developmentProgress"`
	EmployeeName        *string   `json:"employeeName,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
