package performance

import "time"

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusCancelled = "cancelled"
)

var GoalStatuses = []string{GoalStatusActive, GoalStatusCompleted, GoalStatusCancelled}

const (
	MinRating = 1
	MaxRating = 5
)

type Goal struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Progress     float64    `json:"progress"`
	Rating       *float64   `json:"rating,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	EmployeeName string     `json:"employeeName,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type PerformanceSummary struct {
	GoalsTotal         int            `json:"goalsTotal"`
	GoalsCompleted     int            `json:"goalsCompleted"`
	GoalsCancelled     int            `json:"goalsCancelled"`
	GoalsOverdue       int            `json:"goalsOverdue"`
	CompletionRate     int            `json:"completionRate"`
	AverageProgress    float64        `json:"averageProgress"`
	AverageRating      float64        `json:"averageRating"`
	RatedGoals         int            `json:"ratedGoals"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
}
