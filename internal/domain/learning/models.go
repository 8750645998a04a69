package learning

import "time"

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Certification states, derived from the expiry date on every read.
const (
	CertActive   = "active"
	CertExpiring = "expiring"
	CertExpired  = "expired"
)

type Course struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	DurationHours float64   `json:"durationHours"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Enrollment struct {
	ID           string     `json:"id"`
	CourseID     string     `json:"courseId"`
	EmployeeID   string     `json:"employeeId"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	EnrolledAt   time.Time  `json:"enrolledAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CourseTitle  *string    `json:"courseTitle,omitempty"`
	EmployeeName *string    `json:"employeeName,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Certification struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	Name         string     `json:"name"`
	Issuer       string     `json:"issuer"`
	IssueDate    time.Time  `json:"issueDate"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	EmployeeName *string    `json:"employeeName,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
