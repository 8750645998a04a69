package compliance

import "time"

const (
	ItemPending    = "pending"
	ItemInProgress = "in_progress"
	ItemCompleted  = "completed"
)

type Policy struct {
	ID                     string    `json:"id"`
	Title                  string    `json:"title"`
	Version                string    `json:"version"`
	EffectiveDate          time.Time `json:"effectiveDate"`
	RequiresAcknowledgment bool      `json:"requiresAcknowledgment"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

type Acknowledgment struct {
	ID             string    `json:"id"`
	PolicyID       string    `json:"policyId"`
	EmployeeID     string    `json:"employeeId"`
	AcknowledgedAt time.Time `json:"acknowledgedAt"`
	EmployeeStatus *string   `json:"employeeStatus,omitempty"`
}

type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	OwnerID   *string   `json:"ownerId"`
	DueDate   time.Time `json:"dueDate"`
	Status    string    `json:"status"`
	OwnerName *string   `json:"ownerName,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
