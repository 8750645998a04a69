package attendance

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusRemote  = "remote"
	StatusLeave   = "leave"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusRemote, StatusLeave}

type Record struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	WorkDate     time.Time `json:"workDate"`
	Status       string    `json:"status"`
	HoursWorked  float64   `json:"hoursWorked"`
	EmployeeName *string   `json:"employeeName,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Attended is true for statuses that count as a worked day.
func (r Record) Attended() bool {
	switch r.Status {
	case StatusPresent, StatusLate, StatusRemote:
		return true
	}
	return false
}
