package org

import (
	"strings"
	"time"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

// Placeholder labels for references missing from a snapshot.
const (
	UnknownManager       = "Unknown"
	UnassignedDepartment = "Unassigned"
)

type Employee struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Position       string     `json:"position"`
	Status         string     `json:"status"`
	DepartmentID   *string    `json:"departmentId"`
	ManagerID      *string    `json:"managerId"`
	HiredAt        *time.Time `json:"hiredAt,omitempty"`
	DepartmentName *string    `json:"departmentName,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) Active() bool {
	return e.Status == StatusActive
}

func (e Employee) managerRef() string {
	if e.ManagerID == nil {
		return ""
	}
	return strings.TrimSpace(*e.ManagerID)
}

func (e Employee) departmentRef() string {
	if e.DepartmentID == nil {
		return ""
	}
	return strings.TrimSpace(*e.DepartmentID)
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HeadID    *string   `json:"headId"`
	Headcount int       `json:"headcount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
