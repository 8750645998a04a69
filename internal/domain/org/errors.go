package org

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCycleDetected    = errors.New("manager cycle detected")
	ErrEmployeeNotFound = errors.New("employee not found")
)

// CycleError reports employees that cannot be placed under any root.
// Members sit on a manager cycle; Unplaced report into a cycle without
// being part of it.
type CycleError struct {
	Members  []string `json:"members"`
	Unplaced []string `json:"unplaced"`
}

func (e *CycleError) Error() string {
	msg := fmt.Sprintf("%s: members [%s]", ErrCycleDetected, strings.Join(e.Members, ", "))
	if len(e.Unplaced) > 0 {
		msg += fmt.Sprintf(", unplaced [%s]", strings.Join(e.Unplaced, ", "))
	}
	return msg
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}
