package compliance

import (
	"sort"
	"time"

	"hrerp/internal/domain/rollup"
)

type PolicyAcknowledgment struct {
	PolicyID     string `json:"policyId"`
	Title        string `json:"title"`
	Version      string `json:"version"`
	Acknowledged int    `json:"acknowledged"`
	Total        int    `json:"total"`
	Pending      int    `json:"pending"`
	Percentage   int    `json:"percentage"`
}

// AcknowledgmentRate is round(100 * acknowledged / activeEmployees); zero
// when there are no active employees. Acknowledged never exceeds the total.
func AcknowledgmentRate(p Policy, acknowledged, activeEmployees int) PolicyAcknowledgment {
	if acknowledged > activeEmployees {
		acknowledged = activeEmployees
	}
	return PolicyAcknowledgment{
		PolicyID:     p.ID,
		Title:        p.Title,
		Version:      p.Version,
		Acknowledged: acknowledged,
		Total:        activeEmployees,
		Pending:      activeEmployees - acknowledged,
		Percentage:   rollup.Percentage(acknowledged, activeEmployees),
	}
}

// RollupAcknowledgments computes one row per policy that requires
// acknowledgment. Only acknowledgments by active employees count, and each
// employee at most once per policy.
func RollupAcknowledgments(policies []Policy, acks []Acknowledgment, activeEmployees int) []PolicyAcknowledgment {
	seen := make(map[string]map[string]bool, len(policies))
	for _, a := range acks {
		if a.EmployeeStatus != nil && *a.EmployeeStatus != "active" {
			continue
		}
		if seen[a.PolicyID] == nil {
			seen[a.PolicyID] = make(map[string]bool)
		}
		seen[a.PolicyID][a.EmployeeID] = true
	}
	rows := make([]PolicyAcknowledgment, 0, len(policies))
	for _, p := range policies {
		if !p.RequiresAcknowledgment {
			continue
		}
		rows = append(rows, AcknowledgmentRate(p, len(seen[p.ID]), activeEmployees))
	}
	return rows
}

type ItemSummary struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	CompletionRate int            `json:"completionRate"`
	Overdue        int            `json:"overdue"`
	OverdueItems   []Item         `json:"overdueItems"`
	DueSoon        int            `json:"dueSoon"`
}

// SummarizeItems treats an open item as overdue once its due date is before
// today, and due soon when it falls within the next seven days.
func SummarizeItems(items []Item, now time.Time) ItemSummary {
	summary := ItemSummary{
		ByStatus:     map[string]int{ItemPending: 0, ItemInProgress: 0, ItemCompleted: 0},
		OverdueItems: make([]Item, 0),
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	soon := today.AddDate(0, 0, 7)
	for _, item := range items {
		summary.Total++
		summary.ByStatus[item.Status]++
		if item.Status == ItemCompleted {
			continue
		}
		due := time.Date(item.DueDate.Year(), item.DueDate.Month(), item.DueDate.Day(), 0, 0, 0, 0, time.UTC)
		switch {
		case due.Before(today):
			summary.Overdue++
			summary.OverdueItems = append(summary.OverdueItems, item)
		case !due.After(soon):
			summary.DueSoon++
		}
	}
	summary.CompletionRate = rollup.Percentage(summary.ByStatus[ItemCompleted], summary.Total)
	sort.SliceStable(summary.OverdueItems, func(i, j int) bool {
		return summary.OverdueItems[i].DueDate.Before(summary.OverdueItems[j].DueDate)
	})
	return summary
}

type Summary struct {
	ActiveEmployees int                    `json:"activeEmployees"`
	Policies        []PolicyAcknowledgment `json:"policies"`
	OverallRate     int                    `json:"overallAcknowledgmentRate"`
	Items           ItemSummary            `json:"items"`
}

// OverallRate pools acknowledgments across policies.
func OverallRate(rows []PolicyAcknowledgment) int {
	acknowledged, total := 0, 0
	for _, r := range rows {
		acknowledged += r.Acknowledged
		total += r.Total
	}
	return rollup.Percentage(acknowledged, total)
}
