package planning

import "hrerp/internal/domain/rollup"

// CapacityView adds the derived figures to a plan. Gap is planned minus
// capacity, so a positive gap is planned headcount the department cannot
// hold.
type CapacityView struct {
	CapacityPlan
	Department      string `json:"department"`
	Gap             int    `json:"gap"`
	HeadcountChange int    `json:"headcountChange"`
	Utilization     int    `json:"utilization"`
}

func ViewPlan(p CapacityPlan) CapacityView {
	view := CapacityView{
		CapacityPlan:    p,
		Department:      "Unassigned",
		Gap:             p.PlannedHeadcount - p.Capacity,
		HeadcountChange: p.PlannedHeadcount - p.CurrentHeadcount,
		Utilization:     rollup.Percentage(p.CurrentHeadcount, p.Capacity),
	}
	if p.DepartmentName != nil {
		view.Department = *p.DepartmentName
	} else if p.DepartmentID != nil {
		view.Department = UnknownLabel
	}
	return view
}

type CapacityTotals struct {
	CurrentHeadcount int `json:"currentHeadcount"`
	PlannedHeadcount int `json:"plannedHeadcount"`
	Capacity         int `json:"capacity"`
	OpenPositions    int `json:"openPositions"`
	Gap              int `json:"gap"`
	Utilization      int `json:"utilization"`
}

func (t *CapacityTotals) add(p CapacityPlan) {
	t.CurrentHeadcount += p.CurrentHeadcount
	t.PlannedHeadcount += p.PlannedHeadcount
	t.Capacity += p.Capacity
	t.OpenPositions += p.OpenPositions
	t.Gap = t.PlannedHeadcount - t.Capacity
	t.Utilization = rollup.Percentage(t.CurrentHeadcount, t.Capacity)
}

type DepartmentCapacity struct {
	DepartmentID string `json:"departmentId,omitempty"`
	Department   string `json:"department"`
	CapacityTotals
}

type CapacitySummary struct {
	Plans       []CapacityView          `json:"plans"`
	Departments []DepartmentCapacity    `json:"departments"`
	Totals      CapacityTotals          `json:"totals"`
	ByPriority  map[rollup.Priority]int `json:"byPriority"`
}

// SummarizeCapacity rolls plans up per department in first-seen order.
// Priority counts use the stored value unchanged.
func SummarizeCapacity(plans []CapacityPlan) CapacitySummary {
	summary := CapacitySummary{
		Plans:       make([]CapacityView, 0, len(plans)),
		Departments: make([]DepartmentCapacity, 0),
		ByPriority: map[rollup.Priority]int{
			rollup.PriorityLow:    0,
			rollup.PriorityMedium: 0,
			rollup.PriorityHigh:   0,
		},
	}
	index := make(map[string]int)
	for _, p := range plans {
		view := ViewPlan(p)
		summary.Plans = append(summary.Plans, view)
		summary.Totals.add(p)
		summary.ByPriority[p.Priority]++

		key := ""
		if p.DepartmentID != nil {
			key = *p.DepartmentID
		}
		i, ok := index[key]
		if !ok {
			i = len(summary.Departments)
			index[key] = i
			summary.Departments = append(summary.Departments, DepartmentCapacity{DepartmentID: key, Department: view.Department})
		}
		summary.Departments[i].add(p)
	}
	return summary
}
