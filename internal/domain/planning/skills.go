package planning

import (
	"sort"

	"hrerp/internal/domain/rollup"
)

type SkillGapItem struct {
	AssessmentID string `json:"assessmentId"`
	EmployeeID   string `json:"employeeId"`
	Employee     string `json:"employee"`
	SkillID      string `json:"skillId"`
	Skill        string `json:"skill"`
	rollup.Gap
}

type SkillGapGroup struct {
	SkillID       string  `json:"skillId"`
	Skill         string  `json:"skill"`
	Assessed      int     `json:"assessed"`
	WithGap       int     `json:"withGap"`
	AverageGap    float64 `json:"averageGap"`
	CriticalCount int     `json:"criticalCount"`
}

type EmployeeGapGroup struct {
	EmployeeID    string  `json:"employeeId"`
	Employee      string  `json:"employee"`
	GapCount      int     `json:"gapCount"`
	TotalGap      float64 `json:"totalGap"`
	CriticalCount int     `json:"criticalCount"`
}

type SkillGapReport struct {
	Threshold     float64            `json:"threshold"`
	Items         []SkillGapItem     `json:"items"`
	TotalGap      float64            `json:"totalGap"`
	CriticalCount int                `json:"criticalCount"`
	BySkill       []SkillGapGroup    `json:"bySkill"`
	ByEmployee    []EmployeeGapGroup `json:"byEmployee"`
}

// BuildSkillGapReport lists only assessments below target. Items are ordered
// by gap magnitude, largest first; groups by label.
func BuildSkillGapReport(assessments []SkillAssessment, threshold float64) SkillGapReport {
	report := SkillGapReport{
		Threshold:  threshold,
		Items:      make([]SkillGapItem, 0),
		BySkill:    make([]SkillGapGroup, 0),
		ByEmployee: make([]EmployeeGapGroup, 0),
	}

	skills := make(map[string]*SkillGapGroup)
	skillOrder := make([]string, 0)
	gapsBySkill := make(map[string][]float64)
	employees := make(map[string]*EmployeeGapGroup)
	employeeOrder := make([]string, 0)

	gaps := make([]rollup.Gap, 0, len(assessments))
	for _, a := range assessments {
		skillLabel := label(a.SkillName)
		group, ok := skills[a.SkillID]
		if !ok {
			group = &SkillGapGroup{SkillID: a.SkillID, Skill: skillLabel}
			skills[a.SkillID] = group
			skillOrder = append(skillOrder, a.SkillID)
		}
		group.Assessed++

		shortfall := rollup.Shortfalls([]rollup.Metric{{
			Label:   skillLabel,
			Current: float64(a.CurrentLevel),
			Target:  float64(a.TargetLevel),
		}}, threshold)
		if len(shortfall) == 0 {
			continue
		}
		gap := shortfall[0]
		gaps = append(gaps, gap)

		report.Items = append(report.Items, SkillGapItem{
			AssessmentID: a.ID,
			EmployeeID:   a.EmployeeID,
			Employee:     label(a.EmployeeName),
			SkillID:      a.SkillID,
			Skill:        skillLabel,
			Gap:          gap,
		})

		critical := gap.Magnitude() >= threshold
		group.WithGap++
		gapsBySkill[a.SkillID] = append(gapsBySkill[a.SkillID], gap.Gap)
		if critical {
			group.CriticalCount++
		}

		person, ok := employees[a.EmployeeID]
		if !ok {
			person = &EmployeeGapGroup{EmployeeID: a.EmployeeID, Employee: label(a.EmployeeName)}
			employees[a.EmployeeID] = person
			employeeOrder = append(employeeOrder, a.EmployeeID)
		}
		person.GapCount++
		person.TotalGap += gap.Magnitude()
		if critical {
			person.CriticalCount++
		}
	}

	summary := rollup.SummarizeGaps(gaps, threshold)
	report.TotalGap = summary.TotalGap
	report.CriticalCount = summary.CriticalCount

	sort.SliceStable(report.Items, func(i, j int) bool {
		return report.Items[i].Magnitude() > report.Items[j].Magnitude()
	})
	for _, id := range skillOrder {
		group := skills[id]
		group.AverageGap = rollup.Round1(rollup.Average(gapsBySkill[id]))
		report.BySkill = append(report.BySkill, *group)
	}
	sort.SliceStable(report.BySkill, func(i, j int) bool {
		return report.BySkill[i].Skill < report.BySkill[j].Skill
	})
	for _, id := range employeeOrder {
		report.ByEmployee = append(report.ByEmployee, *employees[id])
	}
	sort.SliceStable(report.ByEmployee, func(i, j int) bool {
		return report.ByEmployee[i].Employee < report.ByEmployee[j].Employee
	})
	return report
}

func label(name *string) string {
	if name == nil || *name == "" {
		return UnknownLabel
	}
	return *name
}
