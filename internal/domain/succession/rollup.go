package succession

import "hrerp/internal/domain/rollup"

// Bench strength of a position.
const (
	BenchReady      = "ready"
	BenchDeveloping = "developing"
	BenchNone       = "none"
)

type PositionCoverage struct {
	PositionID        string            `json:"positionId"`
	Title             string            `json:"title"`
	Department        string            `json:"department"`
	Incumbent         string            `json:"incumbent"`
	Criticality       string            `json:"criticality"`
	RiskLevel         string            `json:"riskLevel"`
	Successors        int               `json:"successors"`
	ByReadiness       map[Readiness]int `json:"byReadiness"`
	AverageProgress   float64           `json:"averageProgress"`
	HasReadySuccessor bool              `json:"hasReadySuccessor"`
	Bench             string            `json:"bench"`
}

type Summary struct {
	Positions          []PositionCoverage `json:"positions"`
	TotalPositions     int                `json:"totalPositions"`
	TotalSuccessors    int                `json:"totalSuccessors"`
	UncoveredPositions int                `json:"uncoveredPositions"`
	HighRiskPositions  int                `json:"highRiskPositions"`
	CoverageRate       int                `json:"coverageRate"`
	AverageProgress    float64            `json:"averageProgress"`
	ByReadiness        map[Readiness]int  `json:"byReadiness"`
}

func emptyReadiness() map[Readiness]int {
	out := make(map[Readiness]int, len(ReadinessLevels))
	for _, level := range ReadinessLevels {
		out[level] = 0
	}
	return out
}

// Summarize rolls successors up per position, in position order. Successors
// of positions absent from the list are ignored. A position is uncovered when
// it has no successor at all.
func Summarize(positions []KeyPosition, successors []Successor) Summary {
	summary := Summary{
		Positions:   make([]PositionCoverage, 0, len(positions)),
		ByReadiness: emptyReadiness(),
	}
	index := make(map[string]int, len(positions))
	progress := make([][]float64, 0, len(positions))
	for _, p := range positions {
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(summary.Positions)
		summary.Positions = append(summary.Positions, PositionCoverage{
			PositionID:  p.ID,
			Title:       p.Title,
			Department:  departmentLabel(p),
			Incumbent:   incumbentLabel(p),
			Criticality: p.Criticality,
			RiskLevel:   p.RiskLevel,
			ByReadiness: emptyReadiness(),
		})
		progress = append(progress, nil)
	}

	all := make([]float64, 0, len(successors))
	for _, s := range successors {
		i, ok := index[s.PositionID]
		if !ok {
			continue
		}
		pc := &summary.Positions[i]
		pc.Successors++
		pc.ByReadiness[s.ReadinessLevel]++
		if s.ReadinessLevel == ReadyNow {
			pc.HasReadySuccessor = true
		}
		progress[i] = append(progress[i], float64(s.DevelopmentProgress))
		all = append(all, float64(s.DevelopmentProgress))
		summary.ByReadiness[s.ReadinessLevel]++
		summary.TotalSuccessors++
	}

	covered := 0
	for i := range summary.Positions {
		pc := &summary.Positions[i]
		pc.AverageProgress = rollup.Round1(rollup.Average(progress[i]))
		switch {
		case pc.HasReadySuccessor:
			pc.Bench = BenchReady
			covered++
		case pc.Successors > 0:
			pc.Bench = BenchDeveloping
		default:
			pc.Bench = BenchNone
			summary.UncoveredPositions++
		}
		if pc.RiskLevel == LevelHigh {
			summary.HighRiskPositions++
		}
	}
	summary.TotalPositions = len(summary.Positions)
	summary.CoverageRate = rollup.Percentage(covered, summary.TotalPositions)
	summary.AverageProgress = rollup.Round1(rollup.Average(all))
	return summary
}

func departmentLabel(p KeyPosition) string {
	switch {
	case p.DepartmentName != nil:
		return *p.DepartmentName
	case p.DepartmentID != nil:
		return "Unknown"
	default:
		return "Unassigned"
	}
}

func incumbentLabel(p KeyPosition) string {
	switch {
	case p.IncumbentName != nil:
		return *p.IncumbentName
	case p.IncumbentID != nil:
		return "Unknown"
	default:
		return "Vacant"
	}
}
