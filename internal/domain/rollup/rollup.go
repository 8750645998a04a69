// Package rollup holds the gap and percentage arithmetic shared by the
// planning, learning, compliance and performance dashboards. Every function
// is total: empty inputs and zero denominators yield zero.
package rollup

import "math"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultCriticalThreshold is the skill-gap magnitude at which a gap is
// critical and its priority high.
const DefaultCriticalThreshold = 20

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Metric struct {
	Label   string  `json:"label"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}

type Gap struct {
	Label    string   `json:"label"`
	Current  float64  `json:"current"`
	Target   float64  `json:"target"`
	Gap      float64  `json:"gap"`
	Priority Priority `json:"priority"`
}

// Magnitude is |Gap|.
func (g Gap) Magnitude() float64 {
	return math.Abs(g.Gap)
}

type Summary struct {
	Items         []Gap   `json:"items"`
	TotalGap      float64 `json:"totalGap"`
	CriticalCount int     `json:"criticalCount"`
}

// ComputeGap returns current - target classified against threshold:
// high at or above it, medium at or above half of it, low otherwise.
func ComputeGap(m Metric, threshold float64) Gap {
	gap := m.Current - m.Target
	return Gap{
		Label:    m.Label,
		Current:  m.Current,
		Target:   m.Target,
		Gap:      gap,
		Priority: Classify(gap, threshold),
	}
}

func Classify(gap, threshold float64) Priority {
	magnitude := math.Abs(gap)
	switch {
	case magnitude >= threshold:
		return PriorityHigh
	case magnitude >= threshold/2:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func Summarize(metrics []Metric, threshold float64) Summary {
	items := make([]Gap, 0, len(metrics))
	for _, m := range metrics {
		items = append(items, ComputeGap(m, threshold))
	}
	return SummarizeGaps(items, threshold)
}

func SummarizeGaps(items []Gap, threshold float64) Summary {
	summary := Summary{Items: items}
	if summary.Items == nil {
		summary.Items = []Gap{}
	}
	for _, g := range items {
		summary.TotalGap += g.Magnitude()
		if g.Magnitude() >= threshold {
			summary.CriticalCount++
		}
	}
	return summary
}

// Shortfalls keeps only metrics whose current value is below target, in
// input order. Metrics that meet or exceed target are dropped entirely.
func Shortfalls(metrics []Metric, threshold float64) []Gap {
	out := make([]Gap, 0, len(metrics))
	for _, m := range metrics {
		if m.Current < m.Target {
			out = append(out, ComputeGap(m, threshold))
		}
	}
	return out
}

// Percentage is round(100 * part / total), or 0 when total is not positive.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// Average is the arithmetic mean, or 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Round1 rounds to one decimal place for display.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}
