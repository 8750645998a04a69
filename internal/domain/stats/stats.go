// Package stats buckets timestamped records into calendar periods for the
// dashboard cards. Buckets follow calendar boundaries in the location of the
// range start, never rolling windows.
package stats

import (
	"fmt"
	"strings"
	"time"

	"hrerp/internal/domain/rollup"
)

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// MaxBuckets bounds a single request.
const MaxBuckets = 1000

func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	case "":
		return PeriodDay, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, raw)
	}
}

// Start returns the first instant of the period containing t, in loc.
// Weeks start on Monday.
func (p Period) Start(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	switch p {
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return day
	}
}

func (p Period) next(start time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return start.AddDate(0, 0, 7)
	case PeriodMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// Point is one timestamped record. Category is optional and counted per
// bucket when set. DateOnly marks At as a calendar date (a DATE column read
// back as midnight UTC); it lands on that day whatever the range location.
type Point struct {
	At       time.Time
	Value    float64
	Category string
	DateOnly bool
}

func (p Point) in(loc *time.Location) time.Time {
	if p.DateOnly {
		return time.Date(p.At.Year(), p.At.Month(), p.At.Day(), 0, 0, 0, 0, loc)
	}
	return p.At
}

type Bucket struct {
	Start      time.Time      `json:"start"`
	End        time.Time      `json:"end"`
	Count      int            `json:"count"`
	Total      float64        `json:"total"`
	Average    float64        `json:"average"`
	Categories map[string]int `json:"categories"`
}

// Bucketize emits one bucket per calendar period intersecting [from, to],
// empty periods included. A point is counted when its period is one of the
// emitted buckets; points outside every bucket are ignored.
func Bucketize(points []Point, from, to time.Time, period Period) ([]Bucket, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	switch period {
	case PeriodDay, PeriodWeek, PeriodMonth:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	loc := from.Location()
	buckets := make([]Bucket, 0)
	index := make(map[int64]int)
	for start := period.Start(from, loc); !start.After(to); start = period.next(start) {
		if len(buckets) == MaxBuckets {
			return nil, fmt.Errorf("%w: more than %d %s buckets", ErrInvalidRange, MaxBuckets, period)
		}
		index[start.Unix()] = len(buckets)
		buckets = append(buckets, Bucket{
			Start:      start,
			End:        period.next(start),
			Categories: map[string]int{},
		})
	}

	sums := make([][]float64, len(buckets))
	for _, p := range points {
		i, ok := index[period.Start(p.in(loc), loc).Unix()]
		if !ok {
			continue
		}
		b := &buckets[i]
		b.Count++
		b.Total += p.Value
		sums[i] = append(sums[i], p.Value)
		if p.Category != "" {
			b.Categories[p.Category]++
		}
	}
	for i := range buckets {
		buckets[i].Average = rollup.Average(sums[i])
	}
	return buckets, nil
}

// Trend is the last bucket's count minus the first's.
func Trend(buckets []Bucket) int {
	if len(buckets) == 0 {
		return 0
	}
	return buckets[len(buckets)-1].Count - buckets[0].Count
}

// TotalTrend is Trend over bucket totals.
func TotalTrend(buckets []Bucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	return buckets[len(buckets)-1].Total - buckets[0].Total
}
