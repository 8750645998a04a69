// Package reports combines the per-module rollups into one dashboard. The
// inputs are fetched concurrently; the aggregation itself is synchronous and
// works on the fetched snapshot only.
package reports

import (
	"time"

	"hrerp/internal/domain/attendance"
	"hrerp/internal/domain/compliance"
	"hrerp/internal/domain/learning"
	"hrerp/internal/domain/org"
	"hrerp/internal/domain/performance"
	"hrerp/internal/domain/rollup"
	"hrerp/internal/domain/stats"
)

// Snapshot is everything one dashboard is computed from.
type Snapshot struct {
	Employees   []org.Employee
	Departments []org.Department
	Attendance  []attendance.Record
	Goals       []performance.Goal
	Enrollments []learning.Enrollment
	Items       []compliance.Item
}

type Workforce struct {
	Total       int                    `json:"total"`
	Active      int                    `json:"active"`
	Inactive    int                    `json:"inactive"`
	Terminated  int                    `json:"terminated"`
	ActiveRate  int                    `json:"activeRate"`
	NewHires    int                    `json:"newHires"`
	Hires       []stats.Bucket         `json:"hires"`
	HiresTrend  int                    `json:"hiresTrend"`
	Departments []org.DepartmentRollup `json:"departments"`
}

type Dashboard struct {
	GeneratedAt time.Time                      `json:"generatedAt"`
	From        time.Time                      `json:"from"`
	To          time.Time                      `json:"to"`
	Period      stats.Period                   `json:"period"`
	Workforce   Workforce                      `json:"workforce"`
	Attendance  attendance.Stats               `json:"attendance"`
	Performance performance.PerformanceSummary `json:"performance"`
	Learning    learning.EnrollmentSummary     `json:"learning"`
	Compliance  compliance.ItemSummary         `json:"compliance"`
}

func BuildDashboard(snap Snapshot, from, to time.Time, period stats.Period, now time.Time) (Dashboard, error) {
	workforce, err := BuildWorkforce(snap.Employees, snap.Departments, from, to, period)
	if err != nil {
		return Dashboard{}, err
	}
	att, err := attendance.BuildStats(snap.Attendance, from, to, period)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		GeneratedAt: now,
		From:        from,
		To:          to,
		Period:      period,
		Workforce:   workforce,
		Attendance:  att,
		Performance: performance.BuildSummary(snap.Goals, now),
		Learning:    learning.SummarizeEnrollments(snap.Enrollments),
		Compliance:  compliance.SummarizeItems(snap.Items, now),
	}, nil
}

// BuildWorkforce counts employees by status and buckets hire dates over the
// range. Employees without a hire date are counted but never bucketed.
func BuildWorkforce(employees []org.Employee, departments []org.Department, from, to time.Time, period stats.Period) (Workforce, error) {
	w := Workforce{Total: len(employees)}
	hires := make([]stats.Point, 0, len(employees))
	for _, e := range employees {
		switch e.Status {
		case org.StatusActive:
			w.Active++
		case org.StatusInactive:
			w.Inactive++
		case org.StatusTerminated:
			w.Terminated++
		}
		if e.HiredAt != nil {
			hires = append(hires, stats.Point{At: *e.HiredAt, Value: 1, Category: e.Status, DateOnly: true})
		}
	}
	buckets, err := stats.Bucketize(hires, from, to, period)
	if err != nil {
		return Workforce{}, err
	}
	for _, b := range buckets {
		w.NewHires += b.Count
	}
	w.ActiveRate = rollup.Percentage(w.Active, w.Total)
	w.Hires = buckets
	w.HiresTrend = stats.Trend(buckets)
	w.Departments = org.RollupDepartments(employees, departments)
	return w, nil
}
