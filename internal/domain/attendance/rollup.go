package attendance

import (
	"sort"
	"time"

	"hrerp/internal/domain/rollup"
	"hrerp/internal/domain/stats"
)

type Stats struct {
	From           time.Time      `json:"from"`
	To             time.Time      `json:"to"`
	Period         stats.Period   `json:"period"`
	Buckets        []stats.Bucket `json:"buckets"`
	Trend          int            `json:"trend"`
	HoursTrend     float64        `json:"hoursTrend"`
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	TotalHours     float64        `json:"totalHours"`
	AttendanceRate int            `json:"attendanceRate"`
}

// BuildStats buckets records by work date. Bucket totals are hours worked;
// categories are attendance statuses.
func BuildStats(records []Record, from, to time.Time, period stats.Period) (Stats, error) {
	points := make([]stats.Point, 0, len(records))
	for _, r := range records {
		points = append(points, stats.Point{At: r.WorkDate, Value: r.HoursWorked, Category: r.Status, DateOnly: true})
	}
	buckets, err := stats.Bucketize(points, from, to, period)
	if err != nil {
		return Stats{}, err
	}

	out := Stats{
		From:       from,
		To:         to,
		Period:     period,
		Buckets:    buckets,
		Trend:      stats.Trend(buckets),
		HoursTrend: stats.TotalTrend(buckets),
		ByStatus:   make(map[string]int, len(Statuses)),
	}
	for _, s := range Statuses {
		out.ByStatus[s] = 0
	}
	attended := 0
	for _, b := range buckets {
		out.Total += b.Count
		out.TotalHours += b.Total
		for status, n := range b.Categories {
			out.ByStatus[status] += n
		}
	}
	for _, s := range []string{StatusPresent, StatusLate, StatusRemote} {
		attended += out.ByStatus[s]
	}
	out.AttendanceRate = rollup.Percentage(attended, out.Total)
	return out, nil
}

type Timesheet struct {
	EmployeeID   string  `json:"employeeId"`
	Employee     string  `json:"employee"`
	Days         int     `json:"days"`
	DaysAttended int     `json:"daysAttended"`
	DaysAbsent   int     `json:"daysAbsent"`
	DaysLate     int     `json:"daysLate"`
	DaysLeave    int     `json:"daysLeave"`
	TotalHours   float64 `json:"totalHours"`
	AverageHours float64 `json:"averageHours"`
}

// Timesheets rolls records up per employee, sorted by employee label.
// AverageHours is over attended days only.
func Timesheets(records []Record) []Timesheet {
	index := make(map[string]int)
	rows := make([]Timesheet, 0)
	hours := make([][]float64, 0)
	for _, r := range records {
		i, ok := index[r.EmployeeID]
		if !ok {
			name := "Unknown"
			if r.EmployeeName != nil && *r.EmployeeName != "" {
				name = *r.EmployeeName
			}
			i = len(rows)
			index[r.EmployeeID] = i
			rows = append(rows, Timesheet{EmployeeID: r.EmployeeID, Employee: name})
			hours = append(hours, nil)
		}
		ts := &rows[i]
		ts.Days++
		ts.TotalHours += r.HoursWorked
		switch r.Status {
		case StatusAbsent:
			ts.DaysAbsent++
		case StatusLeave:
			ts.DaysLeave++
		case StatusLate:
			ts.DaysLate++
		}
		if r.Attended() {
			ts.DaysAttended++
			hours[i] = append(hours[i], r.HoursWorked)
		}
	}
	for i := range rows {
		rows[i].AverageHours = rollup.Round1(rollup.Average(hours[i]))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Employee < rows[j].Employee
	})
	return rows
}
