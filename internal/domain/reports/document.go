package reports

import (
	"strconv"
	"time"

	"hrerp/internal/platform/pdf"
)

// WorkforceDocument lays the dashboard out as the printable workforce report.
func WorkforceDocument(d Dashboard) pdf.Document {
	w := d.Workforce
	doc := pdf.Document{
		Title:       "Workforce report",
		Subtitle:    d.From.Format(time.DateOnly) + " to " + d.To.Format(time.DateOnly) + " by " + string(d.Period),
		GeneratedAt: d.GeneratedAt,
	}

	doc.Sections = append(doc.Sections, pdf.Section{
		Heading: "Headcount",
		Facts: []pdf.Fact{
			{Label: "Employees", Value: strconv.Itoa(w.Total)},
			{Label: "Active", Value: strconv.Itoa(w.Active) + " (" + percent(w.ActiveRate) + ")"},
			{Label: "Inactive", Value: strconv.Itoa(w.Inactive)},
			{Label: "Terminated", Value: strconv.Itoa(w.Terminated)},
			{Label: "New hires", Value: strconv.Itoa(w.NewHires)},
		},
	})

	departments := pdf.Section{Heading: "Departments", Columns: []string{"Department", "Head", "Headcount", "Active", "Active rate"}}
	for _, row := range w.Departments {
		departments.Rows = append(departments.Rows, []string{row.Name, row.Head, strconv.Itoa(row.Headcount), strconv.Itoa(row.Active), percent(row.ActiveRate)})
	}
	doc.Sections = append(doc.Sections, departments)

	att := pdf.Section{
		Heading: "Attendance",
		Facts: []pdf.Fact{
			{Label: "Records", Value: strconv.Itoa(d.Attendance.Total)},
			{Label: "Attendance rate", Value: percent(d.Attendance.AttendanceRate)},
			{Label: "Hours worked", Value: strconv.FormatFloat(d.Attendance.TotalHours, 'f', 1, 64)},
			{Label: "Trend", Value: strconv.Itoa(d.Attendance.Trend)},
		},
		Columns: []string{"Period start", "Records", "Hours", "Average hours"},
	}
	for _, b := range d.Attendance.Buckets {
		att.Rows = append(att.Rows, []string{
			b.Start.Format(time.DateOnly),
			strconv.Itoa(b.Count),
			strconv.FormatFloat(b.Total, 'f', 1, 64),
			strconv.FormatFloat(b.Average, 'f', 1, 64),
		})
	}
	doc.Sections = append(doc.Sections, att)

	doc.Sections = append(doc.Sections,
		pdf.Section{
			Heading: "Performance",
			Facts: []pdf.Fact{
				{Label: "Goals", Value: strconv.Itoa(d.Performance.GoalsTotal)},
				{Label: "Completion rate", Value: percent(d.Performance.CompletionRate)},
				{Label: "Overdue goals", Value: strconv.Itoa(d.Performance.GoalsOverdue)},
				{Label: "Average rating", Value: strconv.FormatFloat(d.Performance.AverageRating, 'f', 1, 64)},
			},
		},
		pdf.Section{
			Heading: "Learning",
			Facts: []pdf.Fact{
				{Label: "Enrollments", Value: strconv.Itoa(d.Learning.Total)},
				{Label: "Completion rate", Value: percent(d.Learning.CompletionRate)},
				{Label: "Average progress", Value: strconv.FormatFloat(d.Learning.AverageProgress, 'f', 1, 64)},
			},
		},
		pdf.Section{
			Heading: "Compliance",
			Facts: []pdf.Fact{
				{Label: "Items", Value: strconv.Itoa(d.Compliance.Total)},
				{Label: "Completion rate", Value: percent(d.Compliance.CompletionRate)},
				{Label: "Overdue", Value: strconv.Itoa(d.Compliance.Overdue)},
				{Label: "Due soon", Value: strconv.Itoa(d.Compliance.DueSoon)},
			},
		},
	)
	return doc
}

func percent(value int) string {
	return strconv.Itoa(value) + "%"
}
