package learning

import (
	"sort"
	"time"

	"hrerp/internal/domain/rollup"
)

// DefaultExpiryWarning is how far ahead an expiry counts as expiring.
const DefaultExpiryWarning = 30 * 24 * time.Hour

type EnrollmentSummary struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"byStatus"`
	CompletionRate  int            `json:"completionRate"`
	AverageProgress float64        `json:"averageProgress"`
}

type CourseRollup struct {
	CourseID        string  `json:"courseId"`
	Title           string  `json:"title"`
	Enrolled        int     `json:"enrolled"`
	Completed       int     `json:"completed"`
	CompletionRate  int     `json:"completionRate"`
	AverageProgress float64 `json:"averageProgress"`
}

type CertificationView struct {
	Certification
	State         string `json:"state"`
	DaysRemaining *int   `json:"daysRemaining,omitempty"`
}

type CertificationSummary struct {
	Total     int                 `json:"total"`
	Active    int                 `json:"active"`
	Expiring  int                 `json:"expiring"`
	Expired   int                 `json:"expired"`
	Attention []CertificationView `json:"attention"`
}

type Summary struct {
	Enrollments    EnrollmentSummary    `json:"enrollments"`
	Courses        []CourseRollup       `json:"courses"`
	Certifications CertificationSummary `json:"certifications"`
}

func SummarizeEnrollments(enrollments []Enrollment) EnrollmentSummary {
	summary := EnrollmentSummary{
		ByStatus: map[string]int{StatusNotStarted: 0, StatusInProgress: 0, StatusCompleted: 0},
	}
	progress := make([]float64, 0, len(enrollments))
	for _, e := range enrollments {
		summary.Total++
		summary.ByStatus[e.Status]++
		progress = append(progress, float64(e.Progress))
	}
	summary.CompletionRate = rollup.Percentage(summary.ByStatus[StatusCompleted], summary.Total)
	summary.AverageProgress = rollup.Round1(rollup.Average(progress))
	return summary
}

// RollupCourses groups enrollments per course, ordered by title. A course
// missing from the joined rows is labelled "Unknown course".
func RollupCourses(enrollments []Enrollment) []CourseRollup {
	index := make(map[string]int)
	rows := make([]CourseRollup, 0)
	progress := make([][]float64, 0)
	for _, e := range enrollments {
		i, ok := index[e.CourseID]
		if !ok {
			title := "Unknown course"
			if e.CourseTitle != nil && *e.CourseTitle != "" {
				title = *e.CourseTitle
			}
			i = len(rows)
			index[e.CourseID] = i
			rows = append(rows, CourseRollup{CourseID: e.CourseID, Title: title})
			progress = append(progress, nil)
		}
		rows[i].Enrolled++
		if e.Status == StatusCompleted {
			rows[i].Completed++
		}
		progress[i] = append(progress[i], float64(e.Progress))
	}
	for i := range rows {
		rows[i].CompletionRate = rollup.Percentage(rows[i].Completed, rows[i].Enrolled)
		rows[i].AverageProgress = rollup.Round1(rollup.Average(progress[i]))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Title < rows[j].Title
	})
	return rows
}

// ClassifyCertification compares the expiry date with the calendar day of
// now. A certification expiring today is still expiring, not expired; one
// without expiry is active.
func ClassifyCertification(c Certification, now time.Time, warning time.Duration) (string, *int) {
	if c.ExpiryDate == nil {
		return CertActive, nil
	}
	today := dateOf(now)
	expiry := dateOf(*c.ExpiryDate)
	days := int(expiry.Sub(today).Hours() / 24)
	switch {
	case expiry.Before(today):
		return CertExpired, &days
	case !expiry.After(today.Add(warning)):
		return CertExpiring, &days
	default:
		return CertActive, &days
	}
}

// SummarizeCertifications counts states; Attention lists expired and expiring
// certifications, soonest expiry first.
func SummarizeCertifications(certs []Certification, now time.Time, warning time.Duration) CertificationSummary {
	summary := CertificationSummary{Attention: make([]CertificationView, 0)}
	for _, c := range certs {
		state, days := ClassifyCertification(c, now, warning)
		summary.Total++
		switch state {
		case CertExpired:
			summary.Expired++
		case CertExpiring:
			summary.Expiring++
		default:
			summary.Active++
		}
		if state != CertActive {
			summary.Attention = append(summary.Attention, CertificationView{Certification: c, State: state, DaysRemaining: days})
		}
	}
	sort.SliceStable(summary.Attention, func(i, j int) bool {
		return *summary.Attention[i].DaysRemaining < *summary.Attention[j].DaysRemaining
	})
	return summary
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
