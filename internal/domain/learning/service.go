package learning

import (
	"context"
	"strings"
	"time"

	"hrerp/internal/platform/datastore"
)

type Service struct {
	store          *Store
	warning        time.Duration
	now            func() time.Time
	Courses        *datastore.Resource[Course]
	Enrollments    *datastore.Resource[Enrollment]
	Certifications *datastore.Resource[Certification]
}

func NewService(store *Store, expiryWarning time.Duration) *Service {
	if expiryWarning <= 0 {
		expiryWarning = DefaultExpiryWarning
	}
	s := &Service{store: store, warning: expiryWarning, now: time.Now}
	s.Courses = datastore.NewResource(store.Courses, validateCourse)
	s.Enrollments = datastore.NewResource(store.Enrollments, s.validateEnrollment)
	s.Certifications = datastore.NewResource(store.Certifications, validateCertification)
	return s
}

func (s *Service) Summary(ctx context.Context, tenantID string) (Summary, error) {
	enrollments, err := s.store.Enrollments.List(ctx, tenantID, datastore.Query{})
	if err != nil {
		return Summary{}, err
	}
	certs, err := s.store.Certifications.List(ctx, tenantID, datastore.Query{OrderBy: []datastore.Order{datastore.Asc("expiry_date")}})
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Enrollments:    SummarizeEnrollments(enrollments),
		Courses:        RollupCourses(enrollments),
		Certifications: SummarizeCertifications(certs, s.now(), s.warning),
	}, nil
}

// RecordProgress sets progress and moves the status with it.
func (s *Service) RecordProgress(ctx context.Context, tenantID, enrollmentID string, progress int) (Enrollment, error) {
	var issues datastore.Issues
	issues.Range("progress", float64(progress), 0, 100)
	if err := issues.Err(); err != nil {
		return Enrollment{}, err
	}
	patch := datastore.Patch{"progress": progress, "status": statusFor(progress), "completed_at": nil}
	if progress == 100 {
		patch["completed_at"] = s.now().UTC()
	}
	return s.Enrollments.Update(ctx, tenantID, enrollmentID, patch)
}

func statusFor(progress int) string {
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

func validateCourse(_ context.Context, _, _ string, c Course) (Course, error) {
	c.Title = strings.TrimSpace(c.Title)
	var issues datastore.Issues
	issues.Required("title", c.Title)
	issues.NonNegative("durationHours", c.DurationHours)
	return c, issues.Err()
}

func (s *Service) validateEnrollment(_ context.Context, _, _ string, e Enrollment) (Enrollment, error) {
	if e.Status == "" {
		e.Status = statusFor(e.Progress)
	}
	if e.Status == StatusCompleted {
		e.Progress = 100
		if e.CompletedAt == nil {
			now := s.now().UTC()
			e.CompletedAt = &now
		}
	}
	var issues datastore.Issues
	issues.Required("courseId", e.CourseID)
	issues.UUID("courseId", &e.CourseID)
	issues.Required("employeeId", e.EmployeeID)
	issues.UUID("employeeId", &e.EmployeeID)
	issues.Enum("status", e.Status, StatusNotStarted, StatusInProgress, StatusCompleted)
	issues.Range("progress", float64(e.Progress), 0, 100)
	return e, issues.Err()
}

func validateCertification(_ context.Context, _, _ string, c Certification) (Certification, error) {
	c.Name = strings.TrimSpace(c.Name)
	var issues datastore.Issues
	issues.Required("employeeId", c.EmployeeID)
	issues.UUID("employeeId", &c.EmployeeID)
	issues.Required("name", c.Name)
	if c.IssueDate.IsZero() {
		issues.Add("issueDate", "is required")
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(c.IssueDate) {
		issues.Add("expiryDate", "must be on or after issueDate")
	}
	return c, issues.Err()
}

func (s *Service) AllEnrollments(ctx context.Context, tenantID string) ([]Enrollment, error) {
	return s.store.Enrollments.List(ctx, tenantID, datastore.Query{})
}
