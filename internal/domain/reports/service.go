package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"hrerp/internal/domain/attendance"
	"hrerp/internal/domain/compliance"
	"hrerp/internal/domain/learning"
	"hrerp/internal/domain/org"
	"hrerp/internal/domain/performance"
	"hrerp/internal/domain/stats"
)

type OrgSource interface {
	Snapshot(ctx context.Context, tenantID string) ([]org.Employee, []org.Department, error)
}

type AttendanceSource interface {
	Range(ctx context.Context, tenantID string, from, to time.Time, period stats.Period) ([]attendance.Record, error)
}

type GoalSource interface {
	AllGoals(ctx context.Context, tenantID string) ([]performance.Goal, error)
}

type EnrollmentSource interface {
	AllEnrollments(ctx context.Context, tenantID string) ([]learning.Enrollment, error)
}

type ItemSource interface {
	AllItems(ctx context.Context, tenantID string) ([]compliance.Item, error)
}

type Sources struct {
	Org         OrgSource
	Attendance  AttendanceSource
	Goals       GoalSource
	Enrollments EnrollmentSource
	Items       ItemSource
}

type Service struct {
	src     Sources
	timeout time.Duration
	now     func() time.Time
}

// NewService bounds every dashboard fetch by timeout; zero means the
// caller's context alone decides.
func NewService(src Sources, timeout time.Duration) *Service {
	return &Service{src: src, timeout: timeout, now: time.Now}
}

// Fetch issues all snapshot reads concurrently. The first failure cancels
// the remaining reads and is returned.
func (s *Service) Fetch(ctx context.Context, tenantID string, from, to time.Time, period stats.Period) (Snapshot, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Employees, snap.Departments, err = s.src.Org.Snapshot(ctx, tenantID)
		return wrap("employees", err)
	})
	g.Go(func() error {
		var err error
		snap.Attendance, err = s.src.Attendance.Range(ctx, tenantID, from, to, period)
		return wrap("attendance", err)
	})
	g.Go(func() error {
		var err error
		snap.Goals, err = s.src.Goals.AllGoals(ctx, tenantID)
		return wrap("goals", err)
	})
	g.Go(func() error {
		var err error
		snap.Enrollments, err = s.src.Enrollments.AllEnrollments(ctx, tenantID)
		return wrap("enrollments", err)
	})
	g.Go(func() error {
		var err error
		snap.Items, err = s.src.Items.AllItems(ctx, tenantID)
		return wrap("compliance items", err)
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *Service) Dashboard(ctx context.Context, tenantID string, from, to time.Time, period stats.Period) (Dashboard, error) {
	if _, err := stats.Bucketize(nil, from, to, period); err != nil {
		return Dashboard{}, err
	}
	snap, err := s.Fetch(ctx, tenantID, from, to, period)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(snap, from, to, period, s.now())
}

func wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard %s: %w", source, err)
}
