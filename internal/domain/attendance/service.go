package attendance

import (
	"context"
	"time"

	"hrerp/internal/domain/stats"
	"hrerp/internal/platform/datastore"
)

type Service struct {
	store   *Store
	Records *datastore.Resource[Record]
}

func NewService(store *Store) *Service {
	return &Service{store: store, Records: datastore.NewResource(store.Records, validateRecord)}
}

// Range fetches records whose work date falls within the calendar periods
// covering [from, to].
func (s *Service) Range(ctx context.Context, tenantID string, from, to time.Time, period stats.Period) ([]Record, error) {
	loc := from.Location()
	start := period.Start(from, loc)
	end := period.Start(to, loc)
	switch period {
	case stats.PeriodWeek:
		end = end.AddDate(0, 0, 6)
	case stats.PeriodMonth:
		end = end.AddDate(0, 1, -1)
	}
	return s.store.Records.List(ctx, tenantID, datastore.Query{
		Filters: []datastore.Filter{datastore.Gte("work_date", start), datastore.Lte("work_date", end)},
		OrderBy: []datastore.Order{datastore.Asc("work_date")},
	})
}

func (s *Service) Stats(ctx context.Context, tenantID string, from, to time.Time, period stats.Period) (Stats, error) {
	if _, err := stats.Bucketize(nil, from, to, period); err != nil {
		return Stats{}, err
	}
	records, err := s.Range(ctx, tenantID, from, to, period)
	if err != nil {
		return Stats{}, err
	}
	return BuildStats(records, from, to, period)
}

func (s *Service) Timesheets(ctx context.Context, tenantID string, from, to time.Time) ([]Timesheet, error) {
	if _, err := stats.Bucketize(nil, from, to, stats.PeriodDay); err != nil {
		return nil, err
	}
	records, err := s.Range(ctx, tenantID, from, to, stats.PeriodDay)
	if err != nil {
		return nil, err
	}
	return Timesheets(records), nil
}

func validateRecord(_ context.Context, _, _ string, r Record) (Record, error) {
	var issues datastore.Issues
	issues.Required("employeeId", r.EmployeeID)
	issues.UUID("employeeId", &r.EmployeeID)
	if r.WorkDate.IsZero() {
		issues.Add("workDate", "is required")
	}
	issues.Enum("status", r.Status, Statuses...)
	issues.Range("hoursWorked", r.HoursWorked, 0, 24)
	if (r.Status == StatusAbsent || r.Status == StatusLeave) && r.HoursWorked > 0 {
		issues.Add("hoursWorked", "must be zero for absent or leave days")
	}
	return r, issues.Err()
}
