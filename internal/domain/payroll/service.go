package payroll

import (
	"context"
	"strings"

	"hrerp/internal/platform/datastore"
)

type Service struct {
	store   *Store
	Records *datastore.Resource[Record]
}

func NewService(store *Store) *Service {
	return &Service{store: store, Records: datastore.NewResource(store.Records, validateRecord)}
}

func (s *Service) Summary(ctx context.Context, tenantID, period string) (PeriodSummary, error) {
	if _, err := ParsePeriod(period); err != nil {
		return PeriodSummary{}, err
	}
	records, err := s.store.Records.List(ctx, tenantID, datastore.Query{
		Filters: []datastore.Filter{datastore.Eq("period", period)},
		OrderBy: []datastore.Order{datastore.Asc("employee_name")},
	})
	if err != nil {
		return PeriodSummary{}, err
	}
	return Summarize(period, records), nil
}

func validateRecord(_ context.Context, _, _ string, r Record) (Record, error) {
	r.Period = strings.TrimSpace(r.Period)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	var issues datastore.Issues
	issues.Required("employeeId", r.EmployeeID)
	issues.UUID("employeeId", &r.EmployeeID)
	if _, err := ParsePeriod(r.Period); err != nil {
		issues.Add("period", "must be formatted YYYY-MM")
	}
	issues.NonNegative("baseSalary", r.BaseSalary)
	issues.NonNegative("earnings", r.Earnings)
	issues.NonNegative("deductions", r.Deductions)
	if len(r.Currency) != 3 {
		issues.Add("currency", "must be a three letter code")
	}
	return r, issues.Err()
}

func (s *Service) Payslip(ctx context.Context, tenantID, recordID string) (Payslip, error) {
	record, err := s.store.Records.Get(ctx, tenantID, recordID)
	if err != nil {
		return Payslip{}, err
	}
	return BuildPayslip(record), nil
}
