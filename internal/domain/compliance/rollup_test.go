package compliance

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func status(s string) *string {
	return &s
}

func TestAcknowledgmentScenarioD(t *testing.T) {
	row := AcknowledgmentRate(Policy{ID: "p1"}, 0, 0)
	assert.Equal(t, 0, row.Percentage)
	assert.Equal(t, 0, row.Pending)
}

func TestAcknowledgmentSevenOfTen(t *testing.T) {
	row := AcknowledgmentRate(Policy{ID: "p1", Title: "Code of Conduct"}, 7, 10)
	assert.Equal(t, 70, row.Percentage)
	assert.Equal(t, 3, row.Pending)
}

func TestAcknowledgmentNeverExceedsHeadcount(t *testing.T) {
	row := AcknowledgmentRate(Policy{ID: "p1"}, 12, 10)
	assert.Equal(t, 100, row.Percentage)
	assert.Equal(t, 0, row.Pending)
}

func TestRollupAcknowledgmentsCountsActiveEmployeesOnce(t *testing.T) {
	policies := []Policy{
		{ID: "p1", Title: "Security", RequiresAcknowledgment: true},
		{ID: "p2", Title: "Handbook", RequiresAcknowledgment: false},
		{ID: "p3", Title: "Privacy", RequiresAcknowledgment: true},
	}
	acks := []Acknowledgment{
		{PolicyID: "p1", EmployeeID: "e1", EmployeeStatus: status("active")},
		{PolicyID: "p1", EmployeeID: "e1", EmployeeStatus: status("active")},
		{PolicyID: "p1", EmployeeID: "e2", EmployeeStatus: status("terminated")},
		{PolicyID: "p1", EmployeeID: "e3", EmployeeStatus: status("active")},
		{PolicyID: "p2", EmployeeID: "e1", EmployeeStatus: status("active")},
	}
	rows := RollupAcknowledgments(policies, acks, 4)
	require.Len(t, rows, 2)
	assert.Equal(t, "p1", rows[0].PolicyID)
	assert.Equal(t, 2, rows[0].Acknowledged)
	assert.Equal(t, 50, rows[0].Percentage)
	assert.Equal(t, 0, rows[1].Percentage)
	assert.Equal(t, 25, OverallRate(rows))
}

func TestSummarizeItems(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	due := func(d int) time.Time { return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC) }
	summary := SummarizeItems([]Item{
		{ID: "late-2", Status: ItemInProgress, DueDate: due(8)},
		{ID: "late-1", Status: ItemPending, DueDate: due(1)},
		{ID: "done", Status: ItemCompleted, DueDate: due(1)},
		{ID: "today", Status: ItemPending, DueDate: due(10)},
		{ID: "week", Status: ItemPending, DueDate: due(17)},
		{ID: "later", Status: ItemPending, DueDate: due(25)},
	}, now)

	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 17, summary.CompletionRate)
	assert.Equal(t, 2, summary.Overdue)
	assert.Equal(t, "late-1", summary.OverdueItems[0].ID)
	assert.Equal(t, 2, summary.DueSoon)
}

func TestSummarizeItemsEmpty(t *testing.T) {
	summary := SummarizeItems(nil, time.Now())
	assert.Zero(t, summary.CompletionRate)
	assert.NotNil(t, summary.OverdueItems)
}

type fixedHeadcount int

func (f fixedHeadcount) ActiveHeadcount(context.Context, string) (int, error) {
	return int(f), nil
}

func TestPolicyAcknowledgmentCountsThroughJoinedStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	svc := NewService(NewStore(mock), fixedHeadcount(10))

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM policies WHERE tenant_id = $1 AND id = $2")).
		WithArgs("tenant-1", "p1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "version", "effective_date", "requires_acknowledgment", "updated_at"}).
			AddRow("p1", "Security", "1.0", now, true, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM policy_acknowledgments WHERE tenant_id = $1 AND policy_id = $2 AND (SELECT e.status FROM employees e WHERE e.id = policy_acknowledgments.employee_id AND e.tenant_id = policy_acknowledgments.tenant_id) = $3")).
		WithArgs("tenant-1", "p1", "active").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	row, err := svc.PolicyAcknowledgment(context.Background(), "tenant-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 70, row.Percentage)
	require.NoError(t, mock.ExpectationsWereMet())
}
