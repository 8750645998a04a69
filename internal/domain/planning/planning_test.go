package planning

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrerp/internal/domain/rollup"
	"hrerp/internal/platform/datastore"
)

func ptr(s string) *string {
	return &s
}

func TestCapacityScenarioBKeepsStoredPriority(t *testing.T) {
	view := ViewPlan(CapacityPlan{
		CurrentHeadcount: 40,
		PlannedHeadcount: 55,
		Capacity:         50,
		Priority:         rollup.PriorityHigh,
	})
	assert.Equal(t, 5, view.Gap)
	assert.Equal(t, 15, view.HeadcountChange)
	assert.Equal(t, 80, view.Utilization)
	assert.Equal(t, rollup.PriorityHigh, view.Priority)
	assert.Equal(t, "Unassigned", view.Department)
}

func TestCapacityPriorityIsNeverRecomputed(t *testing.T) {
	view := ViewPlan(CapacityPlan{PlannedHeadcount: 100, Capacity: 10, Priority: rollup.PriorityLow})
	assert.Equal(t, 90, view.Gap)
	assert.Equal(t, rollup.PriorityLow, view.Priority)
}

func TestSummarizeCapacityRollsUpPerDepartment(t *testing.T) {
	summary := SummarizeCapacity([]CapacityPlan{
		{DepartmentID: ptr("eng"), DepartmentName: ptr("Engineering"), CurrentHeadcount: 10, PlannedHeadcount: 14, Capacity: 12, OpenPositions: 2, Priority: rollup.PriorityHigh},
		{DepartmentID: ptr("ops"), DepartmentName: ptr("Operations"), CurrentHeadcount: 5, PlannedHeadcount: 5, Capacity: 8, Priority: rollup.PriorityLow},
		{DepartmentID: ptr("eng"), DepartmentName: ptr("Engineering"), CurrentHeadcount: 2, PlannedHeadcount: 3, Capacity: 4, OpenPositions: 1, Priority: rollup.PriorityMedium},
		{DepartmentID: ptr("gone"), CurrentHeadcount: 1, PlannedHeadcount: 1, Capacity: 1, Priority: rollup.PriorityLow},
	})

	want := []DepartmentCapacity{
		{DepartmentID: "eng", Department: "Engineering", CapacityTotals: CapacityTotals{CurrentHeadcount: 12, PlannedHeadcount: 17, Capacity: 16, OpenPositions: 3, Gap: 1, Utilization: 75}},
		{DepartmentID: "ops", Department: "Operations", CapacityTotals: CapacityTotals{CurrentHeadcount: 5, PlannedHeadcount: 5, Capacity: 8, Gap: -3, Utilization: 63}},
		{DepartmentID: "gone", Department: UnknownLabel, CapacityTotals: CapacityTotals{CurrentHeadcount: 1, PlannedHeadcount: 1, Capacity: 1, Utilization: 100}},
	}
	if diff := cmp.Diff(want, summary.Departments); diff != "" {
		t.Fatalf("department rollup mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 18, summary.Totals.CurrentHeadcount)
	assert.Equal(t, -2, summary.Totals.Gap)
	assert.Equal(t, map[rollup.Priority]int{rollup.PriorityLow: 2, rollup.PriorityMedium: 1, rollup.PriorityHigh: 1}, summary.ByPriority)
}

func TestSkillGapScenarioC(t *testing.T) {
	report := BuildSkillGapReport([]SkillAssessment{
		{ID: "a1", EmployeeID: "e1", SkillID: "go", CurrentLevel: 30, TargetLevel: 70, SkillName: ptr("Go"), EmployeeName: ptr("Ada L")},
		{ID: "a2", EmployeeID: "e2", SkillID: "go", CurrentLevel: 80, TargetLevel: 60, SkillName: ptr("Go"), EmployeeName: ptr("Bob K")},
	}, rollup.DefaultCriticalThreshold)

	require.Len(t, report.Items, 1)
	assert.Equal(t, "a1", report.Items[0].AssessmentID)
	assert.Equal(t, -40.0, report.Items[0].Gap.Gap)
	assert.Equal(t, rollup.PriorityHigh, report.Items[0].Priority)
	assert.Equal(t, 1, report.CriticalCount)
	assert.Equal(t, 40.0, report.TotalGap)

	require.Len(t, report.BySkill, 1)
	assert.Equal(t, SkillGapGroup{SkillID: "go", Skill: "Go", Assessed: 2, WithGap: 1, AverageGap: -40, CriticalCount: 1}, report.BySkill[0])
	require.Len(t, report.ByEmployee, 1)
	assert.Equal(t, "Ada L", report.ByEmployee[0].Employee)
}

func TestSkillGapItemsSortedByMagnitudeWithPlaceholderLabels(t *testing.T) {
	report := BuildSkillGapReport([]SkillAssessment{
		{ID: "small", EmployeeID: "e1", SkillID: "s1", CurrentLevel: 50, TargetLevel: 55},
		{ID: "large", EmployeeID: "e1", SkillID: "s2", CurrentLevel: 10, TargetLevel: 60, SkillName: ptr("SQL")},
		{ID: "medium", EmployeeID: "e2", SkillID: "s1", CurrentLevel: 40, TargetLevel: 52},
	}, rollup.DefaultCriticalThreshold)

	ids := []string{}
	for _, item := range report.Items {
		ids = append(ids, item.AssessmentID)
	}
	assert.Equal(t, []string{"large", "medium", "small"}, ids)
	assert.Equal(t, UnknownLabel, report.Items[1].Skill)
	assert.Equal(t, UnknownLabel, report.Items[1].Employee)
	assert.Equal(t, rollup.PriorityMedium, report.Items[1].Priority)
	assert.Equal(t, rollup.PriorityLow, report.Items[2].Priority)
	assert.Equal(t, 67.0, report.TotalGap)
	assert.Equal(t, 1, report.CriticalCount)
}

func TestSetPriorityPatchesOnlyPriority(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	svc := NewService(NewStore(mock), 0)
	assert.Equal(t, float64(rollup.DefaultCriticalThreshold), svc.Threshold())

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE capacity_plans SET priority = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2")).
		WithArgs("tenant-1", "plan-1", "high").
		WillReturnRows(pgxmock.NewRows([]string{"id", "department_id", "period", "current_headcount", "planned_headcount", "capacity", "open_positions", "priority", "notes", "department_name", "created_at", "updated_at"}).
			AddRow("plan-1", ptr("dept-1"), "2025-Q1", 40, 55, 50, 0, rollup.PriorityHigh, "", ptr("Engineering"), now, now))

	plan, err := svc.SetPriority(context.Background(), "tenant-1", "plan-1", rollup.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, rollup.PriorityHigh, plan.Priority)
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = svc.SetPriority(context.Background(), "tenant-1", "plan-1", "urgent")
	assert.ErrorIs(t, err, datastore.ErrInvalidValue)
}
