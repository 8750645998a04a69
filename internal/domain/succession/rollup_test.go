package succession

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrerp/internal/platform/datastore"
)

func strp(s string) *string {
	return &s
}

func TestSummarizeCoverage(t *testing.T) {
	positions := []KeyPosition{
		{ID: "cto", Title: "CTO", RiskLevel: LevelHigh, IncumbentID: strp("e1"), IncumbentName: strp("Ada L"), DepartmentName: strp("Engineering"), DepartmentID: strp("eng")},
		{ID: "cfo", Title: "CFO", RiskLevel: LevelMedium, IncumbentID: strp("gone")},
		{ID: "coo", Title: "COO", RiskLevel: LevelHigh},
	}
	successors := []Successor{
		{PositionID: "cto", ReadinessLevel: ReadyNow, DevelopmentProgress: 90},
		{PositionID: "cto", ReadinessLevel: ReadyTwoPlus, DevelopmentProgress: 30},
		{PositionID: "cfo", ReadinessLevel: ReadyOneToTwo, DevelopmentProgress: 45},
		{PositionID: "orphan", ReadinessLevel: ReadyNow, DevelopmentProgress: 100},
	}

	summary := Summarize(positions, successors)
	require.Len(t, summary.Positions, 3)

	cto := summary.Positions[0]
	assert.Equal(t, 2, cto.Successors)
	assert.True(t, cto.HasReadySuccessor)
	assert.Equal(t, BenchReady, cto.Bench)
	assert.Equal(t, 60.0, cto.AverageProgress)
	assert.Equal(t, map[Readiness]int{ReadyNow: 1, ReadyOneToTwo: 0, ReadyTwoPlus: 1}, cto.ByReadiness)
	assert.Equal(t, "Ada L", cto.Incumbent)
	assert.Equal(t, "Engineering", cto.Department)

	cfo := summary.Positions[1]
	assert.False(t, cfo.HasReadySuccessor)
	assert.Equal(t, BenchDeveloping, cfo.Bench)
	assert.Equal(t, "Unknown", cfo.Incumbent)
	assert.Equal(t, "Unassigned", cfo.Department)

	coo := summary.Positions[2]
	assert.Equal(t, BenchNone, coo.Bench)
	assert.Zero(t, coo.AverageProgress)
	assert.Equal(t, "Vacant", coo.Incumbent)

	assert.Equal(t, 3, summary.TotalPositions)
	assert.Equal(t, 3, summary.TotalSuccessors)
	assert.Equal(t, 1, summary.UncoveredPositions)
	assert.Equal(t, 2, summary.HighRiskPositions)
	assert.Equal(t, 33, summary.CoverageRate)
	assert.Equal(t, 55.0, summary.AverageProgress)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, nil)
	assert.Empty(t, summary.Positions)
	assert.Zero(t, summary.CoverageRate)
	assert.Zero(t, summary.AverageProgress)
	assert.Len(t, summary.ByReadiness, 3)
}

func TestValidateSuccessor(t *testing.T) {
	_, err := validateSuccessor(context.Background(), "t", "", Successor{PositionID: "0d9c8b7a-6f5e-4d3c-8b2a-000000000001", EmployeeID: "0d9c8b7a-6f5e-4d3c-8b2a-000000000002", ReadinessLevel: "Soon", DevelopmentProgress: 120})
	var verr *datastore.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	_, err = validateSuccessor(context.Background(), "t", "", Successor{PositionID: "0d9c8b7a-6f5e-4d3c-8b2a-000000000001", EmployeeID: "0d9c8b7a-6f5e-4d3c-8b2a-000000000002", ReadinessLevel: ReadyNow, DevelopmentProgress: 100})
	assert.NoError(t, err)
}
