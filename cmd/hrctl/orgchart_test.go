package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrerp/internal/domain/org"
)

func ptr(s string) *string {
	return &s
}

func TestPrintChartIndentsByDepth(t *testing.T) {
	chart, err := org.BuildChart([]org.Employee{
		{ID: "1", FirstName: "Ada", LastName: "Lane", Position: "CEO", DepartmentID: ptr("d1")},
		{ID: "2", FirstName: "Ben", LastName: "Ong", Position: "CTO", DepartmentID: ptr("d2"), ManagerID: ptr("1")},
		{ID: "3", FirstName: "Cy", LastName: "Park", ManagerID: ptr("2")},
		{ID: "4", FirstName: "Di", LastName: "Ruiz", ManagerID: ptr("ghost")},
	}, []org.Department{{ID: "d1", Name: "Exec"}, {ID: "d2", Name: "Engineering"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	printChart(&buf, chart, 0)

	want := "Ada Lane (CEO) [Exec] headcount=2\n" +
		"  Ben Ong (CTO) [Engineering] headcount=1\n" +
		"    Cy Park [Unassigned]\n" +
		"Di Ruiz [Unassigned] manager=Unknown\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	printChart(&buf, chart, 1)
	assert.Equal(t, "Ada Lane (CEO) [Exec] headcount=2\nDi Ruiz [Unassigned] manager=Unknown\n", buf.String())
}

func TestPrintChartNilChart(t *testing.T) {
	var buf bytes.Buffer
	printChart(&buf, nil, 0)
	assert.Empty(t, buf.String())
}

func TestReportRangeDefaults(t *testing.T) {
	now := time.Date(2024, 6, 30, 15, 4, 0, 0, time.UTC)

	from, to, err := reportRange("", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", to.Format(dateLayout))
	assert.Equal(t, "2024-04-01", from.Format(dateLayout))

	from, to, err = reportRange("2024-01-01", "2024-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", from.Format(dateLayout))
	assert.Equal(t, "2024-01-31", to.Format(dateLayout))

	_, _, err = reportRange("2024-02-01", "2024-01-31", now)
	assert.Error(t, err)

	_, _, err = reportRange("yesterday", "", now)
	assert.Error(t, err)
}
