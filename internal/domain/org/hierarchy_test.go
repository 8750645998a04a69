package org

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shape struct {
	ID      string
	Depth   int
	Reports []shape
}

func shapeOf(nodes []*Node) []shape {
	out := make([]shape, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, shape{ID: n.ID, Depth: n.Depth, Reports: shapeOf(n.Reports)})
	}
	return out
}

func ref(id string) *string {
	return &id
}

func emp(id string, manager *string) Employee {
	return Employee{ID: id, FirstName: "E", LastName: id, Status: StatusActive, ManagerID: manager}
}

func TestBuildChartScenarioA(t *testing.T) {
	chart, err := BuildChart([]Employee{
		emp("1", nil),
		emp("2", ref("1")),
		emp("3", ref("1")),
		emp("4", ref("2")),
	}, nil)
	require.NoError(t, err)

	want := []shape{{
		ID: "1",
		Reports: []shape{
			{ID: "2", Depth: 1, Reports: []shape{{ID: "4", Depth: 2, Reports: []shape{}}}},
			{ID: "3", Depth: 1, Reports: []shape{}},
		},
	}}
	if diff := cmp.Diff(want, shapeOf(chart.Roots)); diff != "" {
		t.Fatalf("chart mismatch (-want +got):\n%s", diff)
	}

	four, ok := chart.Find("4")
	require.True(t, ok)
	assert.Equal(t, 2, four.Depth)
	assert.Equal(t, "E 2", four.Manager)

	root, _ := chart.Find("1")
	assert.Equal(t, 2, root.Span)
	assert.Equal(t, 3, root.Headcount)
	assert.Equal(t, 4, chart.Size())
}

func TestBuildChartEmptyInput(t *testing.T) {
	chart, err := BuildChart(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, chart.Roots)
	assert.Empty(t, chart.Roots)
	assert.Zero(t, chart.Size())
}

func TestBuildChartReportsFollowInputOrderEvenWhenManagerComesLater(t *testing.T) {
	chart, err := BuildChart([]Employee{
		emp("c", ref("m")),
		emp("a", ref("m")),
		emp("m", nil),
		emp("b", ref("m")),
	}, nil)
	require.NoError(t, err)
	require.Len(t, chart.Roots, 1)

	ids := []string{}
	for _, n := range chart.Roots[0].Reports {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestBuildChartMissingManagerBecomesRoot(t *testing.T) {
	chart, err := BuildChart([]Employee{
		emp("1", nil),
		emp("2", ref("ghost")),
		emp("3", ref("2")),
	}, nil)
	require.NoError(t, err)
	require.Len(t, chart.Roots, 2)

	orphan := chart.Roots[1]
	assert.Equal(t, "2", orphan.ID)
	assert.True(t, orphan.ManagerMissing)
	assert.Equal(t, UnknownManager, orphan.Manager)
	assert.Equal(t, 0, orphan.Depth)
	assert.Equal(t, "3", orphan.Reports[0].ID)
}

func TestBuildChartDepartmentLabels(t *testing.T) {
	chart, err := BuildChart([]Employee{
		{ID: "1", FirstName: "Ada", LastName: "L", DepartmentID: ref("eng")},
		{ID: "2", FirstName: "Bob", LastName: "K", DepartmentID: ref("gone")},
		{ID: "3", FirstName: "Cy", LastName: "M"},
	}, []Department{{ID: "eng", Name: "Engineering"}})
	require.NoError(t, err)

	got := []string{}
	for _, n := range chart.Roots {
		got = append(got, n.Department)
	}
	assert.Equal(t, []string{"Engineering", UnassignedDepartment, UnassignedDepartment}, got)
}

func TestBuildChartTerminatesOnCycle(t *testing.T) {
	chart, err := BuildChart([]Employee{
		emp("root", nil),
		emp("a", ref("b")),
		emp("b", ref("c")),
		emp("c", ref("a")),
		emp("d", ref("c")),
		emp("e", ref("root")),
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleDetected))

	var cycle *CycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, []string{"a", "b", "c"}, cycle.Members)
	assert.Equal(t, []string{"d"}, cycle.Unplaced)

	assert.Equal(t, 2, chart.Size())
	if diff := cmp.Diff([]shape{{ID: "root", Reports: []shape{{ID: "e", Depth: 1, Reports: []shape{}}}}}, shapeOf(chart.Roots)); diff != "" {
		t.Fatalf("partial chart mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildChartSelfManagerIsCycle(t *testing.T) {
	_, err := BuildChart([]Employee{emp("solo", ref("solo"))}, nil)
	var cycle *CycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, []string{"solo"}, cycle.Members)
	assert.Empty(t, cycle.Unplaced)
}

func TestBuildChartIgnoresDuplicateIDs(t *testing.T) {
	chart, err := BuildChart([]Employee{emp("1", nil), emp("1", ref("1"))}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, chart.Size())
}

func TestBuildChartAcyclicForestPlacesEveryone(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(60)
		employees := make([]Employee, n)
		for i := 0; i < n; i++ {
			var manager *string
			if i > 0 && rng.Intn(5) > 0 {
				manager = ref(strconv.Itoa(rng.Intn(i)))
			}
			employees[i] = emp(strconv.Itoa(i), manager)
		}
		rng.Shuffle(n, func(i, j int) { employees[i], employees[j] = employees[j], employees[i] })

		chart, err := BuildChart(employees, nil)
		require.NoError(t, err)
		require.Equal(t, n, chart.Size())

		count := 0
		chart.Walk(func(node *Node) bool {
			count++
			for _, child := range node.Reports {
				require.Equal(t, node.ID, child.ManagerID)
				require.Equal(t, node.Depth+1, child.Depth)
			}
			return true
		})
		require.Equal(t, n, count)
	}
}

func TestLevels(t *testing.T) {
	levels, err := Levels([]Employee{emp("1", nil), emp("2", ref("1")), emp("4", ref("2"))})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 0, "2": 1, "4": 2}, levels)
}

func TestChainOfCommand(t *testing.T) {
	employees := []Employee{emp("1", nil), emp("2", ref("1")), emp("4", ref("2")), emp("5", ref("ghost"))}

	chain, err := ChainOfCommand(employees, "4")
	require.NoError(t, err)
	ids := []string{}
	for _, e := range chain {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"2", "1"}, ids)

	chain, err = ChainOfCommand(employees, "5")
	require.NoError(t, err)
	assert.Empty(t, chain)

	_, err = ChainOfCommand(employees, "missing")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestChainOfCommandStopsOnCycle(t *testing.T) {
	_, err := ChainOfCommand([]Employee{emp("x", ref("a")), emp("a", ref("b")), emp("b", ref("a"))}, "x")
	var cycle *CycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, []string{"a", "b"}, cycle.Members)
}

func TestWouldCreateCycle(t *testing.T) {
	employees := []Employee{emp("1", nil), emp("2", ref("1")), emp("3", ref("2"))}
	assert.True(t, WouldCreateCycle(employees, "1", "3"))
	assert.True(t, WouldCreateCycle(employees, "2", "2"))
	assert.False(t, WouldCreateCycle(employees, "3", "1"))
	assert.False(t, WouldCreateCycle(employees, "1", ""))
	assert.False(t, WouldCreateCycle(employees, "1", "ghost"))
}

func TestRollupDepartments(t *testing.T) {
	employees := []Employee{
		{ID: "1", FirstName: "Ada", LastName: "L", Status: StatusActive, DepartmentID: ref("eng")},
		{ID: "2", FirstName: "Bob", LastName: "K", Status: StatusInactive, DepartmentID: ref("eng")},
		{ID: "3", FirstName: "Cy", LastName: "M", Status: StatusActive},
	}
	rows := RollupDepartments(employees, []Department{
		{ID: "eng", Name: "Engineering", HeadID: ref("1")},
		{ID: "ops", Name: "Operations", HeadID: ref("ghost")},
	})

	want := []DepartmentRollup{
		{ID: "eng", Name: "Engineering", HeadID: "1", Head: "Ada L", Headcount: 2, Active: 1, ActiveRate: 50},
		{ID: "ops", Name: "Operations", HeadID: "ghost", Head: UnknownManager},
		{Name: UnassignedDepartment, Headcount: 1, Active: 1, ActiveRate: 100},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rollup mismatch (-want +got):\n%s", diff)
	}
}
