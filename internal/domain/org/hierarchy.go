package org

import "hrerp/internal/domain/rollup"

// Node is one employee placed in the org chart.
type Node struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Status         string  `json:"status"`
	DepartmentID   string  `json:"departmentId,omitempty"`
	Department     string  `json:"department"`
	ManagerID      string  `json:"managerId,omitempty"`
	Manager        string  `json:"manager,omitempty"`
	ManagerMissing bool    `json:"managerMissing,omitempty"`
	Depth          int     `json:"depth"`
	Span           int     `json:"spanOfControl"`
	Headcount      int     `json:"headcount"`
	Reports        []*Node `json:"reports"`
}

type Chart struct {
	Roots []*Node `json:"roots"`
	index map[string]*Node
}

// Find returns a placed node.
func (c *Chart) Find(id string) (*Node, bool) {
	n, ok := c.index[id]
	return n, ok
}

// Size is the number of placed nodes.
func (c *Chart) Size() int {
	return len(c.index)
}

// Walk visits placed nodes depth-first in chart order until fn returns false.
func (c *Chart) Walk(fn func(*Node) bool) {
	stack := make([]*Node, 0, len(c.Roots))
	for i := len(c.Roots) - 1; i >= 0; i-- {
		stack = append(stack, c.Roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		for i := len(n.Reports) - 1; i >= 0; i-- {
			stack = append(stack, n.Reports[i])
		}
	}
}

// BuildChart arranges a flat employee snapshot into a forest. Roots are
// employees without a manager or whose manager is absent from the snapshot.
// Reports keep input order. Employees that cannot be reached from any root
// are left out and reported through a *CycleError alongside the partial
// chart. Repeated ids after the first are ignored.
func BuildChart(employees []Employee, departments []Department) (*Chart, error) {
	deptNames := make(map[string]string, len(departments))
	for _, d := range departments {
		deptNames[d.ID] = d.Name
	}

	all := make(map[string]*Node, len(employees))
	order := make([]*Node, 0, len(employees))
	for _, e := range employees {
		if _, dup := all[e.ID]; dup {
			continue
		}
		n := newNode(e, deptNames)
		all[e.ID] = n
		order = append(order, n)
	}

	chart := &Chart{Roots: []*Node{}, index: make(map[string]*Node, len(order))}
	children := make(map[string][]*Node)
	for _, n := range order {
		if n.ManagerID == "" {
			chart.Roots = append(chart.Roots, n)
			continue
		}
		manager, ok := all[n.ManagerID]
		if !ok {
			n.ManagerMissing = true
			n.Manager = UnknownManager
			chart.Roots = append(chart.Roots, n)
			continue
		}
		n.Manager = manager.Name
		children[n.ManagerID] = append(children[n.ManagerID], n)
	}

	visited := make([]*Node, 0, len(order))
	queue := append([]*Node(nil), chart.Roots...)
	for _, r := range chart.Roots {
		chart.index[r.ID] = r
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visited = append(visited, n)
		for _, child := range children[n.ID] {
			if _, placed := chart.index[child.ID]; placed {
				continue
			}
			chart.index[child.ID] = child
			child.Depth = n.Depth + 1
			n.Reports = append(n.Reports, child)
			queue = append(queue, child)
		}
		n.Span = len(n.Reports)
	}
	for i := len(visited) - 1; i >= 0; i-- {
		n := visited[i]
		for _, child := range n.Reports {
			n.Headcount += 1 + child.Headcount
		}
	}

	if len(chart.index) == len(order) {
		return chart, nil
	}
	return chart, cycleError(order, all, chart.index)
}

func newNode(e Employee, deptNames map[string]string) *Node {
	n := &Node{
		ID:           e.ID,
		Name:         e.FullName(),
		Position:     e.Position,
		Status:       e.Status,
		DepartmentID: e.departmentRef(),
		ManagerID:    e.managerRef(),
		Department:   UnassignedDepartment,
		Reports:      []*Node{},
	}
	if name, ok := deptNames[n.DepartmentID]; ok && n.DepartmentID != "" {
		n.Department = name
	}
	return n
}

// cycleError classifies unplaced nodes. Every unplaced node has a manager in
// the snapshot that is itself unplaced, so following managers always ends on
// a loop.
func cycleError(order []*Node, all, placed map[string]*Node) *CycleError {
	const (
		pending = iota
		walking
		done
	)
	state := make(map[string]int, len(order))
	members := make(map[string]bool)
	for _, n := range order {
		if _, ok := placed[n.ID]; ok || state[n.ID] == done {
			continue
		}
		path := make([]string, 0, 4)
		for cur := n.ID; ; cur = all[cur].ManagerID {
			if _, ok := placed[cur]; ok || state[cur] == done {
				break
			}
			if state[cur] == walking {
				for i := len(path) - 1; i >= 0; i-- {
					members[path[i]] = true
					if path[i] == cur {
						break
					}
				}
				break
			}
			state[cur] = walking
			path = append(path, cur)
		}
		for _, id := range path {
			state[id] = done
		}
	}

	out := &CycleError{Members: []string{}, Unplaced: []string{}}
	for _, n := range order {
		if _, ok := placed[n.ID]; ok {
			continue
		}
		if members[n.ID] {
			out.Members = append(out.Members, n.ID)
		} else {
			out.Unplaced = append(out.Unplaced, n.ID)
		}
	}
	return out
}

// Levels returns the chart depth of every placed employee.
func Levels(employees []Employee) (map[string]int, error) {
	chart, err := BuildChart(employees, nil)
	levels := make(map[string]int, chart.Size())
	chart.Walk(func(n *Node) bool {
		levels[n.ID] = n.Depth
		return true
	})
	return levels, err
}

// ChainOfCommand returns the managers above id, nearest first. The walk stops
// at a root or at a manager missing from the snapshot.
func ChainOfCommand(employees []Employee, id string) ([]Employee, error) {
	byID := make(map[string]Employee, len(employees))
	for _, e := range employees {
		if _, dup := byID[e.ID]; !dup {
			byID[e.ID] = e
		}
	}
	current, ok := byID[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}

	path := []string{id}
	position := map[string]int{id: 0}
	chain := make([]Employee, 0)
	for ref := current.managerRef(); ref != ""; ref = current.managerRef() {
		manager, ok := byID[ref]
		if !ok {
			break
		}
		if at, seen := position[ref]; seen {
			return chain, &CycleError{Members: append([]string(nil), path[at:]...), Unplaced: []string{}}
		}
		position[ref] = len(path)
		path = append(path, ref)
		chain = append(chain, manager)
		current = manager
	}
	return chain, nil
}

// WouldCreateCycle reports whether giving employeeID the manager managerID
// makes employeeID its own transitive manager.
func WouldCreateCycle(employees []Employee, employeeID, managerID string) bool {
	if managerID == "" {
		return false
	}
	if managerID == employeeID {
		return true
	}
	byID := make(map[string]Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}
	seen := map[string]bool{}
	for ref := managerID; ref != "" && !seen[ref]; {
		if ref == employeeID {
			return true
		}
		seen[ref] = true
		manager, ok := byID[ref]
		if !ok {
			return false
		}
		ref = manager.managerRef()
	}
	return false
}

type DepartmentRollup struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	HeadID     string `json:"headId,omitempty"`
	Head       string `json:"head,omitempty"`
	Headcount  int    `json:"headcount"`
	Active     int    `json:"active"`
	ActiveRate int    `json:"activeRate"`
}

// RollupDepartments counts employees per department in department order.
// Employees whose department is unset or missing are grouped under an
// "Unassigned" row placed last, which is omitted when empty.
func RollupDepartments(employees []Employee, departments []Department) []DepartmentRollup {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}

	rows := make([]DepartmentRollup, 0, len(departments)+1)
	index := make(map[string]int, len(departments))
	for _, d := range departments {
		if _, dup := index[d.ID]; dup {
			continue
		}
		row := DepartmentRollup{ID: d.ID, Name: d.Name}
		if d.HeadID != nil && *d.HeadID != "" {
			row.HeadID = *d.HeadID
			row.Head = UnknownManager
			if name, ok := names[row.HeadID]; ok {
				row.Head = name
			}
		}
		index[d.ID] = len(rows)
		rows = append(rows, row)
	}

	unassigned := DepartmentRollup{Name: UnassignedDepartment}
	for _, e := range employees {
		row := &unassigned
		if i, ok := index[e.departmentRef()]; ok {
			row = &rows[i]
		}
		row.Headcount++
		if e.Active() {
			row.Active++
		}
	}
	if unassigned.Headcount > 0 {
		rows = append(rows, unassigned)
	}
	for i := range rows {
		rows[i].ActiveRate = rollup.Percentage(rows[i].Active, rows[i].Headcount)
	}
	return rows
}
