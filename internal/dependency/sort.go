package dependency

import (
	"fmt"
	"strings"
)

// CycleError is returned by TopologicalSort when the graph is not a DAG.
type CycleError struct {
	// Cycle lists the nodes of one cycle, with the first node repeated at
	// the end (e.g. a -> b -> a).
	Cycle []NodeID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		parts[i] = string(id)
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(parts, " -> "))
}

// TopologicalSort returns every node of the graph such that each node comes
// after all of its dependencies.
//
// Kahn's algorithm is used. Nodes become ready in the order they were first
// seen, which makes the result stable for a given input. If the graph has a
// cycle no order is returned and the error is a *CycleError.
func (g *Graph) TopologicalSort() ([]NodeID, error) {
	pending := make(map[NodeID]int, len(g.nodes))
	dependents := make(map[NodeID][]NodeID, len(g.nodes))
	for _, id := range g.order {
		n := g.nodes[id]
		pending[id] = len(n.DependsOn)
		for _, dep := range n.DependsOn {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	queue := make([]NodeID, 0, len(g.order))
	for _, id := range g.order {
		if pending[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]NodeID, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)
		for _, dependent := range dependents[id] {
			pending[dependent]--
			if pending[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.order) {
		cycle := g.FindCycle()
		if cycle == nil {
			// Unreachable for a consistent graph; keep the error meaningful anyway.
			return nil, fmt.Errorf("topological sort stalled after %d of %d nodes", len(result), len(g.order))
		}
		return nil, &CycleError{Cycle: cycle}
	}
	return result, nil
}

// FindCycle returns one dependency cycle, or nil if the graph is acyclic.
// The returned path starts and ends with the same node.
func (g *Graph) FindCycle() []NodeID {
	const (
		white = iota
		grey
		black
	)
	color := make(map[NodeID]int, len(g.nodes))
	var stack []NodeID
	var cycle []NodeID

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		color[id] = grey
		stack = append(stack, id)
		for _, dep := range g.nodes[id].DependsOn {
			switch color[dep] {
			case grey:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == dep {
						cycle = append(cycle, stack[i:]...)
						cycle = append(cycle, dep)
						return true
					}
				}
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range g.order {
		if color[id] == white && visit(id) {
			return cycle
		}
	}
	return nil
}
