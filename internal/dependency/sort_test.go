package dependency

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertOrdered checks that every dependency precedes its dependents and that
// every node appears exactly once.
func assertOrdered(t *testing.T, g *Graph, order []NodeID) {
	t.Helper()
	pos := make(map[NodeID]int, len(order))
	for i, id := range order {
		_, dup := pos[id]
		require.False(t, dup, "node %s appears more than once", id)
		pos[id] = i
	}
	require.Len(t, order, g.Len())
	for _, id := range g.Nodes() {
		for _, dep := range g.Dependencies(id) {
			assert.Less(t, pos[dep], pos[id], "%s must come before %s", dep, id)
		}
	}
}

func TestTopologicalSort_SimpleChain(t *testing.T) {
	g := New()
	g.Add("A")
	g.Add("B", "A")
	g.Add("C", "A", "B")

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []NodeID{"A", "B", "C"}, order)
}

func TestTopologicalSort_InsertionOrderIndependent(t *testing.T) {
	g := New()
	g.Add("C", "A", "B")
	g.Add("B", "A")
	g.Add("A")

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []NodeID{"A", "B", "C"}, order)
}

func TestTopologicalSort_Empty(t *testing.T) {
	order, err := New().TopologicalSort()
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestTopologicalSort_IncludesUndiscoveredDependencies(t *testing.T) {
	g := New()
	g.Add("scene/scene.dart", "constants.dart")

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []NodeID{"constants.dart", "scene/scene.dart"}, order)
}

func TestTopologicalSort_Deterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.Add("util/array.dart")
		g.Add("util/complex.dart")
		g.Add("constants.dart")
		g.Add("util/color.dart", "constants.dart")
		g.Add("util/bezier.dart", "util/array.dart", "util/complex.dart")
		g.Add("mobject/mobject.dart", "util/color.dart", "util/bezier.dart")
		g.Add("scene/scene.dart", "mobject/mobject.dart")
		return g
	}

	first, err := build().TopologicalSort()
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := build().TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assertOrdered(t, build(), first)
}

func TestTopologicalSort_LargeDiamond(t *testing.T) {
	g := New()
	g.Add("root")
	for i := 0; i < 50; i++ {
		mid := NodeID(fmt.Sprintf("mid/%02d", i))
		g.Add(mid, "root")
		g.Add("sink", mid)
	}

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assertOrdered(t, g, order)
	assert.Equal(t, NodeID("root"), order[0])
	assert.Equal(t, NodeID("sink"), order[len(order)-1])
}

func TestTopologicalSort_Cycles(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *Graph)
		cycle []NodeID
	}{
		{
			name: "self dependency",
			build: func(g *Graph) {
				g.Add("a", "a")
			},
			cycle: []NodeID{"a", "a"},
		},
		{
			name: "two node cycle",
			build: func(g *Graph) {
				g.Add("a", "b")
				g.Add("b", "a")
			},
			cycle: []NodeID{"a", "b", "a"},
		},
		{
			name: "cycle behind an acyclic prefix",
			build: func(g *Graph) {
				g.Add("base")
				g.Add("x", "base", "y")
				g.Add("y", "z")
				g.Add("z", "x")
			},
			cycle: []NodeID{"x", "y", "z", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			tt.build(g)

			order, err := g.TopologicalSort()
			require.Error(t, err)
			assert.Nil(t, order, "no partial order on failure")

			var cycleErr *CycleError
			require.True(t, errors.As(err, &cycleErr))
			assert.Equal(t, tt.cycle, cycleErr.Cycle)
			assert.Contains(t, err.Error(), "dependency cycle detected")
		})
	}
}

func TestFindCycle_Acyclic(t *testing.T) {
	g := New()
	g.Add("A")
	g.Add("B", "A")
	assert.Nil(t, g.FindCycle())
}

func TestCycleError_Message(t *testing.T) {
	err := &CycleError{Cycle: []NodeID{"a.dart", "b.dart", "a.dart"}}
	assert.Equal(t, "dependency cycle detected: a.dart -> b.dart -> a.dart", err.Error())
}
