// internal/dependency/graph.go
package dependency

// NodeID is the unique identifier for a node inside a dependency graph.
// For scanned source trees it is the file path relative to the scan root,
// always using forward slashes (e.g. "src/util/color.dart").
type NodeID string

// Node represents a single file together with its dependency list.
//
// A node can depend on zero or more other nodes. The graph is expected to be
// a Directed Acyclic Graph (DAG); cycles are only detected when sorting.
type Node struct {
	ID        NodeID
	DependsOn []NodeID
	// Discovered is true for nodes that were found on disk. Nodes that only
	// appear as somebody's dependency stay false.
	Discovered bool
}

// Graph answers dependency queries and produces a topological order. It is
// *not* thread-safe; callers must synchronise if they write concurrently.
type Graph struct {
	nodes map[NodeID]*Node
	// order keeps node IDs in first-seen order so sorting is deterministic.
	order []NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// Add registers id as a discovered node and appends deps to its dependency
// list. Calling Add repeatedly for the same id merges the dependencies, and
// deps that were never added themselves become nodes without dependencies.
func (g *Graph) Add(id NodeID, deps ...NodeID) {
	n := g.ensure(id)
	n.Discovered = true
	n.DependsOn = dedupe(append(n.DependsOn, deps...))
	for _, dep := range deps {
		g.ensure(dep)
	}
}

// Get returns a pointer to the stored node or nil if it does not exist.
func (g *Graph) Get(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all node IDs in the order they were first seen.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.order))
	copy(out, g.order)
	return out
}

// Undiscovered returns the IDs of nodes that are referenced as a dependency
// but were never added themselves, in first-seen order.
func (g *Graph) Undiscovered() []NodeID {
	var res []NodeID
	for _, id := range g.order {
		if !g.nodes[id].Discovered {
			res = append(res, id)
		}
	}
	return res
}

// Dependencies returns a slice of immediate dependency IDs for the given node.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		// Return a copy to avoid callers modifying internal slice.
		depsCopy := make([]NodeID, len(n.DependsOn))
		copy(depsCopy, n.DependsOn)
		return depsCopy
	}
	return nil
}

// Dependents returns all node IDs that have a direct dependency on the given
// node, in first-seen order. This is an O(n) walk over the graph.
func (g *Graph) Dependents(id NodeID) []NodeID {
	var res []NodeID
	for _, nid := range g.order {
		for _, dep := range g.nodes[nid].DependsOn {
			if dep == id {
				res = append(res, nid)
				break
			}
		}
	}
	return res
}

func (g *Graph) ensure(id NodeID) *Node {
	if g.nodes == nil {
		g.nodes = make(map[NodeID]*Node)
	}
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id}
	g.insert(n)
	return n
}

func (g *Graph) insert(n *Node) {
	if g.nodes == nil {
		g.nodes = make(map[NodeID]*Node)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
}

// dedupe drops repeated IDs while keeping the first occurrence.
func dedupe(ids []NodeID) []NodeID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[NodeID]struct{}, len(ids))
	out := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
