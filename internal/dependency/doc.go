// Package dependency provides a directed graph of file dependencies and the
// topological sort used to order files for concatenation or bundling.
//
// # Core Concepts
//
// Graph: A directed graph where every node is a file and every edge points
// from a file to one of the files it imports.
//
// Node: Represents a file in the dependency graph with:
//   - ID: Path relative to the scan root, forward slashes only
//   - DependsOn: Files this file imports, in order of first appearance
//   - Discovered: Whether the file was found on disk or only referenced
//
// # Building a Graph
//
// Add merges dependencies into a node, so a file can be registered in one
// call or in several. A dependency that was never added itself still becomes
// a node, which means a reference to a missing file shows up in the output
// instead of being silently dropped.
//
//	g := dependency.New()
//	g.Add("a.dart")
//	g.Add("b.dart", "a.dart")
//	g.Add("c.dart", "a.dart", "b.dart")
//
//	order, err := g.TopologicalSort()
//	// order: [a.dart b.dart c.dart]
//
// # Ordering
//
// TopologicalSort uses Kahn's algorithm. Among nodes that are ready at the
// same time, the one seen first wins, so the same input always yields the
// same order.
//
// # Cycles
//
// Cycles are not repaired. TopologicalSort fails with a *CycleError naming
// one concrete cycle and returns no partial order:
//
//	var cycleErr *dependency.CycleError
//	if errors.As(err, &cycleErr) {
//	    fmt.Println(cycleErr.Cycle) // [a.dart b.dart a.dart]
//	}
//
// # Thread Safety
//
// Graph is not safe for concurrent writes. The scanner builds it on a single
// goroutine and it is discarded after the order is written.
package dependency
