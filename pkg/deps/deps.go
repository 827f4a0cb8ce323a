// Package deps builds and classifies dependency-license graphs.
//
// A graph is produced by Resolve from a set of root packages and a registry
// adapter, classified against a deny-list, and handed to pkg/report for
// aggregation. Nodes are shared: a package reached through several parents
// appears exactly once, at its minimal depth.
package deps

import (
	"sync"

	"github.com/licenseward/licenseward/pkg/registry"
)

// Verdict is the classification of one package against the deny-list.
type Verdict int

const (
	// VerdictUnknown means the package declared no license identifiers or
	// its registry lookup failed.
	VerdictUnknown Verdict = iota
	// VerdictPass means no declared license is on the deny-list.
	VerdictPass
	// VerdictFail means at least one declared license is on the deny-list.
	VerdictFail
)

// String returns the lowercase verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Node is one package in the resolved graph. Nodes are created during
// traversal and never modified after classification.
type Node struct {
	registry.Identity

	Licenses []string            // Declared license identifiers; empty means unknown
	Requires []registry.Identity // Direct dependencies
	Verdict  Verdict
	Depth    int   // Minimal distance from a root; roots are 0
	Err      error // Registry lookup failure, if any
}

// Graph owns every node reachable from the root set. The insert path is
// mutex-guarded so that concurrent discovery of the same package from
// different branches still yields a single node.
type Graph struct {
	mu    sync.Mutex
	nodes map[registry.Identity]*Node
	order []registry.Identity // insertion order, for deterministic iteration
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[registry.Identity]*Node)}
}

// insertIfAbsent adds n unless a node with the same identity already exists.
// It reports whether n was inserted; when it was not, the earlier node wins
// and keeps its (smaller or equal) depth.
func (g *Graph) insertIfAbsent(n *Node) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[n.Identity]; ok {
		return false
	}
	g.nodes[n.Identity] = n
	g.order = append(g.order, n.Identity)
	return true
}

// Node returns the node with the given identity, if present.
func (g *Graph) Node(id registry.Identity) (*Node, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order (breadth-first discovery
// order), which is stable for a given root set and registry.
func (g *Graph) Nodes() []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// Classify assigns every node its verdict against the deny-list. Lookup
// failures and empty license lists stay VerdictUnknown.
func (g *Graph) Classify(deny DenyList) {
	for _, n := range g.Nodes() {
		n.Verdict = Classify(n.Licenses, deny)
	}
}

// FailCount returns the number of nodes classified VerdictFail. This is the
// check command's exit code.
func (g *Graph) FailCount() int {
	count := 0
	for _, n := range g.Nodes() {
		if n.Verdict == VerdictFail {
			count++
		}
	}
	return count
}
