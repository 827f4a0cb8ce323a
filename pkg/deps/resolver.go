package deps

import (
	"context"

	"github.com/licenseward/licenseward/pkg/pool"
	"github.com/licenseward/licenseward/pkg/registry"
)

// Options configures graph resolution.
type Options struct {
	// Recursive expands transitive dependencies. When false only the
	// roots themselves are looked up; their dependency lists are recorded
	// but never queried.
	Recursive bool

	// Workers bounds the number of concurrent registry lookups.
	// Clamped to [1, 32]; 1 (the default) is fully sequential.
	Workers int

	// Logger receives progress/diagnostic messages. Optional.
	Logger func(format string, args ...any)
}

func (o Options) withDefaults() Options {
	opts := o
	if opts.Workers == 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Resolve expands the root set into a dependency graph using the adapter.
//
// Traversal is breadth-first over an explicit frontier: each depth level's
// lookups are dispatched to the worker pool, results are collected in
// submission order, and the next frontier is built from the newly inserted
// nodes' requirements. An identity already in the graph (or already queued)
// is never looked up again, which both breaks cycles and gives every node
// its minimal depth.
//
// A lookup failure does not abort resolution: the package gets a node with
// no license data and the error attached, and its siblings proceed.
func Resolve(ctx context.Context, roots []registry.Identity, adapter registry.Adapter, opts Options) *Graph {
	opts = opts.withDefaults()

	g := NewGraph()
	queued := make(map[registry.Identity]struct{}, len(roots))

	var frontier []registry.Identity
	for _, id := range roots {
		if _, ok := queued[id]; ok {
			continue
		}
		queued[id] = struct{}{}
		frontier = append(frontier, id)
	}

	for depth := 0; len(frontier) > 0; depth++ {
		tasks := make([]pool.Task[*registry.Package], len(frontier))
		for i, id := range frontier {
			tasks[i] = func(ctx context.Context) (*registry.Package, error) {
				return adapter.Lookup(ctx, id.Name, id.Version)
			}
		}
		results := pool.Run(ctx, tasks, opts.Workers)

		var next []registry.Identity
		for i, res := range results {
			node := &Node{Identity: frontier[i], Depth: depth}
			if res.Err != nil {
				node.Err = res.Err
				opts.Logger("lookup failed: %s: %v", frontier[i], res.Err)
			} else {
				pkg := res.Value
				node.Identity = registry.Identity{Name: pkg.Name, Version: pkg.Version}
				node.Licenses = pkg.Licenses
				node.Requires = pkg.Requires
			}

			if !g.insertIfAbsent(node) {
				// Reached earlier via another parent; already expanded.
				continue
			}
			if !opts.Recursive {
				continue
			}
			for _, req := range node.Requires {
				if _, ok := queued[req]; ok {
					continue
				}
				queued[req] = struct{}{}
				next = append(next, req)
			}
		}

		frontier = next
	}

	return g
}
