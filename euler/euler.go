// Package euler extracts Euler tours from a core.Graph without mutating it
// (spec §4.6). The walk is a Hierholzer traversal driven by a capacity-sized
// table of borrowed core.Iterator handles, one per vertex, adapted from the
// half-edge/twin-pointer technique in lvlath's undirected tsp.EulerianCircuit
// to this engine's directed, generic adjacency store: each vertex keeps a
// single iterator across the whole extraction, so an edge already consumed
// by one trace is never offered to a later one.
package euler

import (
	"container/list"

	"github.com/katalvlaran/brujin/core"
)

// ErrOutOfRange surfaces core.ErrOutOfRange from a malformed graph capacity;
// kept as its own name so callers needn't import core just to branch on it.
var ErrOutOfRange = core.ErrOutOfRange

// Path is one maximal tour in vertex-index order, held as a deque (spec §4.6:
// "each a deque of vertex indices in tour order").
type Path struct {
	vertices *list.List
}

// Len returns the number of vertices in the path.
func (p *Path) Len() int { return p.vertices.Len() }

// Vertices materializes the path as a slice in tour order.
func (p *Path) Vertices() []core.VertexID {
	out := make([]core.VertexID, 0, p.vertices.Len())
	for e := p.vertices.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(core.VertexID))
	}
	return out
}

// ExtractTours walks every weakly-connected component of g with at least one
// out-edge and returns the resulting set of maximal paths. g is never
// mutated: each vertex's out-iterator is advanced at most once per edge and
// shared across every trace that visits it, so the traversal is equivalent
// to marking edges used without touching g itself.
func ExtractTours[E core.EdgeValue[E]](g *core.Graph[E]) ([]*Path, error) {
	n := g.Capacity()
	iters := make([]*core.Iterator[E], n)

	getIter := func(v core.VertexID) (*core.Iterator[E], error) {
		if iters[v] == nil {
			it, err := g.NewOutIterator(v)
			if err != nil {
				return nil, err
			}
			iters[v] = it
		}
		return iters[v], nil
	}
	defer func() {
		for _, it := range iters {
			if it != nil {
				it.Close()
			}
		}
	}()

	var paths []*Path
	for s := core.VertexID(0); int(s) < n; s++ {
		deg, err := g.OutDegree(s)
		if err != nil {
			return nil, err
		}
		if deg == 0 {
			continue
		}

		path, err := traceComponent(s, getIter)
		if err != nil {
			return nil, err
		}
		if path.Len() <= 1 {
			// s's iterator was already fully drained by an earlier trace;
			// not a new path.
			continue
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// traceComponent runs steps 1-3 of the extraction algorithm starting at s: an
// explicit stack of in-progress vertices stands in for recursion (per design
// note: avoid recursion on a traversal whose depth is bounded only by edge
// count), and each vertex popped as stuck is prepended to the front of the
// path so a directed cycle comes out in forward order rather than reversed.
func traceComponent[E core.EdgeValue[E]](s core.VertexID, getIter func(core.VertexID) (*core.Iterator[E], error)) (*Path, error) {
	stack := []core.VertexID{s}
	path := list.New()

	for len(stack) > 0 {
		u := stack[len(stack)-1]

		it, err := getIter(u)
		if err != nil {
			return nil, err
		}

		if it.Next() {
			val, _ := it.Value()
			stack = append(stack, val.Destination())
			continue
		}

		stack = stack[:len(stack)-1]
		path.PushFront(u)
	}

	return &Path{vertices: path}, nil
}

// IsBalanced reports whether every vertex of g satisfies in-degree =
// out-degree, the precondition for ExtractTours to produce genuine closed
// tours rather than best-effort walks (spec §7: "callers that need
// validation must check degrees themselves"). This helper is additive: it is
// not required by ExtractTours and exists purely for callers who want the
// check.
func IsBalanced[E core.EdgeValue[E]](g *core.Graph[E]) (bool, error) {
	for v := core.VertexID(0); int(v) < g.Capacity(); v++ {
		out, err := g.OutDegree(v)
		if err != nil {
			return false, err
		}
		in, err := g.InDegree(v)
		if err != nil {
			return false, err
		}
		if in != out {
			return false, nil
		}
	}
	return true, nil
}
