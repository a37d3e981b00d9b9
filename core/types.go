// Package core defines the directed-graph substrate the rest of the
// assembler is built on: vertex identifiers, the two edge-value kinds
// (plain and weighted), and the fixed-capacity Graph container with its
// adjacency stores and degree cache.
//
// Graph is not safe for concurrent mutation from multiple goroutines: the
// assembly pipeline runs one algorithm at a time against one graph, and the
// only suspension points are the phase boundaries (build, prune, compress,
// tour) where a harness may reshuffle records between workers. See the
// compress and prune packages for the sharded, per-key reduction model used
// between those phases.
package core

import "errors"

// Sentinel errors for core graph operations. Callers branch with errors.Is;
// none of these are retried internally.
var (
	// ErrOutOfRange indicates a vertex index outside [0, N) was used where
	// the engine does not tolerate it (iterator creation, degree queries).
	ErrOutOfRange = errors.New("core: vertex index out of range")

	// ErrCapacityExceeded indicates a per-direction edge count would exceed
	// the 32767 hard cap.
	ErrCapacityExceeded = errors.New("core: edge capacity exceeded")

	// ErrBadCapacity indicates NewGraph was asked for a non-positive vertex
	// capacity.
	ErrBadCapacity = errors.New("core: graph capacity must be positive")
)

// VertexID is a non-negative index into a Graph's fixed vertex space. The
// sentinel NoVertex denotes "no vertex".
type VertexID int32

// NoVertex is the sentinel VertexID meaning "no vertex".
const NoVertex VertexID = -1

// MaxEdgesPerDirection is the hard per-vertex, per-direction edge cap
// (spec: invariant 6). Exceeding it is ErrCapacityExceeded.
const MaxEdgesPerDirection = 32767

// EdgeValue is the constraint satisfied by every edge-record kind the core
// can store. Destination identifies the sort key adjacency lists order on;
// WithDestination returns a copy pointed at another vertex (used to store
// the reverse, in-side copy of an edge).
type EdgeValue[E any] interface {
	Destination() VertexID
	WithDestination(VertexID) E
}

// PlainEdge is an unweighted outgoing edge: just a destination.
type PlainEdge struct {
	To VertexID
}

// Destination returns the edge's destination vertex.
func (e PlainEdge) Destination() VertexID { return e.To }

// WithDestination returns a copy of e pointed at a new destination.
func (e PlainEdge) WithDestination(to VertexID) PlainEdge { return PlainEdge{To: to} }

// WeightedEdge is an outgoing edge carrying a finite real weight (e.g. an
// observed read multiplicity).
type WeightedEdge struct {
	To     VertexID
	Weight float64
}

// Destination returns the edge's destination vertex.
func (e WeightedEdge) Destination() VertexID { return e.To }

// WithDestination returns a copy of e pointed at a new destination,
// preserving the weight.
func (e WeightedEdge) WithDestination(to VertexID) WeightedEdge {
	return WeightedEdge{To: to, Weight: e.Weight}
}
