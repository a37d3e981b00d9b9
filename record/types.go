// Package record implements the Partition-Local Vertex Record (PLVR): the
// self-contained, serializable snapshot of one vertex and its edges that
// the coverage pruner and chain compressor exchange. Unlike core.Graph, a
// PLVR is a plain value processed start-to-finish by one worker at a time —
// it carries no live-iterator invalidation machinery, only the ordered
// edgesTo/edgesFrom multisets and the classification flags derived from
// them.
package record

import (
	"errors"

	"github.com/katalvlaran/brujin/core"
)

// Sentinel errors for PLVR operations. Callers branch with errors.Is.
var (
	// ErrCapacityExceeded indicates a per-direction edge count would
	// exceed core.MaxEdgesPerDirection.
	ErrCapacityExceeded = core.ErrCapacityExceeded

	// ErrIDMismatch indicates Merge was called with records of different
	// IDs (spec: PreconditionViolation).
	ErrIDMismatch = errors.New("record: merge requires matching vertex IDs")
)

// Flags holds the classification derived from a PLVR's edges.
//
//	IsBranch ⇔ out-degree to ≥2 distinct vertices, or in-degree from ≥2
//	IsSource ⇔ edgesFrom empty and edgesTo non-empty
//	IsSink   ⇔ edgesTo empty and edgesFrom non-empty
type Flags struct {
	IsBranch bool
	IsSource bool
	IsSink   bool
}

// bit positions for the wire flags byte (record/bytes.go).
const (
	flagBranch = 1 << 0
	flagSource = 1 << 1
	flagSink   = 1 << 2
)

// PLVR is a partition-local vertex record: an id, its ordered (ascending)
// edgesTo/edgesFrom multisets, derived classification flags, and an opaque
// payload extension point used by derived record kinds (e.g. a k-mer's
// sequence fragment).
type PLVR struct {
	ID             core.VertexID
	EdgesTo        []core.VertexID
	EdgesFrom      []core.VertexID
	Flags          Flags
	Payload        []byte
	allowMultiples bool
}

// New creates an empty PLVR for id. allowMultiples governs whether parallel
// edges (repeated destinations/origins) are permitted in edgesTo/edgesFrom.
func New(id core.VertexID, allowMultiples bool) *PLVR {
	return &PLVR{ID: id, allowMultiples: allowMultiples}
}

// AllowsMultiples reports the multi-edge policy this record was created
// with.
func (r *PLVR) AllowsMultiples() bool { return r.allowMultiples }
