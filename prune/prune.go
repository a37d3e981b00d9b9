// Package prune implements coverage-based error pruning (spec §4.5): given
// an expected coverage c, a record's edge groups below the derived minimum
// mc = ceil(c/2) are removed as likely sequencing errors, and a record left
// with no surviving evidence on either side is rejected outright.
package prune

import (
	"errors"

	"github.com/katalvlaran/brujin/record"
)

// ErrNonPositiveCoverage indicates a caller requested pruning with a
// non-positive expected coverage (spec §7 PreconditionViolation: "coverage
// non-positive when pruning requested").
var ErrNonPositiveCoverage = errors.New("prune: coverage must be positive")

// MinGroupSize computes mc = ceil(coverage/2), the minimum group size a set
// of parallel edges must reach to survive pruning.
func MinGroupSize(coverage int) int {
	return (coverage + 1) / 2
}

// Record prunes one record's edgesTo and edgesFrom groups independently
// against mc = MinGroupSize(coverage): any group whose size is below mc is
// removed in full. It reports (pruned, kept) where kept is false when
// neither side has any edges left after pruning, in which case the caller
// must omit the record from its output (spec §4.5: "approximates no
// corroborating evidence for this vertex").
func Record(r *record.PLVR, coverage int) (pruned *record.PLVR, kept bool, err error) {
	if coverage <= 0 {
		return nil, false, ErrNonPositiveCoverage
	}
	mc := MinGroupSize(coverage)

	out := r.Clone()
	for _, g := range out.EdgesToGroups() {
		if g.Count < mc {
			out.RemoveEdgeTo(g.Value)
		}
	}
	for _, g := range out.EdgesFromGroups() {
		if g.Count < mc {
			out.RemoveEdgeFrom(g.Value)
		}
	}

	if len(out.EdgesTo) == 0 && len(out.EdgesFrom) == 0 {
		return nil, false, nil
	}
	return out, true, nil
}

// Batch prunes every record in records, returning only the survivors in
// their original relative order. The pruner runs after graph building has
// merged each vertex's evidence and before chain compression (spec §4.5:
// "operates on fully merged records").
func Batch(records []*record.PLVR, coverage int) ([]*record.PLVR, error) {
	out := make([]*record.PLVR, 0, len(records))
	for _, r := range records {
		p, kept, err := Record(r, coverage)
		if err != nil {
			return nil, err
		}
		if kept {
			out = append(out, p)
		}
	}
	return out, nil
}
