// Package compress implements randomized pairwise chain compression
// (spec §4.4): each non-branch record independently draws a pairing key
// (its own id, "head", or its successor's id, "tail"), a harness groups
// records by key, and at most one merge is performed per key per round.
// Iterating (pair -> merge) to a fixpoint collapses every maximal chain.
//
// All mutable state for one compression invocation — the seeded RNG, the
// silent-round counter — lives in values created per call (Run/RunToFixpoint
// parameters, or RunToFixpoint's local counters), never in package-level
// variables, so concurrent callers never share state (spec §9 design note:
// "global counters ... must be request-scoped").
package compress

import (
	"errors"

	"github.com/katalvlaran/brujin/core"
	"github.com/katalvlaran/brujin/record"
)

// ErrBranchRecord indicates a record flagged isBranch was passed to the
// compressor, which operates only on non-branch records (spec §4.4, §7
// InvalidInput).
var ErrBranchRecord = errors.New("compress: branch record is not eligible for chain compression")

// Rand is the minimal RNG surface the compressor needs, satisfied by
// *math/rand.Rand. Accepting an interface (rather than *rand.Rand
// directly) lets each shard own an independently seeded source without
// this package importing math/rand's concrete type into its API.
type Rand interface {
	Intn(n int) int
}

// PairingKey computes r's pairing key for one compression round: a fair
// coin selects either r.ID ("head") or r's unique successor's id ("tail").
// A sink (no successor) always keys on its own id. Branch records are
// rejected with ErrBranchRecord.
func PairingKey(rng Rand, r *record.PLVR) (core.VertexID, error) {
	if r.Flags.IsBranch {
		return core.NoVertex, ErrBranchRecord
	}
	if len(r.EdgesTo) == 0 {
		return r.ID, nil
	}
	if rng.Intn(2) == 0 {
		return r.ID, nil
	}
	return r.EdgesTo[0], nil
}

// Run performs one compression round over records: every record draws a
// pairing key, records are grouped by key, and each group of exactly two
// agreeing records (the record whose id equals the key, and its unique
// predecessor) is merged via record.CompressChain. Groups of one are
// re-emitted unchanged; merges is the number of successful merges this
// round (a round with merges == 0 is "silent", spec §4.4).
func Run(records []*record.PLVR, rng Rand, opts record.CompressChainOptions) ([]*record.PLVR, int, error) {
	for _, r := range records {
		if r.Flags.IsBranch {
			return nil, 0, ErrBranchRecord
		}
	}

	groups := make(map[core.VertexID][]*record.PLVR, len(records))
	for _, r := range records {
		key, err := PairingKey(rng, r)
		if err != nil {
			return nil, 0, err
		}
		groups[key] = append(groups[key], r)
	}

	return mergeGroups(groups, opts)
}

// mergeGroups resolves each key's group (spec §4.4: at most two records
// arrive at any key) into either a single merged record, or the group's
// members re-emitted unmerged when they don't form an agreeing u->w pair.
func mergeGroups(groups map[core.VertexID][]*record.PLVR, opts record.CompressChainOptions) ([]*record.PLVR, int, error) {
	var result []*record.PLVR
	merges := 0

	for key, group := range groups {
		switch len(group) {
		case 1:
			result = append(result, group[0])
		case 2:
			head, tail := resolveHeadTail(key, group)
			if head == nil || tail == nil {
				result = append(result, group...)
				continue
			}
			merged, err := record.CompressChain(tail, head, opts)
			if err != nil {
				// Precondition not satisfied this round (e.g. w is no
				// longer a unique-successor chain link) -- leave both
				// records for a later round instead of failing the batch.
				result = append(result, group...)
				continue
			}
			result = append(result, merged)
			merges++
		default:
			// More than two landed on one key: can only happen if a
			// caller violated the non-branch/unique-predecessor
			// precondition upstream. Re-emit unmerged rather than guess.
			result = append(result, group...)
		}
	}

	return result, merges, nil
}

// resolveHeadTail splits a 2-member group into (head, tail) where head's
// id equals key and tail's unique successor is key. Returns (nil, nil) if
// the group does not have exactly this shape.
func resolveHeadTail(key core.VertexID, group []*record.PLVR) (head, tail *record.PLVR) {
	for _, r := range group {
		if r.ID == key {
			head = r
		} else if len(r.EdgesTo) > 0 && r.EdgesTo[0] == key {
			tail = r
		}
	}
	return head, tail
}
