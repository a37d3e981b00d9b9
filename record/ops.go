package record

import "github.com/katalvlaran/brujin/core"

// insertSorted inserts v into the ascending multiset s, honoring the
// allowMultiples policy (duplicate is a no-op when disabled; otherwise the
// new entry is appended after any existing equal run, preserving insertion
// order among duplicates). Mirrors core.adjacencyList.insert's policy so
// both data structures share one sorted-insert contract.
func insertSorted(s []core.VertexID, v core.VertexID, allowMultiples bool) ([]core.VertexID, bool) {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := (lo + hi) / 2
		if s[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	// lo is the first index with s[lo] >= v.
	if lo < len(s) && s[lo] == v {
		if !allowMultiples {
			return s, false
		}
		// Advance past the whole equal run to keep duplicates stable.
		for lo < len(s) && s[lo] == v {
			lo++
		}
	}

	s = append(s, 0)
	copy(s[lo+1:], s[lo:len(s)-1])
	s[lo] = v

	return s, true
}

// removeAllOccurrences deletes every occurrence of v from the ascending
// multiset s. This module resolves the spec's remove-all-vs-remove-one
// ambiguity in favor of "remove all parallels" at every call site,
// matching core.adjacencyList.removeAllTo.
func removeAllOccurrences(s []core.VertexID, v core.VertexID) ([]core.VertexID, int) {
	out := s[:0]
	removed := 0
	for _, x := range s {
		if x == v {
			removed++
			continue
		}
		out = append(out, x)
	}
	return out, removed
}

func distinctCount(s []core.VertexID) int {
	n := 0
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			n++
		}
	}
	return n
}

// refreshFlags recomputes Flags from the current edgesTo/edgesFrom
// multisets (spec invariants 3-4).
func (r *PLVR) refreshFlags() {
	r.Flags.IsBranch = distinctCount(r.EdgesTo) >= 2 || distinctCount(r.EdgesFrom) >= 2
	r.Flags.IsSource = len(r.EdgesFrom) == 0 && len(r.EdgesTo) > 0
	r.Flags.IsSink = len(r.EdgesTo) == 0 && len(r.EdgesFrom) > 0
}

// AddEdgeTo inserts u into edgesTo and refreshes classification flags.
func (r *PLVR) AddEdgeTo(u core.VertexID) error {
	if len(r.EdgesTo) >= core.MaxEdgesPerDirection {
		return ErrCapacityExceeded
	}
	r.EdgesTo, _ = insertSorted(r.EdgesTo, u, r.allowMultiples)
	r.refreshFlags()
	return nil
}

// AddEdgeFrom inserts u into edgesFrom and refreshes classification flags.
func (r *PLVR) AddEdgeFrom(u core.VertexID) error {
	if len(r.EdgesFrom) >= core.MaxEdgesPerDirection {
		return ErrCapacityExceeded
	}
	r.EdgesFrom, _ = insertSorted(r.EdgesFrom, u, r.allowMultiples)
	r.refreshFlags()
	return nil
}

// RemoveEdgeTo deletes every edgesTo occurrence of u and refreshes flags.
// Removing a non-existent edge is a no-op (returns 0).
func (r *PLVR) RemoveEdgeTo(u core.VertexID) int {
	var removed int
	r.EdgesTo, removed = removeAllOccurrences(r.EdgesTo, u)
	r.refreshFlags()
	return removed
}

// RemoveEdgeFrom deletes every edgesFrom occurrence of u and refreshes
// flags. Removing a non-existent edge is a no-op (returns 0).
func (r *PLVR) RemoveEdgeFrom(u core.VertexID) int {
	var removed int
	r.EdgesFrom, removed = removeAllOccurrences(r.EdgesFrom, u)
	r.refreshFlags()
	return removed
}

// Merge unions other's edges into r. Requires other.ID == r.ID.
func (r *PLVR) Merge(other *PLVR) error {
	if other.ID != r.ID {
		return ErrIDMismatch
	}

	multi := r.allowMultiples || other.allowMultiples
	for _, v := range other.EdgesTo {
		r.EdgesTo, _ = insertSorted(r.EdgesTo, v, multi)
	}
	for _, v := range other.EdgesFrom {
		r.EdgesFrom, _ = insertSorted(r.EdgesFrom, v, multi)
	}
	r.allowMultiples = multi
	r.refreshFlags()

	return nil
}

// Clone returns a deep copy of r.
func (r *PLVR) Clone() *PLVR {
	out := &PLVR{
		ID:             r.ID,
		Flags:          r.Flags,
		allowMultiples: r.allowMultiples,
	}
	out.EdgesTo = append([]core.VertexID(nil), r.EdgesTo...)
	out.EdgesFrom = append([]core.VertexID(nil), r.EdgesFrom...)
	out.Payload = append([]byte(nil), r.Payload...)
	return out
}
