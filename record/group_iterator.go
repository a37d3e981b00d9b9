package record

import "github.com/katalvlaran/brujin/core"

// Group is a run of consecutive same-valued entries from an ascending
// multiset (edgesTo or edgesFrom).
type Group struct {
	Value core.VertexID
	Count int
}

// GroupsOf batches consecutive equal entries of an ascending multiset into
// Groups. Because edgesTo/edgesFrom are kept sorted, equal entries are
// always contiguous (spec §4.1's group-iterator guarantee, reused here for
// PLVR's own multisets).
func GroupsOf(s []core.VertexID) []Group {
	var out []Group
	for _, v := range s {
		if n := len(out); n > 0 && out[n-1].Value == v {
			out[n-1].Count++
			continue
		}
		out = append(out, Group{Value: v, Count: 1})
	}
	return out
}

// EdgesToGroups returns the destination groups of r.EdgesTo.
func (r *PLVR) EdgesToGroups() []Group { return GroupsOf(r.EdgesTo) }

// EdgesFromGroups returns the origin groups of r.EdgesFrom.
func (r *PLVR) EdgesFromGroups() []Group { return GroupsOf(r.EdgesFrom) }
