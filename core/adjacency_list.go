package core

// edgeNode is one link in a per-vertex, destination-sorted singly linked
// adjacency chain.
type edgeNode[E EdgeValue[E]] struct {
	val  E
	next *edgeNode[E]
}

// adjacencyList is an insertion-free, destination-sorted singly linked
// chain of edges for one vertex in one direction (out-edges or in-edges),
// together with the table of borrowed Iterator handles currently observing
// it. Handles are non-owning: the list notifies every live handle before
// unlinking a node it points at, so no iterator ever yields a removed edge.
type adjacencyList[E EdgeValue[E]] struct {
	head           *edgeNode[E]
	size           int
	allowMultiples bool
	handles        []*Iterator[E]
}

func newAdjacencyList[E EdgeValue[E]](allowMultiples bool) *adjacencyList[E] {
	return &adjacencyList[E]{allowMultiples: allowMultiples}
}

// registerIterator compacts Closed handles out of the table, then adds it.
// Only Closed handles are compacted: an iterator abandoned without Close
// keeps its slot.
func (l *adjacencyList[E]) registerIterator(it *Iterator[E]) {
	l.compact()
	l.handles = append(l.handles, it)
}

func (l *adjacencyList[E]) compact() {
	if len(l.handles) == 0 {
		return
	}
	live := l.handles[:0]
	for _, h := range l.handles {
		if h != nil && !h.released {
			live = append(live, h)
		}
	}
	l.handles = live
}

// insert scans to the first entry with Destination() >= e.Destination().
// With multiples disabled, an equal destination is a no-op (false, nil).
// With multiples enabled, the new edge is inserted just before the first
// strictly-greater entry, i.e. after any existing equal run (stable order).
func (l *adjacencyList[E]) insert(e E) (inserted bool, err error) {
	dst := e.Destination()

	var prev *edgeNode[E]
	cur := l.head
	for cur != nil && cur.val.Destination() < dst {
		prev = cur
		cur = cur.next
	}

	if cur != nil && cur.val.Destination() == dst {
		if !l.allowMultiples {
			return false, nil
		}
		// Skip past the whole run of equal destinations to land just
		// before the first strictly-greater entry.
		for cur != nil && cur.val.Destination() == dst {
			prev = cur
			cur = cur.next
		}
	}

	if l.size >= MaxEdgesPerDirection {
		return false, ErrCapacityExceeded
	}

	node := &edgeNode[E]{val: e, next: cur}
	if prev == nil {
		l.head = node
	} else {
		prev.next = node
	}
	l.size++

	return true, nil
}

// removeAllTo deletes every node whose destination equals dst. Before
// unlinking each node, every live iterator is notified so it can advance
// past the node being removed. This module resolves the "remove all
// parallels vs. remove one parallel" ambiguity (spec design notes) in
// favor of "remove all parallels" for every adjacency-store call site.
func (l *adjacencyList[E]) removeAllTo(dst VertexID) int {
	l.compact()

	removed := 0
	var prev *edgeNode[E]
	cur := l.head
	for cur != nil {
		if cur.val.Destination() != dst {
			prev = cur
			cur = cur.next
			continue
		}

		doomed := cur
		successor := cur.next
		for _, h := range l.handles {
			h.advanceIfAt(doomed, successor)
		}

		if prev == nil {
			l.head = successor
		} else {
			prev.next = successor
		}
		cur = successor
		l.size--
		removed++
	}

	return removed
}

// singles returns every edge value in ascending destination order.
func (l *adjacencyList[E]) singles() []E {
	out := make([]E, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.val)
	}
	return out
}

// groups returns batches of consecutive edges sharing a destination, in
// ascending order. Because the chain is kept sorted, equal destinations
// are always contiguous.
func (l *adjacencyList[E]) groups() [][]E {
	var out [][]E
	var cur []E
	for n := l.head; n != nil; n = n.next {
		if len(cur) > 0 && cur[len(cur)-1].Destination() != n.val.Destination() {
			out = append(out, cur)
			cur = nil
		}
		cur = append(cur, n.val)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// distinctDestinations reports how many distinct destinations appear in
// the chain (used to recompute isBranch-style classification).
func (l *adjacencyList[E]) distinctDestinations() int {
	n := 0
	var last VertexID
	first := true
	for node := l.head; node != nil; node = node.next {
		d := node.val.Destination()
		if first || d != last {
			n++
			last = d
			first = false
		}
	}
	return n
}

// Iterator is a borrowed, non-owning cursor over an adjacencyList. It must
// be released with Close once the caller is done with it so the list's
// handle table can reclaim the slot: the table is compacted when an
// iterator is registered or edges are removed, and only Closed handles are
// dropped, so iterators that are never Closed stay in the table.
type Iterator[E EdgeValue[E]] struct {
	list     *adjacencyList[E]
	node     *edgeNode[E]
	started  bool
	released bool
}

func newIterator[E EdgeValue[E]](l *adjacencyList[E]) *Iterator[E] {
	it := &Iterator[E]{list: l}
	l.registerIterator(it)
	return it
}

// Next advances the iterator to the next edge and reports whether one was
// available. The first call positions the iterator at the first edge.
func (it *Iterator[E]) Next() bool {
	if !it.started {
		it.started = true
		it.node = it.list.head
	} else if it.node != nil {
		it.node = it.node.next
	}
	return it.node != nil
}

// Value returns the edge the iterator currently observes. Calling Value
// before the first Next, or after Next returned false, yields the zero
// value and false.
func (it *Iterator[E]) Value() (E, bool) {
	if it.node == nil {
		var zero E
		return zero, false
	}
	return it.node.val, true
}

// Close releases the iterator's handle-table slot. Safe to call multiple
// times.
func (it *Iterator[E]) Close() { it.released = true }

// advanceIfAt moves the iterator past doomed if and only if doomed is its
// current node; called by the owning list immediately before doomed is
// unlinked, so the iterator never observes a removed edge.
func (it *Iterator[E]) advanceIfAt(doomed, successor *edgeNode[E]) {
	if it.node == doomed {
		it.node = successor
	}
}
