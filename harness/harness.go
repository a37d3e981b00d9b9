// Package harness declares the interfaces for the collaborators spec §1
// names as out of scope: the random read generator, the sequential and
// threaded read splitters, the read-to-graph parser, the downstream
// aligner, and a key-domain shuffler. The assembler package depends only on
// these interfaces, never on a concrete implementation, so any harness --
// an in-process loop, a work-stealing executor, or an external job
// scheduler -- can drive the core (spec §9: "any runtime that can
// partition by key, shuffle, and barrier between rounds is acceptable").
package harness

import (
	"context"

	"github.com/katalvlaran/brujin/core"
	"github.com/katalvlaran/brujin/record"
)

// ReadGenerator produces the short text fragments ("reads") the assembler
// turns into initial vertex records (spec §1 scope note).
type ReadGenerator interface {
	// GenerateReads returns n reads drawn with redundancy from an unknown
	// longer string over a fixed alphabet.
	GenerateReads(ctx context.Context, n int) ([]string, error)
}

// SequentialSplitter splits one read into a caller-chosen encoding (e.g.
// fixed-length k-mer prefix/suffix pairs) in a single goroutine.
type SequentialSplitter interface {
	Split(read string) ([]record.PLVR, error)
}

// ThreadedSplitter is the concurrent counterpart of SequentialSplitter,
// fanning work for a batch of reads across multiple workers.
type ThreadedSplitter interface {
	SplitAll(ctx context.Context, reads []string, numWorkers int) ([]record.PLVR, error)
}

// RecordParser decodes an externally framed input stream (spec §6) into
// vertex and edge records for graph construction.
type RecordParser interface {
	ParseNext() (any, error)
}

// Aligner performs the final Hamming/pairwise alignment of a reconstructed
// tour's sequence against a reference, outside the core's scope.
type Aligner interface {
	Align(candidate, reference string) (score float64, err error)
}

// Shuffler redistributes records across a disjoint key partition between
// compression or pruning rounds (spec §5: "an external harness may shuffle
// records between workers").
type Shuffler interface {
	Shuffle(records []*record.PLVR, numWorkers int) [][]*record.PLVR
}

// KeyRange is a half-open [Start, End) slice of a records slice assigned to
// one worker, expressing a disjoint partition without copying records.
type KeyRange struct {
	Start, End int
}

// VertexClassifier inspects a built graph to decide which logical output
// stream (branch/* or chain/*) a vertex's emitted record belongs to (spec
// §6: "Records may be directed into one of two logical streams ... This is
// a harness convention, not part of the record format").
type VertexClassifier interface {
	Classify(g *core.Graph[core.WeightedEdge], v core.VertexID) (stream string, err error)
}
