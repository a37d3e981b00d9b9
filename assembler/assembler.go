// Package assembler is the façade driving the full pipeline: build a graph
// from reads, prune by coverage, compress chains to a fixpoint, and extract
// Euler tours (spec §2 Assembler façade row, SPEC_FULL §4.7). It is the one
// package that imports core, record, compress, prune, euler, config, and
// the ambient logging/metrics stack together; every other package stays
// focused on its single algorithm.
package assembler

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/katalvlaran/brujin/compress"
	"github.com/katalvlaran/brujin/config"
	"github.com/katalvlaran/brujin/core"
	"github.com/katalvlaran/brujin/euler"
	"github.com/katalvlaran/brujin/harness"
	"github.com/katalvlaran/brujin/prune"
	"github.com/katalvlaran/brujin/record"
)

// ErrEmptyGraph indicates ExtractTours was called before BuildGraph
// produced any records.
var ErrEmptyGraph = errors.New("assembler: no records built yet")

// Assembler holds the pipeline's mutable state: the current record set
// (records with initial edges, then merged, then pruned, then compressed),
// the configuration driving each phase, and the logging/metrics sinks.
// Mutable pipeline state belongs to one Assembler value, never to a
// package-level variable (spec §9 design note on request-scoped state).
type Assembler struct {
	cfg     config.Config
	logger  hclog.Logger
	metrics *Metrics

	records []*record.PLVR
}

// New constructs an Assembler. A nil logger falls back to a no-op logger;
// a nil metrics disables metrics recording (Metrics methods are nil-safe).
func New(cfg config.Config, logger hclog.Logger, metrics *Metrics) *Assembler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Assembler{cfg: cfg, logger: logger, metrics: metrics}
}

// Records returns the assembler's current record set (a shallow copy of the
// slice header; callers must not assume ownership of the underlying PLVRs).
func (a *Assembler) Records() []*record.PLVR { return a.records }

// BuildGraph splits every read with splitter, then merges the resulting
// per-read records by vertex id into the assembler's working set (spec §2:
// "vertex records with initial edges" -> "merged vertex records").
func (a *Assembler) BuildGraph(reads []string, splitter harness.SequentialSplitter) error {
	start := timeNow()
	byID := make(map[core.VertexID]*record.PLVR)

	for _, read := range reads {
		parts, err := splitter.Split(read)
		if err != nil {
			return fmt.Errorf("assembler: splitting read: %w", err)
		}
		for i := range parts {
			p := &parts[i]
			if existing, ok := byID[p.ID]; ok {
				if err := existing.Merge(p); err != nil {
					return fmt.Errorf("assembler: merging vertex %d: %w", p.ID, err)
				}
				continue
			}
			byID[p.ID] = p
		}
	}

	records := make([]*record.PLVR, 0, len(byID))
	for _, r := range byID {
		records = append(records, r)
	}
	a.records = records

	a.logger.Info("built graph", "reads", len(reads), "vertices", len(a.records))
	a.metrics.observePhase("build", timeSince(start))
	return nil
}

// Prune removes under-supported edge groups and rejects vertices with no
// surviving evidence, per config.Config.Coverage (spec §4.5). A disabled
// coverage (<=0) is a no-op.
func (a *Assembler) Prune() error {
	if !a.cfg.PruningEnabled() {
		a.logger.Debug("pruning disabled", "coverage", a.cfg.Coverage)
		return nil
	}

	start := timeNow()
	before := len(a.records)
	out, err := prune.Batch(a.records, a.cfg.Coverage)
	if err != nil {
		return fmt.Errorf("assembler: pruning: %w", err)
	}
	a.records = out

	rejected := before - len(a.records)
	a.logger.Info("pruned records", "before", before, "after", len(a.records), "rejected", rejected)
	a.metrics.recordPruned(rejected)
	a.metrics.observePhase("prune", timeSince(start))
	return nil
}

// CompressToFixpoint iterates randomized pairwise chain compression until
// config.Config.TerminationCount consecutive rounds are silent (spec §4.4).
// Branch records are set aside before compression (the compressor rejects
// them) and merged back into the result afterward.
func (a *Assembler) CompressToFixpoint(rng *rand.Rand) error {
	start := timeNow()

	var chains, branches []*record.PLVR
	for _, r := range a.records {
		if r.Flags.IsBranch {
			branches = append(branches, r)
		} else {
			chains = append(chains, r)
		}
	}

	opts := record.CompressChainOptions{MultiplesMustMatch: a.cfg.CompressMultiplesMustMatch}
	result, err := compress.RunToFixpoint(chains, rng, opts, a.cfg.TerminationCount)
	if err != nil {
		return fmt.Errorf("assembler: compressing: %w", err)
	}

	a.records = append(result.Records, branches...)
	a.metrics.recordRounds(result.Rounds)

	a.logger.Info("compressed to fixpoint", "rounds", result.Rounds, "vertices", len(a.records))
	a.metrics.observePhase("compress", timeSince(start))
	return nil
}

// ExtractTours converts the current record set into a weighted core.Graph
// (edge weight = observed multiplicity) and runs the non-destructive Euler
// extractor over it (spec §4.6).
func (a *Assembler) ExtractTours() ([]*euler.Path, error) {
	if len(a.records) == 0 {
		return nil, ErrEmptyGraph
	}

	start := timeNow()
	g, err := buildWeightedGraph(a.records)
	if err != nil {
		return nil, fmt.Errorf("assembler: building tour graph: %w", err)
	}

	paths, err := euler.ExtractTours(g)
	if err != nil {
		return nil, fmt.Errorf("assembler: extracting tours: %w", err)
	}

	a.logger.Info("extracted tours", "count", len(paths))
	a.metrics.recordTours(len(paths))
	a.metrics.observePhase("tour", timeSince(start))
	return paths, nil
}

// buildWeightedGraph materializes a's current records into a fixed-capacity
// Graph sized to the largest observed vertex id, with one weighted edge per
// destination group (weight = that group's size, i.e. its coverage).
func buildWeightedGraph(records []*record.PLVR) (*core.Graph[core.WeightedEdge], error) {
	var maxID core.VertexID
	for _, r := range records {
		if r.ID > maxID {
			maxID = r.ID
		}
		for _, v := range r.EdgesTo {
			if v > maxID {
				maxID = v
			}
		}
	}

	g, err := core.NewGraph[core.WeightedEdge](int(maxID)+1, true)
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		for _, grp := range r.EdgesToGroups() {
			if err := g.AddEdge(r.ID, core.WeightedEdge{To: grp.Value, Weight: float64(grp.Count)}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// timeNow/timeSince isolate the only two time.Time calls in the package so
// phase-duration instrumentation has a single seam.
func timeNow() time.Time { return time.Now() }

func timeSince(start time.Time) float64 { return time.Since(start).Seconds() }
