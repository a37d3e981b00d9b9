package compress

import (
	"math/rand"

	"github.com/katalvlaran/brujin/core"
	"github.com/katalvlaran/brujin/record"
	"golang.org/x/sync/errgroup"
)

// SeedFn returns the RNG seed a shard worker should use. Callers must give
// each worker an independent seed (spec §5: "the random generator ...
// must be seeded per worker to avoid correlated choices across a
// cluster").
type SeedFn func(worker int) int64

// RunSharded is one concrete in-process harness satisfying the per-record
// contract of Run: it splits records into numWorkers contiguous shards,
// computes each record's pairing key concurrently (one independently
// seeded *rand.Rand per shard), then performs the single-threaded
// key-group merge step. The concurrent key-computation phase and the
// merge phase form the round barrier described in spec §5 — workers never
// share mutable state, and nothing downstream of errgroup.Wait observes a
// partial round.
func RunSharded(records []*record.PLVR, numWorkers int, seed SeedFn, opts record.CompressChainOptions) ([]*record.PLVR, int, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if seed == nil {
		seed = func(w int) int64 { return int64(w) }
	}

	for _, r := range records {
		if r.Flags.IsBranch {
			return nil, 0, ErrBranchRecord
		}
	}

	if len(records) == 0 {
		return nil, 0, nil
	}

	shardSize := (len(records) + numWorkers - 1) / numWorkers
	keys := make([]core.VertexID, len(records))

	g := new(errgroup.Group)
	for w := 0; w < numWorkers; w++ {
		start := w * shardSize
		end := start + shardSize
		if end > len(records) {
			end = len(records)
		}
		if start >= end {
			continue
		}

		workerSeed := seed(w)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(workerSeed))
			for i := start; i < end; i++ {
				key, err := PairingKey(rng, records[i])
				if err != nil {
					return err
				}
				keys[i] = key
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	groups := make(map[core.VertexID][]*record.PLVR, len(records))
	for i, r := range records {
		groups[keys[i]] = append(groups[keys[i]], r)
	}

	return mergeGroups(groups, opts)
}
