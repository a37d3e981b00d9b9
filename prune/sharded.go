package prune

import (
	"github.com/katalvlaran/brujin/record"
	"golang.org/x/sync/errgroup"
)

// RunSharded prunes records concurrently across numWorkers disjoint
// contiguous shards. Unlike chain compression, pruning is a pure per-record
// map with no cross-record merge step, so there is no round barrier beyond
// errgroup.Wait collecting every worker's slice of survivors (spec §4.8:
// "each worker owns a disjoint key partition").
func RunSharded(records []*record.PLVR, coverage int, numWorkers int) ([]*record.PLVR, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if len(records) == 0 {
		return nil, nil
	}
	if coverage <= 0 {
		return nil, ErrNonPositiveCoverage
	}

	shardSize := (len(records) + numWorkers - 1) / numWorkers
	survivors := make([][]*record.PLVR, numWorkers)

	g := new(errgroup.Group)
	for w := 0; w < numWorkers; w++ {
		w := w
		start := w * shardSize
		end := start + shardSize
		if end > len(records) {
			end = len(records)
		}
		if start >= end {
			continue
		}

		g.Go(func() error {
			shard, err := Batch(records[start:end], coverage)
			if err != nil {
				return err
			}
			survivors[w] = shard
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*record.PLVR, 0, len(records))
	for _, shard := range survivors {
		out = append(out, shard...)
	}
	return out, nil
}
