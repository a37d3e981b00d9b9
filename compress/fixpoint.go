package compress

import "github.com/katalvlaran/brujin/record"

// Result is the outcome of iterating Run to a fixpoint.
type Result struct {
	Records []*record.PLVR
	Rounds  int
}

// RunToFixpoint iterates Run (pair -> merge) until terminationCount
// consecutive rounds are silent (no merges), per spec §4.4. terminationCount
// <= 0 is treated as 1. Because each non-silent round strictly decreases
// the record count, and at most terminationCount-1 silent rounds can come
// before each of them, this loop is bounded by (initial record count + 1) *
// terminationCount rounds; a defensive cap enforces that bound even if a
// caller's Rand or opts produce pathological behavior.
func RunToFixpoint(records []*record.PLVR, rng Rand, opts record.CompressChainOptions, terminationCount int) (*Result, error) {
	if terminationCount <= 0 {
		terminationCount = 1
	}

	cur := records
	silent := 0
	rounds := 0
	maxRounds := (len(records) + 1) * terminationCount

	for silent < terminationCount {
		next, merges, err := Run(cur, rng, opts)
		if err != nil {
			return nil, err
		}
		rounds++
		cur = next

		if merges == 0 {
			silent++
		} else {
			silent = 0
		}

		if rounds >= maxRounds {
			break
		}
	}

	return &Result{Records: cur, Rounds: rounds}, nil
}
