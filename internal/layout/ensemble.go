package layout

import (
	"context"
	"sync"
)

// Ensemble compares best-candidate and uniform placement concurrently. Each run gets its own
// stream from NewRand, so results do not depend on scheduling.
type Ensemble struct {
	NewRand func(run int) Rand
	Runs    int
	Count   int
	Region  Rect
}

// Run fills a SpreadReport with one entry per run, in run order.
func (e *Ensemble) Run(ctx context.Context) (SpreadReport, error) {
	rep := SpreadReport{
		BestCandidate: make([]float64, e.Runs),
		Uniform:       make([]float64, e.Runs),
	}

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			rng := e.NewRand(idx)
			rep.BestCandidate[idx] = MinPairwise(NewSampler(rng).Sample(e.Count, e.Region))
			rep.Uniform[idx] = MinPairwise(Uniform(rng, e.Count, e.Region))
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return SpreadReport{}, err
	}
	return rep, nil
}
