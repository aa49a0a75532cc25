package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jdock/deckpack/internal/candidate"
	"github.com/jdock/deckpack/internal/grid"
	"github.com/jdock/deckpack/internal/model"
)

// ParallelSearch is the optional parallel driver permitted by spec.md §5:
// it clones the grid once per root-level candidate of the first block and
// runs each clone's subtree concurrently, reducing into a single
// best-so-far guarded by a mutex on (placed_count, score). It does not
// change the single-threaded engine's observable contract; callers that
// need byte-identical determinism across runs use Search instead. Unlike
// Search, it does not recover an internal invariant panic: the panic
// propagates from the goroutine that raised it.
func ParallelSearch(ctx context.Context, req model.PackRequest, opts Options) (model.PlacementRecord, error) {
	start := time.Now()
	footprints, err := req.Footprints()
	if err != nil {
		return model.PlacementRecord{}, err
	}
	order := orderBlocks(req.OrderedBlockIDs(), footprints)
	dims := model.CarrierDimensions{ShipName: req.Carrier.ShipName, Width: req.Carrier.Width, Height: req.Carrier.Height}

	if len(order) == 0 {
		return model.NewPlacementRecord(dims, nil, nil, 0, 0, time.Since(start).Seconds()), nil
	}

	root, err := grid.New(req.Carrier)
	if err != nil {
		return model.PlacementRecord{}, err
	}

	maxTime := time.Duration(req.Carrier.MaxTimeSeconds * float64(time.Second))
	firstID := order[0]
	firstFP := footprints[firstID]
	roots := candidate.Generate(root, firstFP, opts.CandidateConfig)

	reducer := &parallelReducer{}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range roots {
		c := c
		g.Go(func() error {
			clone := root.Clone()
			if !clone.Place(firstFP, c.Rotation, c.X, c.Y) {
				return nil
			}
			s := &searcher{
				grid:       clone,
				footprints: footprints,
				order:      order,
				start:      start,
				maxTime:    maxTime,
				candCfg:    opts.CandidateConfig,
				prune:      opts.Prune,
				log:        loggerFromContext(gctx),
			}
			s.backtrack(1)
			if s.best != nil {
				reducer.offer(s.bestCount, s.bestScore, s.best)
			}
			return nil
		})
	}

	// The skip branch at the root: the first block may also be left
	// unplaced, explored on its own subtree same as every other
	// candidate.
	g.Go(func() error {
		clone := root.Clone()
		s := &searcher{
			grid:       clone,
			footprints: footprints,
			order:      order,
			start:      start,
			maxTime:    maxTime,
			candCfg:    opts.CandidateConfig,
			prune:      opts.Prune,
			log:        loggerFromContext(gctx),
		}
		s.backtrack(1)
		if s.best != nil {
			reducer.offer(s.bestCount, s.bestScore, s.best)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.PlacementRecord{}, err
	}

	elapsed := time.Since(start).Seconds()
	if reducer.best == nil {
		return model.NewPlacementRecord(dims, nil, order, 0, len(order), elapsed), nil
	}
	return buildRecord(dims, order, reducer.best, elapsed), nil
}

// parallelReducer guards the shared best-so-far slot across goroutines
// with a plain mutex rather than a lock-free CAS: candidate counts are
// small (bounded by the first block's candidate list) and contention is
// negligible, so the simpler primitive is the right tool here.
type parallelReducer struct {
	mu    sync.Mutex
	count int
	score float64
	best  *grid.Grid
}

func (r *parallelReducer) offer(count int, score float64, snapshot *grid.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if count > r.count || (count == r.count && score > r.score) {
		r.count = count
		r.score = score
		r.best = snapshot
	}
}
