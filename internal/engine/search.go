// Package engine implements the Search Engine (spec.md §4.5): an anytime
// heuristic-backtracking search that maintains a best-so-far partial
// solution under a wall-clock budget, grounded on
// original_source/algorithms/backtracking_placer.py's block ordering,
// recursive backtrack loop, and skip-branch.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jdock/deckpack/internal/candidate"
	"github.com/jdock/deckpack/internal/grid"
	"github.com/jdock/deckpack/internal/model"
)

// Options tunes a search run. A zero Options uses the spec.md §4.4
// candidate-generation defaults but leaves pruning off; DefaultOptions
// turns pruning on.
type Options struct {
	CandidateConfig candidate.Config
	Prune           bool // enabled by default via DefaultOptions
}

// DefaultOptions returns the canonical search configuration: default
// candidate generation and pruning enabled, per spec.md §4.5's
// recommendation.
func DefaultOptions() Options {
	return Options{CandidateConfig: candidate.DefaultConfig(), Prune: true}
}

// Search runs the backtracking engine over req's carrier and footprints
// until the search space is exhausted or req.Carrier.MaxTimeSeconds
// elapses, whichever comes first; it does not stop early once every block
// is placed. It always returns a well-formed PlacementRecord — "search
// incomplete" is not an error, per spec.md §7.
//
// An internal invariant violation (overlap, margin escape) is a defect,
// not a caller input error; the recursion asserts via panic and Search
// recovers it into an *model.ErrInternalInvariant rather than letting it
// escape as a raw panic, per spec.md §7.
func Search(ctx context.Context, req model.PackRequest, opts Options) (rec model.PlacementRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			if invariant, ok := r.(*model.ErrInternalInvariant); ok {
				err = invariant
				return
			}
			panic(r)
		}
	}()

	footprints, err := req.Footprints()
	if err != nil {
		return model.PlacementRecord{}, err
	}
	order := orderBlocks(req.OrderedBlockIDs(), footprints)
	return run(ctx, req.Carrier, footprints, order, opts)
}

// orderBlocks sorts block ids by (-W, -A, -density, id), per spec.md
// §4.5's block ordering rule: widest first, then largest area, then
// densest, then by id for determinism.
func orderBlocks(ids []string, footprints map[string]*model.Footprint) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		a, b := footprints[out[i]], footprints[out[j]]
		aw, _ := a.Bounds(model.Rotation0)
		bw, _ := b.Bounds(model.Rotation0)
		if aw != bw {
			return aw > bw
		}
		if a.Area() != b.Area() {
			return a.Area() > b.Area()
		}
		ad, bd := a.Density(model.Rotation0), b.Density(model.Rotation0)
		if ad != bd {
			return ad > bd
		}
		return out[i] < out[j]
	})
	return out
}

func run(ctx context.Context, cfg model.CarrierConfig, footprints map[string]*model.Footprint, order []string, opts Options) (model.PlacementRecord, error) {
	start := time.Now()
	dims := model.CarrierDimensions{ShipName: cfg.ShipName, Width: cfg.Width, Height: cfg.Height}

	if len(order) == 0 {
		return model.NewPlacementRecord(dims, nil, nil, 0, 0, time.Since(start).Seconds()), nil
	}

	g, err := grid.New(cfg)
	if err != nil {
		return model.PlacementRecord{}, err
	}

	s := &searcher{
		grid:       g,
		footprints: footprints,
		order:      order,
		start:      start,
		maxTime:    time.Duration(cfg.MaxTimeSeconds * float64(time.Second)),
		candCfg:    opts.CandidateConfig,
		prune:      opts.Prune,
		log:        loggerFromContext(ctx),
	}
	s.backtrack(0)

	elapsed := time.Since(start).Seconds()
	if s.log != nil {
		s.log.Infof("search finished: %d/%d placed, timed_out=%t, elapsed=%.3fs", s.bestCount, len(order), s.timedOut, elapsed)
	}
	if s.best == nil {
		return model.NewPlacementRecord(dims, nil, order, 0, len(order), elapsed), nil
	}
	return buildRecord(dims, order, s.best, elapsed), nil
}

type searcher struct {
	grid       *grid.Grid
	footprints map[string]*model.Footprint
	order      []string
	start      time.Time
	maxTime    time.Duration
	candCfg    candidate.Config
	prune      bool
	log        *log.Logger

	timedOut  bool
	bestCount int
	bestScore float64
	best      *grid.Grid
}

// backtrack implements spec.md §4.5's recursion at depth d.
func (s *searcher) backtrack(d int) {
	if time.Since(s.start) > s.maxTime {
		s.timedOut = true
		return
	}
	s.updateBest()

	if d == len(s.order) {
		return
	}
	if s.timedOut {
		return
	}

	remaining := len(s.order) - d
	if s.prune && s.grid.PlacedCount()+remaining < s.bestCount {
		return
	}

	blockID := s.order[d]
	fp := s.footprints[blockID]
	cands := candidate.Generate(s.grid, fp, s.candCfg)

	for _, c := range cands {
		if time.Since(s.start) > s.maxTime {
			s.timedOut = true
			return
		}
		if s.grid.Place(fp, c.Rotation, c.X, c.Y) {
			s.backtrack(d + 1)
			s.grid.Remove(blockID)
			if s.timedOut {
				return
			}
		}
	}

	// The skip branch (spec.md §4.5 step 6): proceed without placing
	// blockID so a partial solution is still reachable when no complete
	// placement exists.
	s.backtrack(d + 1)
}

// updateBest implements spec.md §4.5's objective: lexicographically
// maximise (placed_count, score) where score = 0.7*(placed/total) +
// 0.3*utilisation.
func (s *searcher) updateBest() {
	count, util := s.grid.Score()
	total := len(s.order)
	score := 0.7*(float64(count)/float64(total)) + 0.3*util

	if count > s.bestCount || (count == s.bestCount && score > s.bestScore) {
		if err := s.grid.CheckInvariants(); err != nil {
			panic(&model.ErrInternalInvariant{What: err.Error()})
		}
		s.bestCount = count
		s.bestScore = score
		s.best = s.grid.Clone()
		if s.log != nil {
			s.log.Infof("new best: %d/%d placed, score=%.4f", count, total, score)
		}
	}
}

func buildRecord(dims model.CarrierDimensions, order []string, snapshot *grid.Grid, elapsed float64) model.PlacementRecord {
	poses := snapshot.Poses()
	placed := make([]model.PlacedBlock, len(poses))
	placedSet := make(map[string]bool, len(poses))
	for i, p := range poses {
		placed[i] = model.PlacedBlock{ID: p.BlockID, X: p.X, Y: p.Y, Rotation: p.Rotation}
		placedSet[p.BlockID] = true
	}

	var unplaced []string
	for _, id := range order {
		if !placedSet[id] {
			unplaced = append(unplaced, id)
		}
	}

	_, util := snapshot.Score()
	total := len(order)
	score := 0.7*(float64(len(placed))/float64(total)) + 0.3*util

	return model.NewPlacementRecord(dims, placed, unplaced, score, total, elapsed)
}
