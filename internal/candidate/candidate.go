// Package candidate implements the Candidate Generator (spec.md §4.4): for
// a footprint and the current Carrier Grid state, it enumerates and scores
// the (x, y, rotation) poses the Search Engine should try, in the order it
// should try them.
package candidate

import (
	"sort"

	"github.com/jdock/deckpack/internal/grid"
	"github.com/jdock/deckpack/internal/model"
)

// scoreScale is the fixed-point multiplier applied before sorting:
// sorting on an integer compound key avoids
// floating-point instability from breaking tie-break determinism.
const scoreScale = 10000

// Weights is the scoring weight vector from spec.md §4.4. The defaults
// define the canonical behaviour for test reproducibility; callers may
// override them, but doing so forfeits byte-identical results against the
// reference scenarios in spec.md §8.
type Weights struct {
	BottomBias float64
	LeftAlign  float64
	Adjacency  float64
	Area       float64
	Boundary   float64
	Density    float64
}

// DefaultWeights is the weight vector of spec.md §4.4.
func DefaultWeights() Weights {
	return Weights{
		BottomBias: 0.40,
		LeftAlign:  0.20,
		Adjacency:  0.20,
		Area:       0.10,
		Boundary:   0.05,
		Density:    0.05,
	}
}

// Config tunes enumeration: the sweep step in each axis and an optional
// cap K on the number of ranked candidates returned. A zero Config uses
// the spec.md §4.4 defaults (step 1, unbounded K).
type Config struct {
	StepX, StepY int
	K            int // 0 means unbounded
	Weights      Weights
}

// DefaultConfig returns the canonical enumeration configuration.
func DefaultConfig() Config {
	return Config{StepX: 1, StepY: 1, K: 0, Weights: DefaultWeights()}
}

// Candidate is a single ranked placement option.
type Candidate struct {
	X, Y     int
	Rotation model.Rotation
	Score    float64
}

// Generate enumerates, filters, and ranks placement candidates for fp
// against g's current state, per spec.md §4.4.
func Generate(g *grid.Grid, fp *model.Footprint, cfg Config) []Candidate {
	if cfg.StepX == 0 {
		cfg.StepX = 1
	}
	if cfg.StepY == 0 {
		cfg.StepY = 1
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}

	rotations := []model.Rotation{model.Rotation0}
	if fp.DistinctRotations() {
		rotations = append(rotations, model.Rotation90)
	}

	var out []scoredCandidate
	if g.PlacedCount() == 0 {
		out = strategicSeeds(g, fp, rotations, cfg.Weights)
	}
	if len(out) == 0 {
		out = sweep(g, fp, rotations, cfg)
	}

	sortCandidates(out)
	if cfg.K > 0 && len(out) > cfg.K {
		out = out[:cfg.K]
	}

	result := make([]Candidate, len(out))
	for i, c := range out {
		result[i] = Candidate{X: c.x, Y: c.y, Rotation: c.rotation, Score: c.score}
	}
	return result
}

// scoredCandidate carries the fixed-point score alongside the float for
// presentation; sorting uses fixedScore exclusively.
type scoredCandidate struct {
	x, y       int
	rotation   model.Rotation
	score      float64
	fixedScore int64
}

// strategicSeeds implements spec.md §4.4's seed set for the first block on
// an empty grid: the four corners of the usable interior and the interior
// midline, for both rotations. If none are feasible the caller falls back
// to the full sweep.
func strategicSeeds(g *grid.Grid, fp *model.Footprint, rotations []model.Rotation, w Weights) []scoredCandidate {
	minX, minY, maxX, maxY := g.Config().UsableInterior()

	var out []scoredCandidate
	for _, r := range rotations {
		fw, fh := fp.Bounds(r)
		if fw > maxX-minX || fh > maxY-minY {
			continue
		}
		seeds := [][2]int{
			{minX, minY},                                     // stern-side corner
			{maxX - fw, minY},                                // bow-side corner
			{minX, maxY - fh},                                // far stern-side corner
			{maxX - fw, maxY - fh},                           // far bow-side corner
			{(minX + maxX - fw) / 2, (minY + maxY - fh) / 2}, // interior midline
		}
		for _, s := range seeds {
			x, y := s[0], s[1]
			if !g.CanPlace(fp, r, x, y) {
				continue
			}
			out = append(out, newScoredCandidate(g, fp, r, x, y, w))
		}
	}
	return out
}

// sweep implements spec.md §4.4's enumeration: for each rotation, sweep
// x from high to low and y from low to high, filtering by the Clearance
// Oracle before scoring.
func sweep(g *grid.Grid, fp *model.Footprint, rotations []model.Rotation, cfg Config) []scoredCandidate {
	minX, minY, maxX, maxY := g.Config().UsableInterior()

	var out []scoredCandidate
	for _, r := range rotations {
		fw, fh := fp.Bounds(r)
		xMin, xMax := minX, maxX-fw
		yMin, yMax := minY, maxY-fh
		if xMax < xMin || yMax < yMin {
			continue
		}
		for x := xMax; x >= xMin; x -= cfg.StepX {
			for y := yMin; y <= yMax; y += cfg.StepY {
				if !g.CanPlace(fp, r, x, y) {
					continue
				}
				out = append(out, newScoredCandidate(g, fp, r, x, y, cfg.Weights))
			}
		}
	}
	return out
}

func sortCandidates(cs []scoredCandidate) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.fixedScore != b.fixedScore {
			return a.fixedScore > b.fixedScore
		}
		if a.y != b.y {
			return a.y < b.y
		}
		if a.x != b.x {
			return a.x < b.x
		}
		return a.rotation < b.rotation // Rotation0 (0) before Rotation90 (90)
	})
}
