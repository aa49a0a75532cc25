package candidate

import (
	"github.com/jdock/deckpack/internal/grid"
	"github.com/jdock/deckpack/internal/model"
)

// newScoredCandidate computes the six-component heuristic of spec.md §4.4
// in a single pass and derives the fixed-point sort key from it.
func newScoredCandidate(g *grid.Grid, fp *model.Footprint, r model.Rotation, x, y int, w Weights) scoredCandidate {
	score := heuristicScore(g, fp, r, x, y, w)
	return scoredCandidate{
		x: x, y: y, rotation: r,
		score:      score,
		fixedScore: int64(score * scoreScale),
	}
}

func heuristicScore(g *grid.Grid, fp *model.Footprint, r model.Rotation, x, y int, w Weights) float64 {
	cfg := g.Config()
	cells := fp.Cells(r)

	bottomBias := 1 - float64(y)/float64(cfg.Height)
	leftAlign := 1 - float64(x)/float64(cfg.Width)
	areaFrac := float64(fp.Area()) / float64(cfg.Width*cfg.Height)
	density := fp.Density(r)

	adjacency := adjacencyFraction(g, cells, x, y)
	boundary := boundaryFraction(cfg, cells, x, y)

	return w.BottomBias*bottomBias +
		w.LeftAlign*leftAlign +
		w.Adjacency*adjacency +
		w.Area*areaFrac +
		w.Boundary*boundary +
		w.Density*density
}

// adjacencyFraction returns the fraction of the footprint's perimeter
// cells that are adjacent (4-neighbour) to the carrier edge or to a
// different placed block, per spec.md §4.4's "adjacency" component.
// Interior cells (every 4-neighbour still inside the footprint itself)
// can never be adjacent to anything outside it, so they're excluded from
// both the numerator and the denominator.
func adjacencyFraction(g *grid.Grid, cells []model.Cell, x, y int) float64 {
	if len(cells) == 0 {
		return 0
	}
	occupied := make(map[[2]int]bool, len(cells))
	local := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		occupied[[2]int{x + c.X, y + c.Y}] = true
		local[[2]int{c.X, c.Y}] = true
	}

	perimeter, adjacent := 0, 0
	for _, c := range cells {
		if !isPerimeterCell(local, c.X, c.Y) {
			continue
		}
		perimeter++
		if isAdjacent(g, occupied, x+c.X, y+c.Y) {
			adjacent++
		}
	}
	if perimeter == 0 {
		return 0
	}
	return float64(adjacent) / float64(perimeter)
}

// isPerimeterCell reports whether (lx, ly), in the footprint's own local
// coordinates, has at least one 4-neighbour that isn't part of the
// footprint — i.e. it's exposed on at least one side.
func isPerimeterCell(local map[[2]int]bool, lx, ly int) bool {
	offsets := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, o := range offsets {
		if !local[[2]int{lx + o[0], ly + o[1]}] {
			return true
		}
	}
	return false
}

func isAdjacent(g *grid.Grid, occupied map[[2]int]bool, gx, gy int) bool {
	offsets := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, o := range offsets {
		nx, ny := gx+o[0], gy+o[1]
		if occupied[[2]int{nx, ny}] {
			continue
		}
		empty, err := g.IsEmpty(nx, ny)
		if err != nil {
			// Out of grid bounds counts as an edge.
			return true
		}
		if !empty {
			return true
		}
	}
	return false
}

// boundaryFraction returns the fraction of the footprint's cells that
// touch the usable interior's boundary, per spec.md §4.4's "boundary"
// component.
func boundaryFraction(cfg model.CarrierConfig, cells []model.Cell, x, y int) float64 {
	if len(cells) == 0 {
		return 0
	}
	minX, minY, maxX, maxY := cfg.UsableInterior()

	touching := 0
	for _, c := range cells {
		gx, gy := x+c.X, y+c.Y
		if gx == minX || gx == maxX-1 || gy == minY || gy == maxY-1 {
			touching++
		}
	}
	return float64(touching) / float64(len(cells))
}
