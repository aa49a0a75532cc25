package grid

import "github.com/jdock/deckpack/internal/model"

// oracle is the Clearance Oracle (spec.md §4.3): a pure predicate over a
// Grid's current state. It never mutates the grid it reads.
type oracle struct {
	g *Grid
}

func newOracle(g *Grid) *oracle { return &oracle{g: g} }

// canPlace implements the three feasibility checks of spec.md §4.3, plus
// the supplemented transporter access lane of SPEC_FULL.md §4.8.
func (o *oracle) canPlace(fp *model.Footprint, r model.Rotation, x, y int) bool {
	cells := fp.Cells(r)
	minX, minY, maxX, maxY := o.g.cfg.UsableInterior()

	// 1. Interior containment.
	for _, c := range cells {
		gx, gy := x+c.X, y+c.Y
		if gx < minX || gx >= maxX || gy < minY || gy >= maxY {
			return false
		}
	}

	// 2. Non-overlap.
	for _, c := range cells {
		if o.g.cells[o.g.idx(x+c.X, y+c.Y)] != 0 {
			return false
		}
	}

	// 3. Inter-block clearance.
	if o.g.cfg.BlockClearance > 0 && !o.clearanceSatisfied(cells, x, y) {
		return false
	}

	// 4. Transporter access lane (supplemented, SPEC_FULL.md §4.8).
	if o.g.cfg.RequireAccessLane && fp.AccessMode() == model.AccessTransporter {
		if !o.accessLaneClear(fp, r, x, y) {
			return false
		}
	}

	return true
}

// clearanceSatisfied inflates the candidate's footprint by
// BlockClearance cells under the configured neighbourhood policy and
// checks that no cell in the inflated region is occupied. Every
// footprint cell is already confirmed empty by the non-overlap check,
// so any occupied cell found here necessarily belongs to a different
// block.
func (o *oracle) clearanceSatisfied(cells []model.Cell, x, y int) bool {
	clearance := o.g.cfg.BlockClearance
	chebyshev := o.g.cfg.ClearancePolicy == model.ClearanceChebyshev

	for _, c := range cells {
		cx, cy := x+c.X, y+c.Y
		for dy := -clearance; dy <= clearance; dy++ {
			for dx := -clearance; dx <= clearance; dx++ {
				within := false
				if chebyshev {
					within = abs(dx) <= clearance && abs(dy) <= clearance
				} else {
					within = abs(dx)+abs(dy) <= clearance
				}
				if !within {
					continue
				}
				nx, ny := cx+dx, cy+dy
				if !o.g.inBounds(nx, ny) {
					continue
				}
				if o.g.cells[o.g.idx(nx, ny)] != 0 {
					return false
				}
			}
		}
	}
	return true
}

// accessLaneClear implements the supplemented transporter-access check
// grounded on original_source/models/placement_area.py's
// _check_transporter_access: every cell between the carrier's stern edge
// and the candidate's left edge, across the candidate's full rotated
// height, must be empty so the block can be slid in from the open edge.
func (o *oracle) accessLaneClear(fp *model.Footprint, r model.Rotation, x, y int) bool {
	_, h := fp.Bounds(r)
	sternEdge := o.g.cfg.SternMargin
	for row := y; row < y+h; row++ {
		for col := sternEdge; col < x; col++ {
			if !o.g.inBounds(col, row) {
				continue
			}
			if o.g.cells[o.g.idx(col, row)] != 0 {
				return false
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
