package model

import (
	"fmt"
	"sort"
)

// Stack carries the 2.5D metadata of a voxel column: empty space below
// the filled span, the filled span itself, and empty space above it. The
// core never reads these values for feasibility — it only preserves them
// through rotation, treating the third dimension as opaque metadata. The
// PlacementRecord does not carry them: PlacedBlock holds only id, origin
// and rotation.
type Stack struct {
	BelowEmpty int
	Filled     int
	AboveEmpty int
}

// Occupied reports whether this column actually contributes to the
// footprint. A column with Filled <= 0 is not an occupied cell.
func (s Stack) Occupied() bool {
	return s.Filled > 0
}

// Cell is a single occupied footprint column at offset (X, Y) relative
// to the footprint's own origin.
type Cell struct {
	X, Y  int
	Stack Stack
}

// AccessMode controls whether the Clearance Oracle's transporter access
// lane check applies to a block (see SPEC_FULL.md §4.8). Crane blocks are
// set down vertically and never need a lane; Transporter blocks (the
// default) must be reachable by sliding in from the carrier's stern edge.
type AccessMode int

const (
	AccessTransporter AccessMode = iota
	AccessCrane
)

func (a AccessMode) String() string {
	if a == AccessCrane {
		return "crane"
	}
	return "transporter"
}

func parseAccessMode(s string) (AccessMode, error) {
	switch s {
	case "", "transporter":
		return AccessTransporter, nil
	case "crane":
		return AccessCrane, nil
	default:
		return 0, fmt.Errorf("unknown access mode %q", s)
	}
}

// Footprint is an immutable 2.5D voxel block: its occupied cells, derived
// bounding box, and precomputed rotated view. A Footprint is constructed
// once by the caller (from an external voxeliser) and never mutated;
// rotation is a read-only query, not an in-place transform.
type Footprint struct {
	id           string
	access       AccessMode
	cells0       []Cell // normalised to origin, rotation 0
	cells90      []Cell // normalised to origin, rotation 90
	w0, h0       int
	w90, h90     int
	area         int
	sameAt0And90 bool
}

// NewFootprint normalises raw cells to the origin and precomputes both
// rotation views. It rejects footprints with no filled cells or with
// coordinates that remain negative after normalisation — both indicate a
// malformed voxeliser record, not a recoverable runtime condition.
func NewFootprint(id string, raw []Cell, access AccessMode) (*Footprint, error) {
	var filled []Cell
	for _, c := range raw {
		if c.Stack.Occupied() {
			filled = append(filled, c)
		}
	}
	if len(filled) == 0 {
		return nil, &FootprintError{BlockID: id, Reason: "no filled cells"}
	}

	minX, minY := filled[0].X, filled[0].Y
	for _, c := range filled[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}

	cells0 := make([]Cell, len(filled))
	maxX, maxY := 0, 0
	for i, c := range filled {
		nx, ny := c.X-minX, c.Y-minY
		if nx < 0 || ny < 0 {
			return nil, &FootprintError{BlockID: id, Reason: "negative coordinate after normalisation"}
		}
		cells0[i] = Cell{X: nx, Y: ny, Stack: c.Stack}
		if nx > maxX {
			maxX = nx
		}
		if ny > maxY {
			maxY = ny
		}
	}
	sortCells(cells0)

	w0, h0 := maxX+1, maxY+1
	cells90 := rotateCells90(cells0, w0)
	w90, h90 := h0, w0

	f := &Footprint{
		id:      id,
		access:  access,
		cells0:  cells0,
		cells90: cells90,
		w0:      w0, h0: h0,
		w90: w90, h90: h90,
		area: len(cells0),
	}
	f.sameAt0And90 = cellSetsEqual(cells0, cells90)
	return f, nil
}

// rotateCells90 maps each filled cell (cx, cy) of a footprint with width W
// to (cy, W-1-cx), per spec.md §3's pose rotation rule.
func rotateCells90(cells []Cell, w int) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell{X: c.Y, Y: w - 1 - c.X, Stack: c.Stack}
	}
	sortCells(out)
	return out
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}

func cellSetsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			return false
		}
	}
	return true
}

// ID returns the block's opaque identifier.
func (f *Footprint) ID() string { return f.id }

// AccessMode returns the block's access constraint.
func (f *Footprint) AccessMode() AccessMode { return f.access }

// Cells returns the occupied cell offsets for the given rotation. The
// slice is shared and must not be mutated by callers.
func (f *Footprint) Cells(r Rotation) []Cell {
	if r == Rotation90 {
		return f.cells90
	}
	return f.cells0
}

// Bounds returns (width, height) for the given rotation.
func (f *Footprint) Bounds(r Rotation) (w, h int) {
	if r == Rotation90 {
		return f.w90, f.h90
	}
	return f.w0, f.h0
}

// Area returns the occupied-cell count, invariant under rotation.
func (f *Footprint) Area() int { return f.area }

// Density returns occupied-area over bounding-box area for a rotation.
func (f *Footprint) Density(r Rotation) float64 {
	w, h := f.Bounds(r)
	if w == 0 || h == 0 {
		return 0
	}
	return float64(f.area) / float64(w*h)
}

// DistinctRotations reports whether 0 and 90 degrees yield a different
// filled-cell pattern. A square footprint whose pattern is symmetric
// under rotation has only one distinct candidate orientation; the
// Candidate Generator uses this to deduplicate.
func (f *Footprint) DistinctRotations() bool {
	return !f.sameAt0And90
}
