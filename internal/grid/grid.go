// Package grid implements the Carrier Grid (spec.md §4.2) and the
// Clearance Oracle (spec.md §4.3): the 2D occupancy model blocks are
// placed into, and the feasibility predicate that decides whether a
// candidate placement may claim cells in it.
package grid

import (
	"fmt"
	"sort"

	"github.com/jdock/deckpack/internal/model"
)

// placedEntry records enough to reconstruct a block's claimed cells
// without storing them redundantly: the footprint reference, the
// rotation it was placed under, and its origin.
type placedEntry struct {
	footprint *model.Footprint
	rotation  model.Rotation
	x, y      int
}

// Grid is the Carrier Grid: a flat, row-major occupancy array of small
// integer handles (see interner.go), the margins and clearance policy
// that bound feasible placement, and the set of currently placed
// blocks. Grid exclusively owns its cell array; it is not safe for
// concurrent mutation from multiple goroutines — the Search Engine
// clones a Grid per independent subtree when it parallelises.
type Grid struct {
	cfg    model.CarrierConfig
	cells  []int32
	in     *interner
	placed map[string]placedEntry
}

// New constructs an empty Carrier Grid from a validated configuration.
func New(cfg model.CarrierConfig) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Grid{
		cfg:    cfg,
		cells:  make([]int32, cfg.Width*cfg.Height),
		in:     newInterner(),
		placed: make(map[string]placedEntry),
	}, nil
}

// Config returns the carrier configuration this grid was built from.
func (g *Grid) Config() model.CarrierConfig { return g.cfg }

func (g *Grid) idx(x, y int) int { return y*g.cfg.Width + x }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.cfg.Width && y >= 0 && y < g.cfg.Height
}

// IsEmpty reports whether (x, y) holds no block. Out-of-bounds
// coordinates are a caller error, not a silent false, per spec.md §4.2.
func (g *Grid) IsEmpty(x, y int) (bool, error) {
	if !g.inBounds(x, y) {
		return false, fmt.Errorf("grid: (%d,%d) out of bounds for %dx%d", x, y, g.cfg.Width, g.cfg.Height)
	}
	return g.cells[g.idx(x, y)] == 0, nil
}

// Owner returns the block id occupying (x, y), or "" if empty.
func (g *Grid) Owner(x, y int) (string, error) {
	if !g.inBounds(x, y) {
		return "", fmt.Errorf("grid: (%d,%d) out of bounds for %dx%d", x, y, g.cfg.Width, g.cfg.Height)
	}
	return g.in.string(g.cells[g.idx(x, y)]), nil
}

// CanPlace reports whether fp may be placed at (x, y) under rotation r
// without mutating the grid. It delegates to the Clearance Oracle.
func (g *Grid) CanPlace(fp *model.Footprint, r model.Rotation, x, y int) bool {
	return newOracle(g).canPlace(fp, r, x, y)
}

// Place claims every rotated cell of fp for fp.ID() if feasible. It is
// all-or-nothing: on failure the grid is left exactly as it was.
func (g *Grid) Place(fp *model.Footprint, r model.Rotation, x, y int) bool {
	if !g.CanPlace(fp, r, x, y) {
		return false
	}
	handle := g.in.intern(fp.ID())
	for _, c := range fp.Cells(r) {
		g.cells[g.idx(x+c.X, y+c.Y)] = handle
	}
	g.placed[fp.ID()] = placedEntry{footprint: fp, rotation: r, x: x, y: y}
	return true
}

// Remove clears every cell owned by blockID. It is a no-op if blockID
// is not currently placed.
func (g *Grid) Remove(blockID string) bool {
	entry, ok := g.placed[blockID]
	if !ok {
		return false
	}
	for _, c := range entry.footprint.Cells(entry.rotation) {
		g.cells[g.idx(entry.x+c.X, entry.y+c.Y)] = 0
	}
	delete(g.placed, blockID)
	return true
}

// PlacedCount returns the number of blocks currently placed.
func (g *Grid) PlacedCount() int { return len(g.placed) }

// CheckInvariants re-derives, from the placed set alone, the two
// invariants the Clearance Oracle is supposed to have already enforced on
// every Place call: no two placed blocks' cells overlap, and every placed
// cell lies within the usable interior. It is deliberately re-checked
// independently of the oracle so a latent oracle bug surfaces here instead
// of silently corrupting a result. Callers that care (the Search Engine,
// on every best-so-far update) turn a non-nil return into a panic the
// public entry point recovers as model.ErrInternalInvariant.
func (g *Grid) CheckInvariants() error {
	minX, minY, maxX, maxY := g.cfg.UsableInterior()
	seen := make(map[int]string, len(g.cells))
	for id, e := range g.placed {
		for _, c := range e.footprint.Cells(e.rotation) {
			gx, gy := e.x+c.X, e.y+c.Y
			if gx < minX || gx >= maxX || gy < minY || gy >= maxY {
				return fmt.Errorf("block %q cell (%d,%d) escapes usable interior", id, gx, gy)
			}
			idx := g.idx(gx, gy)
			if owner, dup := seen[idx]; dup {
				return fmt.Errorf("cell (%d,%d) claimed by both %q and %q", gx, gy, owner, id)
			}
			seen[idx] = id
		}
	}
	return nil
}

// Score returns the placed-block count and interior utilisation, per
// spec.md §4.2/§4.5: utilisation = occupied interior cells / usable
// interior area. Every placed cell lies in the usable interior by the
// grid's own invariant, so occupied-area is the sum of placed footprint
// areas.
func (g *Grid) Score() (placedCount int, utilisation float64) {
	usable := g.cfg.UsableArea()
	if usable == 0 {
		return len(g.placed), 0
	}
	occupied := 0
	for _, e := range g.placed {
		occupied += e.footprint.Area()
	}
	return len(g.placed), float64(occupied) / float64(usable)
}

// Poses returns the pose of every currently placed block, sorted by block
// id so callers get a deterministic order regardless of the underlying
// map's iteration order.
func (g *Grid) Poses() []model.Pose {
	poses := make([]model.Pose, 0, len(g.placed))
	for id, e := range g.placed {
		poses = append(poses, model.Pose{BlockID: id, X: e.x, Y: e.y, Rotation: e.rotation})
	}
	sort.Slice(poses, func(i, j int) bool { return poses[i].BlockID < poses[j].BlockID })
	return poses
}

// IsPlaced reports whether blockID currently occupies cells in the grid.
func (g *Grid) IsPlaced(blockID string) bool {
	_, ok := g.placed[blockID]
	return ok
}

// Clone returns a deep, independent copy of the grid: a fresh cell
// array and a fresh placed-set map. Footprints are immutable and
// shared by reference, per spec.md §3's ownership rule. This is the
// primitive the Search Engine uses to snapshot a best-so-far result
// and to fan a parallel search out into independent subtrees.
func (g *Grid) Clone() *Grid {
	cellsCopy := make([]int32, len(g.cells))
	copy(cellsCopy, g.cells)

	placedCopy := make(map[string]placedEntry, len(g.placed))
	for k, v := range g.placed {
		placedCopy[k] = v
	}

	clonedInterner := &interner{
		toHandle: make(map[string]int32, len(g.in.toHandle)),
		toString: make([]string, len(g.in.toString)),
	}
	for k, v := range g.in.toHandle {
		clonedInterner.toHandle[k] = v
	}
	copy(clonedInterner.toString, g.in.toString)

	return &Grid{
		cfg:    g.cfg,
		cells:  cellsCopy,
		in:     clonedInterner,
		placed: placedCopy,
	}
}
