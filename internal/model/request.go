package model

// CarrierConfig is the input carrier configuration described in
// spec.md §6: the rectangular deck geometry, margins, inter-block
// clearance, the ordered block list to attempt, and the search's
// wall-clock budget.
type CarrierConfig struct {
	ShipName          string          `json:"ship_name"`
	Width             int             `json:"width"`
	Height            int             `json:"height"`
	BowMargin         int             `json:"bow_margin"`
	SternMargin       int             `json:"stern_margin"`
	SideMargin        int             `json:"side_margin"`
	BlockClearance    int             `json:"block_clearance"`
	ClearancePolicy   ClearancePolicy `json:"clearance_policy"`
	RequireAccessLane bool            `json:"require_access_lane"`
	BlockIDs          []string        `json:"block_ids"`
	MaxTimeSeconds    float64         `json:"max_time_seconds"`
}

// Validate fails fast on a configuration that cannot possibly describe a
// feasible carrier, per spec.md §7: non-positive dimensions, margins
// that exceed the dimensions they reserve, or negative clearance.
func (c CarrierConfig) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Reason: "must be positive"}
	}
	if c.BowMargin < 0 || c.SternMargin < 0 || c.SideMargin < 0 {
		return &ConfigError{Field: "margin", Reason: "must be non-negative"}
	}
	if c.BowMargin+c.SternMargin >= c.Width {
		return &ConfigError{Field: "bow_margin/stern_margin", Reason: "margins leave no usable width"}
	}
	if 2*c.SideMargin >= c.Height {
		return &ConfigError{Field: "side_margin", Reason: "margins leave no usable height"}
	}
	if c.BlockClearance < 0 {
		return &ConfigError{Field: "block_clearance", Reason: "must be non-negative"}
	}
	if c.MaxTimeSeconds < 0 {
		return &ConfigError{Field: "max_time_seconds", Reason: "must be non-negative"}
	}
	return nil
}

// UsableInterior returns the bounds of the interior usable for
// placement, per spec.md §3: [SternMargin, Width-BowMargin) ×
// [SideMargin, Height-SideMargin).
func (c CarrierConfig) UsableInterior() (minX, minY, maxX, maxY int) {
	return c.SternMargin, c.SideMargin, c.Width - c.BowMargin, c.Height - c.SideMargin
}

// UsableArea returns the cell count of the usable interior.
func (c CarrierConfig) UsableArea() int {
	minX, minY, maxX, maxY := c.UsableInterior()
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CellInput is the wire shape of a single occupied voxel column: a
// (x, y) offset plus the 2.5D stack triple (below_empty, filled,
// above_empty). filled > 0 marks the cell as occupied, per spec.md §6.
type CellInput struct {
	X          int `json:"x"`
	Y          int `json:"y"`
	BelowEmpty int `json:"below_empty"`
	Filled     int `json:"filled"`
	AboveEmpty int `json:"above_empty"`
}

// BlockInput is the wire shape of a single footprint record from the
// (external) voxeliser: an opaque id, its occupied cells, and optional
// metadata. Metadata is decoded but never read: ToFootprint does not copy
// it into the Footprint, and it does not appear in the PlacementRecord.
type BlockInput struct {
	ID         string         `json:"id"`
	Cells      []CellInput    `json:"cells"`
	AccessMode string         `json:"access_mode,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ToFootprint constructs an immutable Footprint from the wire record.
func (b BlockInput) ToFootprint() (*Footprint, error) {
	access, err := parseAccessMode(b.AccessMode)
	if err != nil {
		return nil, &FootprintError{BlockID: b.ID, Reason: err.Error()}
	}
	cells := make([]Cell, len(b.Cells))
	for i, c := range b.Cells {
		cells[i] = Cell{
			X: c.X, Y: c.Y,
			Stack: Stack{BelowEmpty: c.BelowEmpty, Filled: c.Filled, AboveEmpty: c.AboveEmpty},
		}
	}
	return NewFootprint(b.ID, cells, access)
}

// PackRequest is the complete external request: a carrier configuration
// plus the footprint records it references. It is the top-level shape a
// caller marshals to JSON per spec.md §6.
type PackRequest struct {
	Carrier CarrierConfig `json:"carrier"`
	Blocks  []BlockInput  `json:"blocks"`
}

// Footprints validates the request and builds the footprint set keyed by
// id. It fails fast per spec.md §7 on a bad carrier config, a malformed
// footprint, a duplicate block id, or a BlockIDs entry with no matching
// record.
func (r PackRequest) Footprints() (map[string]*Footprint, error) {
	if err := r.Carrier.Validate(); err != nil {
		return nil, err
	}

	byID := make(map[string]*Footprint, len(r.Blocks))
	for _, b := range r.Blocks {
		if _, dup := byID[b.ID]; dup {
			return nil, &FootprintError{BlockID: b.ID, Reason: "duplicate block id"}
		}
		fp, err := b.ToFootprint()
		if err != nil {
			return nil, err
		}
		byID[b.ID] = fp
	}

	for _, id := range r.Carrier.BlockIDs {
		if _, ok := byID[id]; !ok {
			return nil, &ConfigError{Field: "block_ids", Reason: "unknown block id " + id}
		}
	}

	return byID, nil
}

// OrderedBlockIDs returns the carrier's requested block ids with stable
// de-duplication, preserving the caller's declared order for anything
// downstream that cares about input order (e.g. deterministic tie
// breaking before the engine imposes its own ordering).
func (r PackRequest) OrderedBlockIDs() []string {
	seen := make(map[string]bool, len(r.Carrier.BlockIDs))
	out := make([]string, 0, len(r.Carrier.BlockIDs))
	for _, id := range r.Carrier.BlockIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
