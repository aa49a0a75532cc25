package model

// Pose is a placement of a block: an origin plus a rotation. It carries
// no reference to the Footprint itself — callers look that up by
// BlockID, keeping Pose cheap to copy into snapshots.
type Pose struct {
	BlockID  string
	X, Y     int
	Rotation Rotation
}
