package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdock/deckpack/internal/model"
)

func TestOracle_ClearanceManhattan_RejectsEdgeAdjacentButAllowsDiagonal(t *testing.T) {
	cfg := baseCarrier()
	cfg.BlockClearance = 1
	cfg.ClearancePolicy = model.ClearanceManhattan
	g, err := New(cfg)
	require.NoError(t, err)

	// a occupies (5,5)-(6,6).
	a := solidFootprint(t, "a", 2, 2)
	require.True(t, g.Place(a, model.Rotation0, 5, 5))

	// (7,6) is 1 Manhattan step from a's nearest cell (6,6): rejected.
	b := solidFootprint(t, "b", 1, 1)
	assert.False(t, g.CanPlace(b, model.Rotation0, 7, 6))

	// (7,7) is 2 Manhattan steps from a's nearest cell (6,6): allowed.
	c := solidFootprint(t, "c", 1, 1)
	assert.True(t, g.CanPlace(c, model.Rotation0, 7, 7))
}

func TestOracle_ClearanceChebyshev_RejectsWithinSquareRadius(t *testing.T) {
	cfg := baseCarrier()
	cfg.BlockClearance = 1
	cfg.ClearancePolicy = model.ClearanceChebyshev
	g, err := New(cfg)
	require.NoError(t, err)

	// a occupies (5,5)-(6,6).
	a := solidFootprint(t, "a", 2, 2)
	require.True(t, g.Place(a, model.Rotation0, 5, 5))

	// (7,7) is Chebyshev distance 1 from a's nearest cell (6,6): rejected
	// under Chebyshev even though the Manhattan test above allows it.
	b := solidFootprint(t, "b", 1, 1)
	assert.False(t, g.CanPlace(b, model.Rotation0, 7, 7))
}

func TestOracle_ZeroClearance_AllowsTouching(t *testing.T) {
	cfg := baseCarrier()
	cfg.BlockClearance = 0
	g, err := New(cfg)
	require.NoError(t, err)

	a := solidFootprint(t, "a", 2, 2)
	require.True(t, g.Place(a, model.Rotation0, 5, 5))

	b := solidFootprint(t, "b", 2, 2)
	assert.True(t, g.CanPlace(b, model.Rotation0, 7, 5))
}

func TestOracle_AccessLane_RejectsBlockedTransporterPath(t *testing.T) {
	cfg := baseCarrier()
	cfg.RequireAccessLane = true
	g, err := New(cfg)
	require.NoError(t, err)

	blocker := solidFootprint(t, "blocker", 2, 2)
	require.True(t, g.Place(blocker, model.Rotation0, 0, 5))

	transporterBlock := solidFootprint(t, "t1", 2, 2)
	assert.False(t, g.CanPlace(transporterBlock, model.Rotation0, 5, 5))
}

func TestOracle_AccessLane_IgnoresCraneBlocks(t *testing.T) {
	cfg := baseCarrier()
	cfg.RequireAccessLane = true
	g, err := New(cfg)
	require.NoError(t, err)

	blocker := solidFootprint(t, "blocker", 2, 2)
	require.True(t, g.Place(blocker, model.Rotation0, 0, 5))

	craneCells := []model.Cell{{X: 0, Y: 0, Stack: model.Stack{Filled: 1}}, {X: 1, Y: 0, Stack: model.Stack{Filled: 1}}}
	craneFp, err := model.NewFootprint("crane1", craneCells, model.AccessCrane)
	require.NoError(t, err)

	assert.True(t, g.CanPlace(craneFp, model.Rotation0, 5, 5))
}

func TestOracle_AccessLane_DisabledByDefault(t *testing.T) {
	cfg := baseCarrier()
	g, err := New(cfg)
	require.NoError(t, err)

	blocker := solidFootprint(t, "blocker", 2, 2)
	require.True(t, g.Place(blocker, model.Rotation0, 0, 5))

	transporterBlock := solidFootprint(t, "t1", 2, 2)
	assert.True(t, g.CanPlace(transporterBlock, model.Rotation0, 5, 5))
}
