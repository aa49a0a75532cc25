package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdock/deckpack/internal/model"
)

func solidBlock(id string, w, h int) model.BlockInput {
	var cells []model.CellInput
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, model.CellInput{X: x, Y: y, Filled: 1})
		}
	}
	return model.BlockInput{ID: id, Cells: cells}
}

func lShapedBlock(id string) model.BlockInput {
	// 3x3 bounding box, 5 filled cells, per spec.md S6.
	coords := [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {0, 2}}
	cells := make([]model.CellInput, len(coords))
	for i, c := range coords {
		cells[i] = model.CellInput{X: c[0], Y: c[1], Filled: 1}
	}
	return model.BlockInput{ID: id, Cells: cells}
}

func TestSearch_S1_SingleSolidBlockFillsCarrier(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 10, Height: 10, MaxTimeSeconds: 1, BlockIDs: []string{"b1"}},
		Blocks:  []model.BlockInput{solidBlock("b1", 10, 10)},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, rec.Placed, 1)
	assert.Equal(t, "b1", rec.Placed[0].ID)
	assert.Equal(t, 0, rec.Placed[0].X)
	assert.Equal(t, 0, rec.Placed[0].Y)
	assert.True(t, rec.Complete)
}

func TestSearch_S2_TwoSquares_BothPlaced(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 10, Height: 5, MaxTimeSeconds: 1, BlockIDs: []string{"A", "B"}},
		Blocks:  []model.BlockInput{solidBlock("A", 5, 5), solidBlock("B", 5, 5)},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, rec.PlacedCount)
	assert.True(t, rec.Complete)
}

func TestSearch_S3_ClearanceForbidsSecondBlock(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 10, Height: 5, BlockClearance: 1, MaxTimeSeconds: 1, BlockIDs: []string{"A", "B"}},
		Blocks:  []model.BlockInput{solidBlock("A", 5, 5), solidBlock("B", 5, 5)},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.PlacedCount)
	assert.False(t, rec.Complete)
}

func TestSearch_S4_RotationRequiredForBothBlocksToFit(t *testing.T) {
	// Width 4 is too narrow for either 5x3 block to fit un-rotated; both
	// must rotate to 3x5 and stack along the height-10 axis. See
	// DESIGN.md's note on spec.md §8's S4 table for why the original
	// 8x4/2-block fixture was geometrically infeasible.
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 4, Height: 10, MaxTimeSeconds: 1, BlockIDs: []string{"wide", "tall"}},
		Blocks:  []model.BlockInput{solidBlock("wide", 5, 3), solidBlock("tall", 5, 3)},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, rec.PlacedCount)
	assert.True(t, rec.Complete)
}

func TestSearch_S5_MarginsLimitToOneBlock(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{
			Width: 12, Height: 4, SternMargin: 2, BowMargin: 2, MaxTimeSeconds: 1,
			BlockIDs: []string{"A", "B"},
		},
		Blocks: []model.BlockInput{solidBlock("A", 5, 4), solidBlock("B", 5, 4)},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.PlacedCount)
}

func TestSearch_S6_LShapedBlocksPackNonRectangular(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 6, Height: 6, MaxTimeSeconds: 2, BlockIDs: []string{"l1", "l2", "l3"}},
		Blocks:  []model.BlockInput{lShapedBlock("l1"), lShapedBlock("l2"), lShapedBlock("l3")},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, rec.PlacedCount)
}

func TestSearch_EmptyBlockList_ReturnsCompleteEmptyRecord(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 10, Height: 10, MaxTimeSeconds: 1},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, rec.PlacedCount)
	assert.Equal(t, 0, rec.TotalCount)
	assert.True(t, rec.Complete)
}

func TestSearch_ZeroTimeBudget_NeverCrashesReturnsBestSoFar(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 10, Height: 10, MaxTimeSeconds: 0, BlockIDs: []string{"b1"}},
		Blocks:  []model.BlockInput{solidBlock("b1", 3, 3)},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.PlacedCount, 0)
	assert.LessOrEqual(t, rec.PlacedCount, 1)
}

func TestSearch_BlockLargerThanInterior_IsUnplacedNotAnError(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 4, Height: 4, MaxTimeSeconds: 1, BlockIDs: []string{"big"}},
		Blocks:  []model.BlockInput{solidBlock("big", 10, 10)},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, rec.PlacedCount)
	assert.Equal(t, []string{"big"}, rec.UnplacedIDs)
	assert.False(t, rec.Complete)
}

func TestSearch_PropertyScoreWithinBounds(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 10, Height: 5, MaxTimeSeconds: 1, BlockIDs: []string{"A", "B"}},
		Blocks:  []model.BlockInput{solidBlock("A", 5, 5), solidBlock("B", 5, 5)},
	}
	rec, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.Score, 0.0)
	assert.LessOrEqual(t, rec.Score, 1.0)
	assert.Equal(t, rec.PlacedCount+len(rec.UnplacedIDs), rec.TotalCount)
}

func TestSearch_Deterministic_SameInputsYieldByteIdenticalRecord(t *testing.T) {
	req := model.PackRequest{
		Carrier: model.CarrierConfig{Width: 10, Height: 5, MaxTimeSeconds: 1, BlockIDs: []string{"A", "B"}},
		Blocks:  []model.BlockInput{solidBlock("A", 5, 5), solidBlock("B", 5, 5)},
	}
	rec1, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)
	rec2, err := Search(context.Background(), req, DefaultOptions())
	require.NoError(t, err)

	rec1.ElapsedSeconds, rec2.ElapsedSeconds = 0, 0
	assert.Equal(t, rec1, rec2)
}
