package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdock/deckpack/internal/model"
)

func TestCompareScenarios_RunsEveryScenario(t *testing.T) {
	base := model.CarrierConfig{Width: 10, Height: 5, BlockClearance: 1, MaxTimeSeconds: 1, BlockIDs: []string{"A", "B"}}
	blocks := []model.BlockInput{solidBlock("A", 5, 5), solidBlock("B", 5, 5)}

	scenarios := BuildDefaultScenarios(base)
	require.NotEmpty(t, scenarios)

	results, err := CompareScenarios(scenarios, blocks)
	require.NoError(t, err)
	assert.Len(t, results, len(scenarios))

	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
		assert.Equal(t, 2, r.Record.TotalCount)
	}
}

func TestCompareScenarios_NoMarginsScenarioPlacesAtLeastAsMany(t *testing.T) {
	base := model.CarrierConfig{
		Width: 12, Height: 4, SternMargin: 2, BowMargin: 2, MaxTimeSeconds: 1,
		BlockIDs: []string{"A", "B"},
	}
	blocks := []model.BlockInput{solidBlock("A", 5, 4), solidBlock("B", 5, 4)}

	scenarios := BuildDefaultScenarios(base)
	results, err := CompareScenarios(scenarios, blocks)
	require.NoError(t, err)

	var withMargins, withoutMargins *ComparisonResult
	for i := range results {
		switch results[i].Scenario.Name {
		case "current configuration":
			withMargins = &results[i]
		case "no margins":
			withoutMargins = &results[i]
		}
	}
	require.NotNil(t, withMargins)
	require.NotNil(t, withoutMargins)
	assert.GreaterOrEqual(t, withoutMargins.Record.PlacedCount, withMargins.Record.PlacedCount)
}
