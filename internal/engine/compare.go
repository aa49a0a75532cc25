package engine

import (
	"context"

	"github.com/jdock/deckpack/internal/model"
)

// Scenario names a Carrier configuration variant to run the Search Engine
// against, grounded on the teacher's ComparisonScenario (different
// clearance, margins, neighbourhood policy, or scoring weights over the
// same block set).
type Scenario struct {
	Name    string
	Carrier model.CarrierConfig
	Options Options
}

// ComparisonResult holds one scenario's run and its derived statistics.
type ComparisonResult struct {
	Scenario    Scenario
	Record      model.PlacementRecord
	Utilisation float64
}

// CompareScenarios runs the Search Engine once per scenario over the same
// block set and returns the results in scenario order, grounded on the
// teacher's CompareScenarios (internal/engine/compare.go).
func CompareScenarios(scenarios []Scenario, blocks []model.BlockInput) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, sc := range scenarios {
		req := model.PackRequest{Carrier: sc.Carrier, Blocks: blocks}
		rec, err := Search(context.Background(), req, sc.Options)
		if err != nil {
			return nil, err
		}
		util := 0.0
		if rec.TotalCount > 0 {
			util = (rec.Score - 0.7*rec.SuccessRate) / 0.3
		}
		results = append(results, ComparisonResult{Scenario: sc, Record: rec, Utilisation: util})
	}
	return results, nil
}

// BuildDefaultScenarios generates what-if variants of baseCarrier,
// grounded on the teacher's BuildDefaultScenarios: the same carrier under
// the alternate clearance neighbourhood policy, with no margins, and with
// clearance doubled.
func BuildDefaultScenarios(baseCarrier model.CarrierConfig) []Scenario {
	scenarios := []Scenario{
		{Name: "current configuration", Carrier: baseCarrier, Options: DefaultOptions()},
	}

	altPolicy := baseCarrier
	if baseCarrier.ClearancePolicy == model.ClearanceChebyshev {
		altPolicy.ClearancePolicy = model.ClearanceManhattan
		scenarios = append(scenarios, Scenario{Name: "manhattan clearance", Carrier: altPolicy, Options: DefaultOptions()})
	} else {
		altPolicy.ClearancePolicy = model.ClearanceChebyshev
		scenarios = append(scenarios, Scenario{Name: "chebyshev clearance", Carrier: altPolicy, Options: DefaultOptions()})
	}

	if baseCarrier.BowMargin > 0 || baseCarrier.SternMargin > 0 || baseCarrier.SideMargin > 0 {
		noMargins := baseCarrier
		noMargins.BowMargin, noMargins.SternMargin, noMargins.SideMargin = 0, 0, 0
		scenarios = append(scenarios, Scenario{Name: "no margins", Carrier: noMargins, Options: DefaultOptions()})
	}

	if baseCarrier.BlockClearance > 0 {
		tighter := baseCarrier
		tighter.BlockClearance *= 2
		scenarios = append(scenarios, Scenario{Name: "doubled clearance", Carrier: tighter, Options: DefaultOptions()})
	}

	return scenarios
}
