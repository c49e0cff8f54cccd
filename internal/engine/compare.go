package engine

import (
	"fmt"

	"github.com/piwi3910/BoardCut/internal/model"
)

// ComparisonScenario defines a named stock list to plan against.
type ComparisonScenario struct {
	Name          string
	Boards        []model.BoardSpec
	PricePerBoard float64 // Applied to every board used; 0 when unknown
}

// ComparisonResult holds the plan and computed statistics for one scenario.
type ComparisonResult struct {
	Scenario         ComparisonScenario
	Result           model.PlanResult
	BoardsUsed       int
	WasteInches      float64
	ShortfallInches  float64
	EfficiencyPct    float64
	UnsatisfiedCount int
	EstimatedCost    float64
}

// CompareScenarios plans the same cut list against every scenario and returns
// the results in scenario order. A unit error in any scenario aborts the run.
func (o *Optimizer) CompareScenarios(scenarios []ComparisonScenario, cuts []model.CutSpec) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := o.Optimize(scenario.Boards, cuts)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		used := result.BoardsUsed()
		results = append(results, ComparisonResult{
			Scenario:         scenario,
			Result:           result,
			BoardsUsed:       used,
			WasteInches:      result.TotalWasteInches,
			ShortfallInches:  result.AdditionalMaterialNeededInches,
			EfficiencyPct:    result.Efficiency(),
			UnsatisfiedCount: len(result.UnsatisfiedCuts),
			EstimatedCost:    float64(used) * scenario.PricePerBoard,
		})
	}

	return results, nil
}

// BuildPresetScenarios creates one scenario per board preset, stocking enough
// boards of that length to cover the cut list. Cuts longer than a preset
// cannot be placed on it; those scenarios still run and report the shortfall.
func (o *Optimizer) BuildPresetScenarios(presets []model.BoardPreset, cuts []model.CutSpec) ([]ComparisonScenario, error) {
	scenarios := make([]ComparisonScenario, 0, len(presets))
	for _, p := range presets {
		length, err := p.LengthInches()
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		est, err := model.CalculatePurchaseEstimate(cuts, length, o.Settings.KerfInches, 0, p.PricePerBoard)
		if err != nil {
			return nil, err
		}
		// One extra board absorbs fragmentation the linear estimate ignores.
		qty := est.BoardsNeededMin + 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:          p.Name,
			Boards:        []model.BoardSpec{p.ToBoardSpec(qty)},
			PricePerBoard: p.PricePerBoard,
		})
	}
	return scenarios, nil
}

// BestScenario returns the index of the result with no shortfall and the
// least waste, or -1 when every scenario falls short. Earlier scenarios win ties.
func BestScenario(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.ShortfallInches > 0 {
			continue
		}
		if best < 0 || r.WasteInches < results[best].WasteInches-fitEpsilon {
			best = i
		}
	}
	return best
}
