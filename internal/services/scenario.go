package services

// Scenario describes a what-if adjustment of a base prediction.
type Scenario struct {
	Name                 string  `json:"name"`
	GrowthMultiplier     float64 `json:"growth_multiplier"`
	ConfidenceAdjustment float64 `json:"confidence_adjustment"`
}

// ScenarioResult pairs a scenario with its projected prediction.
type ScenarioResult struct {
	Scenario   string            `json:"scenario"`
	Prediction RevenuePrediction `json:"prediction"`
}

// ForecastRevenueScenarios rescales base once per scenario. No forecast is
// re-run: predicted revenue, the upper bound, growth rate and breakdown are
// multiplied by GrowthMultiplier and the lower bound by ConfidenceAdjustment.
func ForecastRevenueScenarios(base RevenuePrediction, scenarios []Scenario) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		p := base
		p.PredictedRevenue *= sc.GrowthMultiplier
		p.ConfidenceInterval.Lower *= sc.ConfidenceAdjustment
		p.ConfidenceInterval.Upper *= sc.GrowthMultiplier
		p.GrowthRate *= sc.GrowthMultiplier
		p.Breakdown = base.Breakdown.Scale(sc.GrowthMultiplier)

		results = append(results, ScenarioResult{Scenario: sc.Name, Prediction: p})
	}
	return results
}
