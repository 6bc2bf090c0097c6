package models

import "github.com/soltixdb/revenue/internal/services"

// ScenarioRequest represents a scenario projection request
type ScenarioRequest struct {
	BasePrediction *services.RevenuePrediction `json:"base_prediction"`
	Scenarios      []services.Scenario         `json:"scenarios"`
}
