package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/soltixdb/revenue/internal/utils"
)

// EventPredictionCreated is the type of events emitted after a prediction.
const EventPredictionCreated = "revenue.prediction.created"

// PredictionEvent is published for every successful prediction.
type PredictionEvent struct {
	EventID    string            `json:"event_id"`
	Type       string            `json:"type"`
	PropertyID string            `json:"property_id"`
	Prediction RevenuePrediction `json:"prediction"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// publishPrediction is best effort: failures are logged and counted only.
func (s *RevenueService) publishPrediction(ctx context.Context, p *RevenuePrediction) {
	if s.events == nil {
		return
	}

	event := PredictionEvent{
		EventID:    uuid.NewString(),
		Type:       EventPredictionCreated,
		PropertyID: p.PropertyID,
		Prediction: *p,
		OccurredAt: s.now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		s.metrics.ObserveEvent("error")
		s.logger.WithContext(ctx).Error("Failed to encode prediction event", "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), utils.PublishTimeout)
	defer cancel()

	subject := s.subject + "." + p.PropertyID
	if err := s.events.Publish(pubCtx, subject, data); err != nil {
		s.metrics.ObserveEvent("error")
		s.logger.WithContext(ctx).Warn("Failed to publish prediction event", "subject", subject, "error", err)
		return
	}
	s.metrics.ObserveEvent("success")
}
