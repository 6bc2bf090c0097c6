package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/soltixdb/revenue/internal/analytics/forecast"
)

// Category shares of predicted revenue. The split is fixed, not learned.
var (
	roomShare       = decimal.RequireFromString("0.60")
	restaurantShare = decimal.RequireFromString("0.25")
	spaShare        = decimal.RequireFromString("0.10")
)

// Breakdown splits a revenue figure by category.
type Breakdown struct {
	Room       float64 `json:"room"`
	Restaurant float64 `json:"restaurant"`
	Spa        float64 `json:"spa"`
	Other      float64 `json:"other"`
}

// Total returns the sum of all categories.
func (b Breakdown) Total() float64 {
	return b.Room + b.Restaurant + b.Spa + b.Other
}

// Scale multiplies every category by factor.
func (b Breakdown) Scale(factor float64) Breakdown {
	return Breakdown{
		Room:       b.Room * factor,
		Restaurant: b.Restaurant * factor,
		Spa:        b.Spa * factor,
		Other:      b.Other * factor,
	}
}

// splitRevenue applies 60/25/10/5. Other takes the remainder so the parts
// add up to total before conversion back to float64.
func splitRevenue(total float64) Breakdown {
	t := decimal.NewFromFloat(total)
	room := t.Mul(roomShare)
	restaurant := t.Mul(restaurantShare)
	spa := t.Mul(spaShare)
	other := t.Sub(room).Sub(restaurant).Sub(spa)

	return Breakdown{
		Room:       room.InexactFloat64(),
		Restaurant: restaurant.InexactFloat64(),
		Spa:        spa.InexactFloat64(),
		Other:      other.InexactFloat64(),
	}
}

// RevenuePrediction is the headline forecast for one property.
type RevenuePrediction struct {
	PropertyID         string                      `json:"property_id"`
	Period             PeriodName                  `json:"period"`
	Method             forecast.Method             `json:"method"`
	ForecastDate       time.Time                   `json:"forecast_date"`
	PredictedRevenue   float64                     `json:"predicted_revenue"`
	ConfidenceInterval forecast.ConfidenceInterval `json:"confidence_interval"`
	Breakdown          Breakdown                   `json:"breakdown"`
	GrowthRate         float64                     `json:"growth_rate"`
}

// growthRate is the relative change from current to predicted, 0 when
// current is 0.
func growthRate(predicted, current float64) float64 {
	if current == 0 {
		return 0
	}
	return (predicted - current) / current
}
