package forecast

import (
	"reflect"
	"testing"
)

func TestSeasonalForecaster_RepeatsWeeklyShape(t *testing.T) {
	week := []float64{10, 20, 30, 40, 50, 60, 70}
	values := append(append([]float64{}, week...), week...)

	f := NewSeasonalForecaster()
	points, err := f.Forecast(values, dailyTimes(len(values)), 9)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	for i, p := range points {
		assertClose(t, week[i%7], p.PredictedValue, "seasonal step")
	}
}

func TestSeasonalForecaster_IndexZeroMean(t *testing.T) {
	f := NewSeasonalForecaster()
	index := f.seasonalIndex(make([]float64, 10))
	for p, v := range index {
		if v != 1 {
			t.Errorf("index[%d] = %v, want 1", p, v)
		}
	}
}

func TestSeasonalForecaster_ShortSeriesMatchesExponential(t *testing.T) {
	values := []float64{120, 80, 95, 130, 110}
	times := dailyTimes(len(values))

	seasonal, err := NewSeasonalForecaster().Forecast(values, times, 5)
	if err != nil {
		t.Fatalf("Seasonal forecast failed: %v", err)
	}
	exponential, err := NewExponentialSmoothingForecaster().Forecast(values, times, 5)
	if err != nil {
		t.Fatalf("Exponential forecast failed: %v", err)
	}
	if !reflect.DeepEqual(seasonal, exponential) {
		t.Errorf("Expected identical output\nseasonal:    %+v\nexponential: %+v", seasonal, exponential)
	}
}
