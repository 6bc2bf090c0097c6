package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/soltixdb/revenue/internal/analytics"
	"github.com/soltixdb/revenue/internal/analytics/forecast"
	"github.com/soltixdb/revenue/internal/analytics/stats"
	"github.com/soltixdb/revenue/internal/analytics/trend"
	"github.com/soltixdb/revenue/internal/history"
)

// Output of the -stats mode
type summaryOutput struct {
	PropertyID string         `json:"property_id"`
	Statistics stats.Summary  `json:"statistics"`
	Trend      trend.Analysis `json:"trend"`
}

// Output of the default forecast mode
type forecastOutput struct {
	PropertyID string                   `json:"property_id"`
	Method     forecast.Method          `json:"method"`
	DataPoints int                      `json:"data_points"`
	Forecast   []forecast.ForecastPoint `json:"forecast"`
}

func main() {
	// Command line flags
	file := flag.String("file", "", "CSV file with property_id,date,revenue rows")
	property := flag.String("property", "", "Property ID to forecast (default: first property in the file)")
	method := flag.String("method", string(forecast.MethodDampedDrift), "Forecasting method")
	periods := flag.Int("periods", 7, "Number of days to forecast")
	showStats := flag.Bool("stats", false, "Print the statistical summary and trend instead of a forecast")

	flag.Parse()

	if *file == "" {
		log.Fatal("Error: -file parameter is required")
	}

	src := history.NewMemorySource()
	n, err := src.LoadCSVFile(*file)
	if err != nil {
		log.Fatalf("Error loading %s: %v\n", *file, err)
	}

	propertyID := *property
	if propertyID == "" {
		ids := src.Properties()
		if len(ids) == 0 {
			log.Fatalf("Error: %s contains no samples\n", *file)
		}
		propertyID = ids[0]
	}
	fmt.Fprintf(os.Stderr, "Loaded %d samples, using property %s\n", n, propertyID)

	raw, err := src.FetchRevenueData(context.Background(), propertyID, time.Time{}, time.Unix(1<<40, 0))
	if err != nil {
		log.Fatalf("Error reading samples: %v\n", err)
	}
	series, err := analytics.ValidateSeries(raw)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	var out interface{}
	if *showStats {
		out = summaryOutput{
			PropertyID: propertyID,
			Statistics: stats.Summarize(series.Values()),
			Trend:      trend.Analyze(series),
		}
	} else {
		f, err := forecast.Get(*method)
		if err != nil {
			log.Fatalf("Error: %v (available: %v)\n", err, forecast.ListMethods())
		}
		points, err := f.Forecast(series.Values(), series.Times(), *periods)
		if err != nil {
			log.Fatalf("Error forecasting: %v\n", err)
		}
		out = forecastOutput{
			PropertyID: propertyID,
			Method:     f.Method(),
			DataPoints: series.Len(),
			Forecast:   points,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Error writing output: %v\n", err)
	}
}
