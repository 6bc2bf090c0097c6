package stats

// Summary collects the descriptive statistics of a series. The zero-length
// input produces zeros and empty (non-nil) slices.
type Summary struct {
	Mean              float64    `json:"mean"`
	Median            float64    `json:"median"`
	Mode              []float64  `json:"mode"`
	StandardDeviation float64    `json:"standard_deviation"`
	Variance          float64    `json:"variance"`
	Skewness          float64    `json:"skewness"`
	Kurtosis          float64    `json:"kurtosis"`
	Min               float64    `json:"min"`
	Max               float64    `json:"max"`
	Quartiles         [3]float64 `json:"quartiles"`
	Outliers          []float64  `json:"outliers"`
	Count             int        `json:"count"`
}

// Summarize computes a Summary over values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{Mode: []float64{}, Outliers: []float64{}}
	}
	minV, maxV := MinMax(values)
	return Summary{
		Mean:              Mean(values),
		Median:            Median(values),
		Mode:              Mode(values),
		StandardDeviation: StdDev(values),
		Variance:          Variance(values),
		Skewness:          Skewness(values),
		Kurtosis:          Kurtosis(values),
		Min:               minV,
		Max:               maxV,
		Quartiles:         Quartiles(values),
		Outliers:          Outliers(values),
		Count:             len(values),
	}
}
