package stats

// Regression is the result of an ordinary least squares fit y = Slope*x + Intercept.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// Predict evaluates the fitted line at x.
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// LinearRegression fits y against x with the closed-form OLS solution.
//
// A constant x (zero denominator) or constant y (zero total sum of squares)
// produces Slope 0 and RSquared 0; the intercept is then the mean of y.
// Mismatched or empty inputs return the zero Regression.
func LinearRegression(x, y []float64) Regression {
	n := len(x)
	if n == 0 || n != len(y) {
		return Regression{}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}
	nf := float64(n)

	meanY := sumY / nf
	ssTot := 0.0
	for _, v := range y {
		ssTot += (v - meanY) * (v - meanY)
	}

	denom := nf*sumX2 - sumX*sumX
	if denom == 0 || ssTot == 0 {
		return Regression{Intercept: meanY}
	}

	slope := (nf*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / nf

	ssRes := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - (slope*x[i] + intercept)
		ssRes += r * r
	}

	return Regression{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  1 - ssRes/ssTot,
	}
}

// Index returns 0..n-1 as float64, the x axis used for evenly spaced series.
func Index(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}
