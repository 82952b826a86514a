package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RMSE is the root mean squared error. Returns NaN for empty or
// mismatched input.
func RMSE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}
	return floats.Distance(actual, predicted, 2) / math.Sqrt(float64(len(actual)))
}

// MAE is the mean absolute error.
func MAE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}
	return floats.Distance(actual, predicted, 1) / float64(len(actual))
}

// MAPE is the mean absolute percentage error, skipping zero actuals.
func MAPE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}

	sum := 0.0
	count := 0
	for i, a := range actual {
		if a == 0 {
			continue
		}
		sum += math.Abs((a - predicted[i]) / a)
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return 100 * sum / float64(count)
}

// RSquared is the coefficient of determination of predicted against actual.
func RSquared(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}
	return stat.RSquaredFrom(predicted, actual, nil)
}
