package expfit

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/casecurve/timeseries"
)

// LogLinear estimates the model by ordinary least squares on log(y) over
// the window, x being the index into daily. Non-positive counts have no
// logarithm and are skipped. ok is false when the window does not fit or
// fewer than two points remain.
//
// The estimate weights every point equally in log space, so it differs from
// FitWindow on noisy data. It is a cheap check of the fitted rate and a
// reasonable starting guess.
func LogLinear(daily *timeseries.Series, w Window) (p Params, n int, ok bool) {
	if w.Start < 0 || w.End > daily.Len() || w.Len() < 2 {
		return Params{}, 0, false
	}

	logs := daily.Slice(w.Start, w.End).Log()
	x := make([]float64, 0, w.Len())
	y := make([]float64, 0, w.Len())
	for i, v := range logs.Values {
		if math.IsNaN(v) {
			continue
		}
		x = append(x, float64(w.Start+i))
		y = append(y, v)
	}
	if len(x) < 2 {
		return Params{}, len(x), false
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	if !isFinite(intercept) || !isFinite(slope) {
		return Params{}, len(x), false
	}
	return Params{Scale: math.Exp(intercept), Rate: slope}, len(x), true
}
