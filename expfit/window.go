package expfit

import (
	"fmt"
	"math"

	"github.com/sartorproj/casecurve/stats"
	"github.com/sartorproj/casecurve/timeseries"
)

// Window is a half-open index range [Start, End) of a daily series. It is
// chosen by the analyst; nothing here searches for a good window.
type Window struct {
	Start int
	End   int
}

// Len returns the number of points in the window.
func (w Window) Len() int { return w.End - w.Start }

func (w Window) String() string { return fmt.Sprintf("[%d, %d)", w.Start, w.End) }

// WindowError reports a window that does not fit the series.
type WindowError struct {
	Window Window
	Len    int
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("expfit: window %s does not fit a series of length %d (need at least 2 points)", e.Window, e.Len)
}

func (e *WindowError) Is(target error) bool { return target == ErrInvalidInput }

// FitWindow fits the points of daily inside w. The x values are the indices
// into daily, so the fitted curve lines up with the whole series.
func FitWindow(daily *timeseries.Series, w Window, guess Params, opts *Options) (*Result, error) {
	if w.Start < 0 || w.End > daily.Len() || w.Len() < 2 {
		return nil, &WindowError{Window: w, Len: daily.Len()}
	}

	x := make([]float64, 0, w.Len())
	for i := w.Start; i < w.End; i++ {
		x = append(x, float64(i))
	}
	return Fit(x, daily.Slice(w.Start, w.End).Values, guess, opts)
}

// Predict evaluates the fitted model at each x.
func (r *Result) Predict(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = r.Eval(v)
	}
	return out
}

// Curve returns the fitted model as a function, for plotting.
func (r *Result) Curve() func(float64) float64 {
	p := r.Params
	return p.Eval
}

// DoublingTime is ln 2 / α in index units (days). It is only defined for a
// growing curve.
func (r *Result) DoublingTime() (float64, bool) {
	if r.Rate <= 0 {
		return math.Inf(1), false
	}
	return math.Ln2 / r.Rate, true
}

// Summary describes the quality of a fit.
type Summary struct {
	Params       Params
	Iterations   int
	NObs         int
	SSE          float64
	RMSE         float64
	MAE          float64
	MAPE         float64 // percent; zero counts are skipped
	RSquared     float64
	DoublingTime float64 // +Inf when the curve is not growing
	LjungBox     *stats.LjungBoxResult
}

// Summary returns accuracy measures and a Ljung-Box test on the residuals.
func (r *Result) Summary() *Summary {
	doubling, _ := r.DoublingTime()
	lags := min(10, len(r.Residuals)-1)

	return &Summary{
		Params:       r.Params,
		Iterations:   r.Iterations,
		NObs:         len(r.Y),
		SSE:          r.SSE,
		RMSE:         stats.RMSE(r.Y, r.Fitted),
		MAE:          stats.MAE(r.Y, r.Fitted),
		MAPE:         stats.MAPE(r.Y, r.Fitted),
		RSquared:     stats.RSquared(r.Y, r.Fitted),
		DoublingTime: doubling,
		LjungBox:     stats.LjungBox(timeseries.New(r.Residuals), lags, 2),
	}
}
