// Package expfit fits the exponential growth model
//
//	y = c·e^(αx)
//
// to a window of daily counts by nonlinear least squares
// (Levenberg-Marquardt).
//
// # Basic Usage
//
// The analyst picks the window and the starting point:
//
//	res, err := expfit.FitWindow(daily, expfit.Window{Start: 40, End: 60},
//	    expfit.Params{Scale: 1, Rate: 0.1}, nil)
//	if errors.Is(err, expfit.ErrNonConvergence) {
//	    // do not plot the coefficients
//	}
//
//	fmt.Printf("c=%.3f α=%.4f\n", res.Scale, res.Rate)
//	if d, ok := res.DoublingTime(); ok {
//	    fmt.Printf("doubling every %.1f days\n", d)
//	}
//
// # Diagnostics
//
//	s := res.Summary() // RMSE, MAE, MAPE, R², Ljung-Box on residuals
//
// A straight line through log(y) gives a quick second opinion on the rate:
//
//	p, n, ok := expfit.LogLinear(daily, w)
//
// Fit accepts raw x/y slices when the points do not come from a series.
package expfit
