// Package stats provides residual diagnostics and accuracy measures for
// fitted curves.
//
// # Autocorrelation
//
//	residuals := timeseries.New(res.Residuals)
//	acf := stats.ACF(residuals, 10)
//
//	// H0: no autocorrelation up to lag 10; 2 parameters were estimated.
//	lb := stats.LjungBox(residuals, 10, 2)
//	if lb != nil && lb.Autocorrelated(0.05) {
//	    // the model leaves structure in the residuals
//	}
//
// # Accuracy
//
//	stats.RMSE(res.Y, res.Fitted)
//	stats.MAE(res.Y, res.Fitted)
//	stats.MAPE(res.Y, res.Fitted) // percent, zero actuals skipped
//	stats.RSquared(res.Y, res.Fitted)
package stats
