// Package casecurve explores cumulative confirmed-case time series.
//
// The packages form a short pipeline. A delimited table with one row per
// region (and optional sub-region) and one column per date is loaded,
// one row is turned into a dated cumulative series, the series is
// differenced into daily counts and smoothed with a trailing 7-day average,
// and an exponential curve scale·e^(rate·day) is fitted by nonlinear least
// squares to a window the analyst picks.
//
// # Quick Start
//
// Load the table and fit the US curve over days 30 to 60:
//
//	t, _ := table.Load("cases.csv", nil)
//	t.RenameColumns()
//	row, _ := table.FindRow(t, "US")
//	cumulative, _ := t.Series(row)
//	daily := cumulative.Diff()
//	res, err := expfit.FitWindow(daily, expfit.Window{Start: 30, End: 60},
//		expfit.Params{Scale: 1, Rate: 0.1}, nil)
//	if errors.Is(err, expfit.ErrNonConvergence) {
//		// pick another window or guess
//	}
//	fmt.Println(res.Scale, res.Rate)
//
// # Packages
//
//   - table: loading the case table, entities, row lookup and extraction
//   - timeseries: series type, differencing, moving average, CSV export
//   - expfit: Levenberg-Marquardt exponential fit and fit summaries
//   - stats: accuracy measures, ACF and the Ljung-Box test
//   - geo: per-day map markers joined from coordinates and daily counts
//   - plotspec: immutable chart descriptions rendered with gonum/plot
//   - fetch: downloading the table and the country shapes archive
//   - config: YAML configuration with environment overrides
//
// The casecurve command in cmd/casecurve wires them together.
package casecurve
