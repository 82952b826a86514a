// Package timeseries provides the series type and the differencing
// operations used on cumulative case counts.
//
// # Creating a Series
//
// A series is usually produced by the table package with one timestamp per
// day. It can also be built directly:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// # From cumulative to daily counts
//
//	daily := cumulative.Diff()                              // daily deltas, may be negative
//	avg := daily.MovingAverage(timeseries.DefaultWindow)    // trailing 7-day mean
//	logReady := daily.ZeroToUndefined()                     // zeros become NaN
//
// Diff and Cumulate are inverses:
//
//	back := cumulative.Diff().Cumulate(cumulative.Values[0])
//
// # Exporting
//
// Series of different lengths are joined on their timestamps:
//
//	err := timeseries.SaveCSV("us.csv", cumulative, daily, avg)
package timeseries
