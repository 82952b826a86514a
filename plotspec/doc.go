// Package plotspec describes charts as immutable values and renders them
// with gonum/plot.
//
// # Building a chart
//
//	x, y := plotspec.XY(daily.ZeroToUndefined())
//	spec := plotspec.New("US").
//	    WithLabels("date", "new cases").
//	    WithLogY().
//	    WithTimeAxis("Jan 2").
//	    With(plotspec.Points("daily", x, y))
//
// Each With method returns a new Spec, so a base chart can be shared:
//
//	withFit := spec.With(plotspec.Line("fit", fx, fy).WithDashes())
//
// # Rendering
//
//	st, err := plotspec.Render(withFit, "us.png", 8*vg.Inch, 5*vg.Inch)
//
// NaN points and, on a log axis, zero or negative points are not drawn.
// RenderStats reports how many of each were dropped.
package plotspec
