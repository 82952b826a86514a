package plotspec

import (
	"slices"
	"time"

	"github.com/sartorproj/casecurve/timeseries"
)

// Kind is the way a layer is drawn.
type Kind int

const (
	LineKind Kind = iota
	PointsKind
	BubblesKind
)

func (k Kind) String() string {
	switch k {
	case LineKind:
		return "line"
	case PointsKind:
		return "points"
	case BubblesKind:
		return "bubbles"
	}
	return "unknown"
}

// Layer is one data set of a chart. Layer values share no memory with the
// slices they were built from.
type Layer struct {
	Kind   Kind
	Name   string // legend entry; empty means no entry
	X      []float64
	Y      []float64
	Sizes  []float64 // bubble sizes, BubblesKind only
	Dashed bool
}

// Line is a polyline through (x, y).
func Line(name string, x, y []float64) Layer {
	return Layer{Kind: LineKind, Name: name, X: slices.Clone(x), Y: slices.Clone(y)}
}

// Points is a scatter of (x, y).
func Points(name string, x, y []float64) Layer {
	return Layer{Kind: PointsKind, Name: name, X: slices.Clone(x), Y: slices.Clone(y)}
}

// Bubbles is a scatter whose marker area follows sizes. Sizes must be
// positive.
func Bubbles(name string, x, y, sizes []float64) Layer {
	return Layer{Kind: BubblesKind, Name: name, X: slices.Clone(x), Y: slices.Clone(y), Sizes: slices.Clone(sizes)}
}

// WithDashes returns the layer drawn with a dashed line.
func (l Layer) WithDashes() Layer {
	l.Dashed = true
	return l
}

// Spec is a chart: labels, axis settings and an ordered list of layers.
// Every With method returns a new Spec and leaves the receiver unchanged.
type Spec struct {
	title      string
	xLabel     string
	yLabel     string
	logY       bool
	timeFormat string
	layers     []Layer
}

// New starts a chart with a title.
func New(title string) Spec {
	return Spec{title: title}
}

// WithLabels sets the axis labels.
func (s Spec) WithLabels(x, y string) Spec {
	s.xLabel, s.yLabel = x, y
	return s
}

// WithLogY puts the Y axis on a log scale.
func (s Spec) WithLogY() Spec {
	s.logY = true
	return s
}

// WithTimeAxis marks X values as Unix seconds, labelled with format.
func (s Spec) WithTimeAxis(format string) Spec {
	s.timeFormat = format
	return s
}

// With appends layers.
func (s Spec) With(layers ...Layer) Spec {
	s.layers = append(slices.Clip(s.layers), layers...)
	return s
}

// Title returns the chart title.
func (s Spec) Title() string { return s.title }

// LogY reports whether the Y axis is logarithmic.
func (s Spec) LogY() bool { return s.logY }

// Layers returns a copy of the layers.
func (s Spec) Layers() []Layer { return slices.Clone(s.layers) }

// Dates converts timestamps to Unix seconds for a time axis.
func Dates(ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = float64(t.Unix())
	}
	return out
}

// XY returns a series as plot coordinates: dates when it has timestamps,
// indices otherwise.
func XY(s *timeseries.Series) (x, y []float64) {
	if s.HasTimestamps() {
		x = Dates(s.Timestamps)
	} else {
		x = s.Indices()
	}
	return x, slices.Clone(s.Values)
}
