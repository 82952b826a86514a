package plotspec

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when no layer has a drawable point.
var ErrNoData = errors.New("plotspec: nothing to draw")

// MaxBubbleRadius is the radius of the largest bubble of a layer.
var MaxBubbleRadius = vg.Points(18)

// RenderStats counts the points of a chart. Undefined points (NaN) and
// points that cannot sit on a log axis (zero or negative) are counted
// separately; neither is drawn.
type RenderStats struct {
	Plotted     int
	Undefined   int
	NonPositive int
}

// Build turns a spec into a gonum plot.
func Build(s Spec) (*plot.Plot, RenderStats, error) {
	var st RenderStats

	p := plot.New()
	p.Title.Text = s.title
	p.X.Label.Text = s.xLabel
	p.Y.Label.Text = s.yLabel
	p.Legend.Top = true
	if s.logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if s.timeFormat != "" {
		p.X.Tick.Marker = plot.TimeTicks{Format: s.timeFormat}
	}
	p.Add(plotter.NewGrid())

	for i, l := range s.layers {
		if len(l.X) != len(l.Y) || (l.Kind == BubblesKind && len(l.Sizes) != len(l.X)) {
			return nil, st, fmt.Errorf("plotspec: layer %d (%s): mismatched lengths", i, l.Kind)
		}

		xys, kept := clean(l.X, l.Y, s.logY, &st)
		if len(xys) == 0 {
			continue
		}
		color := plotutil.Color(i)

		switch l.Kind {
		case LineKind:
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, st, err
			}
			line.LineStyle.Color = color
			line.LineStyle.Width = vg.Points(1.5)
			if l.Dashed {
				line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
			}
			p.Add(line)
			if l.Name != "" {
				p.Legend.Add(l.Name, line)
			}

		case PointsKind:
			scatter, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, st, err
			}
			scatter.GlyphStyle.Color = color
			scatter.GlyphStyle.Shape = draw.CircleGlyph{}
			scatter.GlyphStyle.Radius = vg.Points(2)
			p.Add(scatter)
			if l.Name != "" {
				p.Legend.Add(l.Name, scatter)
			}

		case BubblesKind:
			scatter, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, st, err
			}
			sizes := make([]float64, len(kept))
			largest := 0.0
			for j, idx := range kept {
				sizes[j] = l.Sizes[idx]
				largest = math.Max(largest, sizes[j])
			}
			scatter.GlyphStyleFunc = func(j int) draw.GlyphStyle {
				return draw.GlyphStyle{
					Color:  color,
					Shape:  draw.RingGlyph{},
					Radius: bubbleRadius(sizes[j], largest),
				}
			}
			p.Add(scatter)
			if l.Name != "" {
				p.Legend.Add(l.Name, scatter)
			}

		default:
			return nil, st, fmt.Errorf("plotspec: layer %d: unknown kind %d", i, l.Kind)
		}
	}

	if st.Plotted == 0 {
		return nil, st, ErrNoData
	}
	return p, st, nil
}

// Render builds the chart and saves it to path. The image format follows
// the file extension (png, svg, pdf, ...).
func Render(s Spec, path string, width, height vg.Length) (RenderStats, error) {
	p, st, err := Build(s)
	if err != nil {
		return st, err
	}
	if err := p.Save(width, height, path); err != nil {
		return st, fmt.Errorf("plotspec: save %s: %w", path, err)
	}
	return st, nil
}

// clean drops points gonum cannot draw and returns the rest with their
// original indices.
func clean(x, y []float64, logY bool, st *RenderStats) (plotter.XYs, []int) {
	xys := make(plotter.XYs, 0, len(x))
	kept := make([]int, 0, len(x))
	for i := range x {
		switch {
		case math.IsNaN(y[i]) || math.IsNaN(x[i]) || math.IsInf(y[i], 0) || math.IsInf(x[i], 0):
			st.Undefined++
		case logY && y[i] <= 0:
			st.NonPositive++
		default:
			xys = append(xys, plotter.XY{X: x[i], Y: y[i]})
			kept = append(kept, i)
			st.Plotted++
		}
	}
	return xys, kept
}

// bubbleRadius scales radius with the square root of size so bubble area
// follows size.
func bubbleRadius(size, largest float64) vg.Length {
	if largest <= 0 || size <= 0 {
		return vg.Points(1)
	}
	return vg.Length(math.Max(1, math.Sqrt(size/largest)*float64(MaxBubbleRadius)))
}
