package plotspec

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/sartorproj/casecurve/timeseries"
)

func TestSpecIsImmutable(t *testing.T) {
	base := New("cases").WithLabels("day", "count")
	a := base.With(Line("a", []float64{0, 1}, []float64{1, 2}))
	b := a.With(Points("b", []float64{0}, []float64{3}))
	c := a.With(Points("c", []float64{0}, []float64{4}))

	assert.Empty(t, base.Layers())
	assert.Len(t, a.Layers(), 1)
	require.Len(t, b.Layers(), 2)
	require.Len(t, c.Layers(), 2)
	assert.Equal(t, "b", b.Layers()[1].Name)
	assert.Equal(t, "c", c.Layers()[1].Name)

	logged := a.WithLogY()
	assert.False(t, a.LogY())
	assert.True(t, logged.LogY())
	assert.Equal(t, "cases", logged.Title())
}

func TestLayerCopiesInput(t *testing.T) {
	y := []float64{1, 2}
	l := Line("a", []float64{0, 1}, y)
	y[0] = 99

	assert.Equal(t, 1.0, l.Y[0])
	assert.True(t, l.WithDashes().Dashed)
	assert.False(t, l.Dashed)
}

func TestXY(t *testing.T) {
	s := timeseries.New([]float64{5, 6})
	x, y := XY(s)
	assert.Equal(t, []float64{0, 1}, x)
	assert.Equal(t, []float64{5, 6}, y)

	day := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	dated, _ := timeseries.NewWithTimestamps([]time.Time{day}, []float64{1})
	x, _ = XY(dated)
	assert.Equal(t, float64(day.Unix()), x[0])
}

func TestBuildCountsDroppedPoints(t *testing.T) {
	daily := timeseries.New([]float64{0, 3, -2, 5, 0, 8}).ZeroToUndefined()
	x, y := XY(daily)

	_, st, err := Build(New("daily").WithLogY().With(Points("daily", x, y)))
	require.NoError(t, err)
	assert.Equal(t, RenderStats{Plotted: 3, Undefined: 2, NonPositive: 1}, st)

	_, st, err = Build(New("daily").With(Points("daily", x, y)))
	require.NoError(t, err)
	assert.Equal(t, RenderStats{Plotted: 4, Undefined: 2, NonPositive: 0}, st)
}

func TestBuildErrors(t *testing.T) {
	_, _, err := Build(New("empty"))
	assert.ErrorIs(t, err, ErrNoData)

	_, _, err = Build(New("nan").With(Line("x", []float64{0}, []float64{math.NaN()})))
	assert.ErrorIs(t, err, ErrNoData)

	_, _, err = Build(New("bad").With(Line("x", []float64{0, 1}, []float64{1})))
	assert.Error(t, err)

	_, _, err = Build(New("bad").With(Bubbles("x", []float64{0}, []float64{1}, nil)))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	day := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	ts := []time.Time{day, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2)}
	x := Dates(ts)

	spec := New("US").
		WithLabels("date", "new cases").
		WithLogY().
		WithTimeAxis("Jan 2").
		With(
			Points("daily", x, []float64{10, 20, 40}),
			Line("fit", x, []float64{10, 20, 40}).WithDashes(),
			Bubbles("", x, []float64{1, 2, 3}, []float64{1, 10, 100}),
		)

	path := filepath.Join(t.TempDir(), "chart.png")
	st, err := Render(spec, path, 6*vg.Inch, 4*vg.Inch)
	require.NoError(t, err)
	assert.Equal(t, 9, st.Plotted)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBubbleRadius(t *testing.T) {
	assert.Equal(t, MaxBubbleRadius, bubbleRadius(100, 100))
	assert.InDelta(t, float64(MaxBubbleRadius)/2, float64(bubbleRadius(25, 100)), 1e-9)
	assert.Equal(t, vg.Points(1), bubbleRadius(0, 100))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "line", LineKind.String())
	assert.Equal(t, "bubbles", BubblesKind.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
