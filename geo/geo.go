package geo

import (
	"iter"
	"math"
	"time"

	"github.com/sartorproj/casecurve/table"
	"github.com/sartorproj/casecurve/timeseries"
)

// Coordinate is a point in degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Marker is one entity on one day.
type Marker struct {
	Entity     table.Entity
	Coordinate Coordinate
	DayIndex   int
	Day        time.Time
	Value      float64 // daily delta, unchanged
	Magnitude  float64 // max(1, Value), always > 0 for marker sizing
}

// Row is the daily series of one entity.
type Row struct {
	Entity table.Entity
	Daily  []float64
}

// Matrix holds the daily deltas of every row, aligned to Dates.
type Matrix struct {
	Dates []time.Time // date of each daily delta
	Rows  []Row
}

// BuildMatrix differences every row of t. Any extraction error stops the
// build.
func BuildMatrix(t *table.Table) (*Matrix, error) {
	axis, err := t.DateAxis()
	if err != nil {
		return nil, err
	}

	m := &Matrix{Rows: make([]Row, 0, t.Nrow())}
	if len(axis) > 1 {
		m.Dates = axis[1:]
	}

	for _, e := range t.Entities() {
		values, err := table.ExtractSeries(t, e.Row)
		if err != nil {
			return nil, err
		}
		m.Rows = append(m.Rows, Row{Entity: e, Daily: timeseries.New(values).Diff().Values})
	}
	return m, nil
}

// Days returns the number of daily columns.
func (m *Matrix) Days() int { return len(m.Dates) }

// Magnitude is the marker size for a daily value.
func Magnitude(v float64) float64 {
	return math.Max(1, v)
}

// Markers yields every (entity, day) pair, entity-major. Entities without
// coordinates are skipped. The sequence reads the matrix lazily and can be
// ranged over any number of times.
func (m *Matrix) Markers() iter.Seq[Marker] {
	return func(yield func(Marker) bool) {
		for _, row := range m.Rows {
			if !row.Entity.HasCoordinates() {
				continue
			}
			for day := range row.Daily {
				if !yield(m.marker(row, day)) {
					return
				}
			}
		}
	}
}

// Day yields the markers of a single day. An out-of-range day yields
// nothing.
func (m *Matrix) Day(day int) iter.Seq[Marker] {
	return func(yield func(Marker) bool) {
		if day < 0 || day >= m.Days() {
			return
		}
		for _, row := range m.Rows {
			if !row.Entity.HasCoordinates() || day >= len(row.Daily) {
				continue
			}
			if !yield(m.marker(row, day)) {
				return
			}
		}
	}
}

func (m *Matrix) marker(row Row, day int) Marker {
	v := row.Daily[day]
	return Marker{
		Entity:     row.Entity,
		Coordinate: Coordinate{Lon: row.Entity.Long, Lat: row.Entity.Lat},
		DayIndex:   day,
		Day:        m.Dates[day],
		Value:      v,
		Magnitude:  Magnitude(v),
	}
}
