// Package timeseries provides the daily series type and the differencing
// operations applied to cumulative case counts.
package timeseries

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is the trailing window used for the daily moving average.
const DefaultWindow = 7

// Series represents a time series with timestamps and values.
// Timestamps is either empty or the same length as Values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a series indexed only by position.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasTimestamps reports whether every value carries a timestamp.
func (s *Series) HasTimestamps() bool {
	return len(s.Values) > 0 && len(s.Timestamps) == len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Diff returns the daily deltas of a cumulative series: out[i] = v[i+1] - v[i].
// Negative deltas (data corrections) are kept as they are. Each delta takes the
// timestamp of the later observation.
func (s *Series) Diff() *Series {
	if len(s.Values) < 2 {
		return &Series{Values: []float64{}, Name: s.Name + "_daily"}
	}

	result := make([]float64, len(s.Values)-1)
	for i := range result {
		result[i] = s.Values[i+1] - s.Values[i]
	}

	return &Series{
		Timestamps: s.alignedTimestamps(1, len(s.Values)),
		Values:     result,
		Name:       s.Name + "_daily",
	}
}

// Cumulate rebuilds a cumulative series from daily deltas by prefix sum,
// starting at start. It is the inverse of Diff: s.Diff().Cumulate(s.Values[0])
// reproduces s.
func (s *Series) Cumulate(start float64) *Series {
	result := make([]float64, len(s.Values)+1)
	result[0] = start
	for i, v := range s.Values {
		result[i+1] = result[i] + v
	}

	var timestamps []time.Time
	if s.HasTimestamps() {
		timestamps = make([]time.Time, 0, len(result))
		timestamps = append(timestamps, s.Timestamps[0].AddDate(0, 0, -1))
		timestamps = append(timestamps, s.Timestamps...)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_cumulative",
	}
}

// MovingAverage calculates a trailing moving average with the given window.
// out[i] is the mean of v[i..i+window-1] and carries the timestamp of the
// window's last day. The result is empty when the series is shorter than
// the window.
func (s *Series) MovingAverage(window int) *Series {
	if window <= 0 || window > len(s.Values) {
		return &Series{Values: []float64{}, Name: s.Name + "_ma"}
	}

	result := make([]float64, len(s.Values)-window+1)
	for i := range result {
		result[i] = stat.Mean(s.Values[i:i+window], nil)
	}

	return &Series{
		Timestamps: s.alignedTimestamps(window-1, len(s.Values)),
		Values:     result,
		Name:       s.Name + "_ma",
	}
}

// ZeroToUndefined replaces every exact zero with NaN so the series can be
// drawn on a logarithmic axis. Negative values are left alone.
func (s *Series) ZeroToUndefined() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v == 0 {
			result[i] = math.NaN()
		} else {
			result[i] = v
		}
	}

	out := s.Copy()
	out.Values = result
	return out
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	return &Series{
		Timestamps: s.alignedTimestamps(start, end),
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if len(s.Timestamps) > 0 {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Log applies natural logarithm transformation. Zero and negative values
// become NaN.
func (s *Series) Log() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v > 0 {
			result[i] = math.Log(v)
		} else {
			result[i] = math.NaN()
		}
	}

	out := s.Copy()
	out.Values = result
	out.Name = s.Name + "_log"
	return out
}

// Indices returns 0..Len()-1 as float64, the x values used for fitting.
func (s *Series) Indices() []float64 {
	x := make([]float64, len(s.Values))
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

func (s *Series) alignedTimestamps(start, end int) []time.Time {
	if !s.HasTimestamps() {
		return nil
	}
	timestamps := make([]time.Time, end-start)
	copy(timestamps, s.Timestamps[start:end])
	return timestamps
}
