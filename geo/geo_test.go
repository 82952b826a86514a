package geo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/casecurve/table"
)

const sample = `Province/State,Country/Region,Lat,Long,3/1/20,3/2/20,3/3/20,3/4/20
,Alpha,10.5,20.25,0,0,3,2
,Beta,-5,7,4,10,10,12
Ship,Gamma,,,1,2,3,4
`

func buildSample(t *testing.T) *Matrix {
	t.Helper()
	tbl, err := table.LoadFromReader(strings.NewReader(sample), nil)
	require.NoError(t, err)
	m, err := BuildMatrix(tbl)
	require.NoError(t, err)
	return m
}

func TestBuildMatrix(t *testing.T) {
	m := buildSample(t)

	require.Len(t, m.Rows, 3)
	assert.Equal(t, 3, m.Days())
	assert.Equal(t, time.Date(2020, time.March, 2, 0, 0, 0, 0, time.UTC), m.Dates[0])
	assert.Equal(t, []float64{0, 3, -1}, m.Rows[0].Daily)
	assert.Equal(t, []float64{6, 0, 2}, m.Rows[1].Daily)
}

func TestMarkersClampMagnitudeOnly(t *testing.T) {
	m := buildSample(t)

	var markers []Marker
	for mk := range m.Markers() {
		markers = append(markers, mk)
	}

	// Gamma has no coordinates.
	require.Len(t, markers, 6)

	alpha := markers[:3]
	assert.Equal(t, []float64{0, 3, -1}, []float64{alpha[0].Value, alpha[1].Value, alpha[2].Value})
	assert.Equal(t, []float64{1, 3, 1}, []float64{alpha[0].Magnitude, alpha[1].Magnitude, alpha[2].Magnitude})
	assert.Equal(t, Coordinate{Lon: 20.25, Lat: 10.5}, alpha[0].Coordinate)
	for _, mk := range markers {
		assert.Greater(t, mk.Magnitude, 0.0)
	}

	assert.Equal(t, []float64{0, 3, -1}, m.Rows[0].Daily, "matrix must not be clamped")
}

func TestMarkersRestartable(t *testing.T) {
	seq := buildSample(t).Markers()

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, count(), count())
}

func TestMarkersStopEarly(t *testing.T) {
	n := 0
	for range buildSample(t).Markers() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestDay(t *testing.T) {
	m := buildSample(t)

	var day []Marker
	for mk := range m.Day(2) {
		day = append(day, mk)
	}
	require.Len(t, day, 2)
	assert.Equal(t, "Alpha", day[0].Entity.Region)
	assert.Equal(t, -1.0, day[0].Value)
	assert.Equal(t, 1.0, day[0].Magnitude)
	assert.Equal(t, 2, day[1].DayIndex)

	for range m.Day(3) {
		t.Fatal("out-of-range day should yield nothing")
	}
}

func TestBuildMatrixMissingValue(t *testing.T) {
	data := "s,r,lat,long,1/1/20,1/2/20\n,A,1,2,1,\n"
	tbl, err := table.LoadFromReader(strings.NewReader(data), nil)
	require.NoError(t, err)

	_, err = BuildMatrix(tbl)
	assert.ErrorIs(t, err, table.ErrMissingValue)
}

func TestWriteCSV(t *testing.T) {
	m := buildSample(t)

	var b strings.Builder
	n, err := WriteCSV(&b, m.Day(0))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "region,sub_region,lon,lat,date,value,magnitude", lines[0])
	assert.Equal(t, "Alpha,,20.25,10.5,2020-03-02,0,1", lines[1])
	assert.Equal(t, "Beta,,7,-5,2020-03-02,6,6", lines[2])
}
