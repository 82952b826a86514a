package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Province/State,Country/Region,Lat,Long,3/1/20,3/2/20,3/3/20,3/4/20,3/5/20,3/6/20,3/7/20,3/8/20,3/9/20,3/10/20
Bermuda,United Kingdom,32.3078,-64.7505,0,0,0,0,0,0,0,1,1,2
,United Kingdom,55.3781,-3.436,36,40,51,86,116,164,209,278,321,382
,US,40.0,-100.0,30,53,73,104,174,222,337,451,519,711
`

func loadSample(t *testing.T) *Table {
	t.Helper()
	tbl, err := LoadFromReader(strings.NewReader(sample), nil)
	require.NoError(t, err)
	return tbl
}

func TestLoadInfersTypes(t *testing.T) {
	tbl := loadSample(t)

	assert.Equal(t, 3, tbl.Nrow())
	assert.Len(t, tbl.Names(), 14)
	types := tbl.Types()
	assert.Equal(t, "string", string(types[SubRegionColumn]))
	assert.Equal(t, "string", string(types[RegionColumn]))
	assert.Equal(t, "float", string(types[LatColumn]))
	assert.Equal(t, "int", string(types[FirstDateColumn]))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	tbl, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Nrow())

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), nil)
	assert.Error(t, err)
}

func TestLoadRaggedRowsIsParseError(t *testing.T) {
	ragged := "a,b,c,d,1/1/20\nx,y,1,2,3\nx,y,1,2\n"

	_, err := LoadFromReader(strings.NewReader(ragged), nil)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoadTooFewColumns(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("a,b,c,d\nx,y,1,2\n"), nil)
	assert.ErrorIs(t, err, ErrParse)
}

func TestRenameColumns(t *testing.T) {
	tbl := loadSample(t)
	before := tbl.Entities()

	require.NoError(t, tbl.RenameColumns())
	require.NoError(t, tbl.RenameColumns())

	names := tbl.Names()
	assert.Equal(t, []string{"sub_region", "region", "lat", "long"}, names[:4])
	assert.Equal(t, "3/1/20", names[4])
	assert.True(t, tbl.Renamed())
	assert.Equal(t, 3, tbl.Nrow())
	if diff := cmp.Diff(before, tbl.Entities(), cmp.AllowUnexported(SubRegion{})); diff != "" {
		t.Errorf("rows changed after rename (-before +after):\n%s", diff)
	}
}

func TestEntities(t *testing.T) {
	tbl := loadSample(t)
	entities := tbl.Entities()
	require.Len(t, entities, 3)

	sub, ok := entities[0].SubRegion.Value()
	assert.True(t, ok)
	assert.Equal(t, "Bermuda", sub)
	assert.Equal(t, "United Kingdom / Bermuda", entities[0].Label())

	assert.False(t, entities[2].SubRegion.IsPresent())
	assert.Equal(t, "US", entities[2].Key())
	assert.Equal(t, "US", entities[2].Label())
	assert.InDelta(t, -100.0, entities[2].Long, 1e-9)
	assert.True(t, entities[2].HasCoordinates())

	_, err := tbl.Entity(7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFillSubRegions(t *testing.T) {
	entities := loadSample(t).Entities()
	filled := FillSubRegions(entities)

	assert.Equal(t, "Bermuda", filled[0].SubRegion.String())
	assert.Equal(t, "United Kingdom", filled[1].SubRegion.String())
	assert.Equal(t, "US", filled[2].SubRegion.String())
	assert.False(t, entities[1].SubRegion.IsPresent(), "input must not be modified")
}

func TestDistinctRegions(t *testing.T) {
	assert.Equal(t, []string{"United Kingdom", "US"}, DistinctRegions(loadSample(t)))
}

func TestFindRow(t *testing.T) {
	tbl := loadSample(t)

	row, err := FindRow(tbl, "US")
	require.NoError(t, err)
	assert.Equal(t, 2, row)

	row, err = FindRow(tbl, "United Kingdom")
	require.NoError(t, err)
	assert.Equal(t, 0, row, "first matching row wins")

	_, err = FindRow(tbl, "us")
	assert.ErrorIs(t, err, ErrNotFound, "matching is case-sensitive")

	_, err = FindRow(tbl, "France")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "France", nf.Key)
}

func TestFindByPrefix(t *testing.T) {
	tbl := loadSample(t)

	assert.Len(t, FindByPrefix(tbl, "United"), 2)
	assert.Len(t, FindByPrefix(tbl, "U"), 3)
	assert.Empty(t, FindByPrefix(tbl, "Z"))
}

func TestExtractSeries(t *testing.T) {
	tbl := loadSample(t)

	values, err := ExtractSeries(tbl, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 53, 73, 104, 174, 222, 337, 451, 519, 711}, values)

	_, err = ExtractSeries(tbl, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtractSeriesMissingValue(t *testing.T) {
	data := "s,r,lat,long,1/1/20,1/2/20,1/3/20\n,A,1,2,1,,3\n,B,1,2,1,2,3\n"
	tbl, err := LoadFromReader(strings.NewReader(data), nil)
	require.NoError(t, err)

	_, err = ExtractSeries(tbl, 0)
	var mv *MissingValueError
	require.ErrorAs(t, err, &mv)
	assert.Equal(t, "1/2/20", mv.Column)
	assert.ErrorIs(t, err, ErrMissingValue)

	values, err := ExtractSeries(tbl, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, values)
}

func TestExtractSeriesNonNumeric(t *testing.T) {
	data := "s,r,lat,long,1/1/20\n,A,1,2,many\n"
	tbl, err := LoadFromReader(strings.NewReader(data), nil)
	require.NoError(t, err)

	_, err = ExtractSeries(tbl, 0)
	assert.ErrorIs(t, err, ErrParse)
}

func TestSeries(t *testing.T) {
	tbl := loadSample(t)

	s, err := tbl.Series(2)
	require.NoError(t, err)
	assert.Equal(t, "US", s.Name)
	require.Equal(t, 10, s.Len())
	assert.Equal(t, time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC), s.Timestamps[0])
	assert.Equal(t, time.Date(2020, time.March, 10, 0, 0, 0, 0, time.UTC), s.Timestamps[9])
}

func TestEndToEnd(t *testing.T) {
	tbl := loadSample(t)
	require.NoError(t, tbl.RenameColumns())

	row, err := FindRow(tbl, "US")
	require.NoError(t, err)
	cumulative, err := tbl.Series(row)
	require.NoError(t, err)

	daily := cumulative.Diff()
	require.Equal(t, 9, daily.Len())
	for i, v := range daily.Values {
		assert.Greater(t, v, 0.0, "delta %d", i)
	}

	avg := daily.MovingAverage(7)
	require.Equal(t, 3, avg.Len())
	assert.InDelta(t, (23+20+31+70+48+115+114)/7.0, avg.Values[0], 1e-12)
}

func TestErrorsAreDistinct(t *testing.T) {
	err := &MissingValueError{Row: 1, Column: "x"}
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `"x"`)
}
