// Package table loads the wide case-count table: one row per geographic
// entity, four descriptive columns, then one cumulative count per day.
package table

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/sartorproj/casecurve/timeseries"
)

// Column positions and the names given to them by RenameColumns.
const (
	SubRegionColumn = 0
	RegionColumn    = 1
	LatColumn       = 2
	LongColumn      = 3

	// FirstDateColumn is the index of the first daily count column.
	FirstDateColumn = 4
)

// Names given to the first four columns by RenameColumns.
var ColumnNames = [FirstDateColumn]string{"sub_region", "region", "lat", "long"}

// Options holds options for loading a table.
type Options struct {
	Delimiter rune     // Field delimiter (default: ',')
	NAValues  []string // Cell values read as missing
}

// DefaultOptions returns default options for loading a table.
func DefaultOptions() *Options {
	return &Options{
		Delimiter: ',',
		NAValues:  []string{"", "NA", "NaN", "<nil>"},
	}
}

// Table is a loaded case-count table. It is read-only apart from the
// one-time RenameColumns, which must not run concurrently with readers.
type Table struct {
	df      dataframe.DataFrame
	renamed bool
}

// Load reads a table from a delimited file.
func Load(filename string, opts *Options) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadFromReader(file, opts)
}

// LoadFromReader reads a table from r. Column types are inferred from the
// cells. Rows with a different number of fields than the header fail with
// a ParseError.
func LoadFromReader(r io.Reader, opts *Options) (*Table, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(opts.NAValues),
	)
	if df.Err != nil {
		return nil, &ParseError{Msg: "read csv", Err: df.Err}
	}
	if df.Ncol() <= FirstDateColumn {
		return nil, &ParseError{Msg: fmt.Sprintf("need at least %d columns, got %d", FirstDateColumn+1, df.Ncol())}
	}
	if df.Nrow() == 0 {
		return nil, &ParseError{Msg: "no data rows"}
	}

	return &Table{df: df}, nil
}

// RenameColumns gives the first four columns their semantic names
// (ColumnNames). Row count and order are unchanged and the date columns keep
// their labels. Calling it again is a no-op.
func (t *Table) RenameColumns() error {
	if t.renamed {
		return nil
	}

	df := t.df
	names := df.Names()
	for i, name := range ColumnNames {
		df = df.Rename(name, names[i])
		if df.Err != nil {
			return &ParseError{Msg: "rename column " + names[i], Err: df.Err}
		}
	}

	t.df = df
	t.renamed = true
	return nil
}

// Renamed reports whether RenameColumns has run.
func (t *Table) Renamed() bool { return t.renamed }

// Nrow returns the number of entity rows.
func (t *Table) Nrow() int { return t.df.Nrow() }

// Names returns all column names in order.
func (t *Table) Names() []string { return t.df.Names() }

// Types returns the inferred type of every column.
func (t *Table) Types() []series.Type { return t.df.Types() }

// DateLabels returns the raw headers of the daily count columns.
func (t *Table) DateLabels() []string {
	return t.df.Names()[FirstDateColumn:]
}

// DateAxis parses DateLabels.
func (t *Table) DateAxis() ([]time.Time, error) {
	return ParseDateAxis(t.DateLabels())
}

// Entity returns the descriptive columns of one row.
func (t *Table) Entity(row int) (Entity, error) {
	if row < 0 || row >= t.df.Nrow() {
		return Entity{}, &NotFoundError{Key: fmt.Sprintf("row %d", row)}
	}
	return t.entity(row), nil
}

// Entities returns every row's descriptive columns in table order.
func (t *Table) Entities() []Entity {
	out := make([]Entity, t.df.Nrow())
	for i := range out {
		out[i] = t.entity(i)
	}
	return out
}

func (t *Table) entity(row int) Entity {
	e := Entity{
		Row:       row,
		Region:    t.text(row, RegionColumn),
		SubRegion: Absent(),
		Lat:       t.number(row, LatColumn),
		Long:      t.number(row, LongColumn),
	}
	if sub := t.df.Elem(row, SubRegionColumn); !sub.IsNA() {
		e.SubRegion = Present(sub.String())
	}
	return e
}

func (t *Table) text(row, col int) string {
	e := t.df.Elem(row, col)
	if e.IsNA() {
		return ""
	}
	return e.String()
}

func (t *Table) number(row, col int) float64 {
	e := t.df.Elem(row, col)
	if e.IsNA() {
		return math.NaN()
	}
	return e.Float()
}

// Series returns the cumulative series of one row, dated by the date axis
// and named after the entity's key.
func (t *Table) Series(row int) (*timeseries.Series, error) {
	values, err := ExtractSeries(t, row)
	if err != nil {
		return nil, err
	}
	axis, err := t.DateAxis()
	if err != nil {
		return nil, err
	}

	s, err := timeseries.NewWithTimestamps(axis, values)
	if err != nil {
		return nil, err
	}
	s.Name = t.entity(row).Key()
	return s, nil
}
