package table

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/series"
)

// DistinctRegions returns each region label once, in order of first
// appearance.
func DistinctRegions(t *Table) []string {
	seen := make(map[string]bool)
	var regions []string
	for row := 0; row < t.Nrow(); row++ {
		region := t.text(row, RegionColumn)
		if seen[region] {
			continue
		}
		seen[region] = true
		regions = append(regions, region)
	}
	return regions
}

// FindRow returns the index of the first row whose region equals region
// exactly. Matching is case-sensitive; use FindByPrefix for discovery.
func FindRow(t *Table, region string) (int, error) {
	for row := 0; row < t.Nrow(); row++ {
		if t.text(row, RegionColumn) == region {
			return row, nil
		}
	}
	return -1, &NotFoundError{Key: region}
}

// FindByPrefix returns every entity whose region starts with prefix.
func FindByPrefix(t *Table, prefix string) []Entity {
	var out []Entity
	for row := 0; row < t.Nrow(); row++ {
		if strings.HasPrefix(t.text(row, RegionColumn), prefix) {
			out = append(out, t.entity(row))
		}
	}
	return out
}

// ExtractSeries returns the daily cumulative counts of one row, from the
// fifth column on. A missing cell is a MissingValueError; it is never
// coerced to zero.
func ExtractSeries(t *Table, row int) ([]float64, error) {
	if row < 0 || row >= t.Nrow() {
		return nil, &NotFoundError{Key: fmt.Sprintf("row %d", row)}
	}

	names := t.df.Names()
	types := t.df.Types()
	values := make([]float64, 0, len(names)-FirstDateColumn)
	for col := FirstDateColumn; col < len(names); col++ {
		e := t.df.Elem(row, col)
		if e.IsNA() {
			return nil, &MissingValueError{Row: row, Column: names[col]}
		}
		if types[col] != series.Int && types[col] != series.Float {
			return nil, &ParseError{Msg: fmt.Sprintf("row %d column %q: %q is not a number", row, names[col], e.String())}
		}
		values = append(values, e.Float())
	}
	return values, nil
}
