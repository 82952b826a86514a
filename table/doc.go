// Package table loads the wide case-count table and extracts per-entity
// series from it.
//
// The input is a comma-separated file whose header is
//
//	Province/State,Country/Region,Lat,Long,1/22/20,1/23/20,...
//
// Columns one to four describe the entity (sub-region, region, latitude,
// longitude); every later column holds the cumulative count for one day.
//
// # Loading
//
//	t, err := table.Load("confirmed.csv", nil)
//	if err != nil {
//	    return err // *table.ParseError
//	}
//	t.RenameColumns() // sub_region, region, lat, long
//
// # Selecting a row
//
//	table.DistinctRegions(t)          // every region once
//	table.FindByPrefix(t, "United")   // discovery
//	row, err := table.FindRow(t, "US") // exact, first match
//	cumulative, err := t.Series(row)  // dated *timeseries.Series
//
// Errors can be matched with errors.Is against ErrParse, ErrNotFound,
// ErrMissingValue and ErrDateFormat.
package table
