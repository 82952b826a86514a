// Package geo joins entity coordinates with daily counts into map markers.
//
// A Matrix holds the daily deltas of every row of a table on one date axis.
// Markers are produced lazily, one per entity and day, and only for entities
// with both coordinates known.
//
// # Basic Usage
//
//	m, err := geo.BuildMatrix(t)
//	if err != nil {
//	    return err // *table.MissingValueError, *table.DateFormatError
//	}
//
//	for mk := range m.Day(10) {
//	    fmt.Println(mk.Entity.Label(), mk.Coordinate, mk.Value)
//	}
//
// Value is the daily delta as it is, negative corrections included.
// Magnitude is max(1, Value) and is only meant for marker sizes.
//
// # Export
//
//	n, err := geo.WriteCSV(w, m.Markers()) // every day, every entity
package geo
