package table

import "math"

// SubRegion is an optional sub-region label.
type SubRegion struct {
	value   string
	present bool
}

// Present wraps a sub-region label.
func Present(v string) SubRegion { return SubRegion{value: v, present: true} }

// Absent is the empty sub-region.
func Absent() SubRegion { return SubRegion{} }

// Value returns the label and whether it is set.
func (s SubRegion) Value() (string, bool) { return s.value, s.present }

// IsPresent reports whether the label is set.
func (s SubRegion) IsPresent() bool { return s.present }

// OrElse returns the label, or fallback when absent.
func (s SubRegion) OrElse(fallback string) string {
	if s.present {
		return s.value
	}
	return fallback
}

func (s SubRegion) String() string { return s.OrElse("") }

// Entity is one row of the table.
type Entity struct {
	Row       int
	Region    string
	SubRegion SubRegion
	Lat       float64
	Long      float64
}

// Key is the de-duplication key: the sub-region, or the region itself when
// there is no sub-region.
func (e Entity) Key() string {
	return e.SubRegion.OrElse(e.Region)
}

// Label is a display name such as "United Kingdom" or
// "United Kingdom / Bermuda".
func (e Entity) Label() string {
	if sub, ok := e.SubRegion.Value(); ok && sub != e.Region {
		return e.Region + " / " + sub
	}
	return e.Region
}

// HasCoordinates reports whether both latitude and longitude are known.
func (e Entity) HasCoordinates() bool {
	return !math.IsNaN(e.Lat) && !math.IsNaN(e.Long)
}

// FillSubRegion returns e with an absent sub-region replaced by the region.
func FillSubRegion(e Entity) Entity {
	if !e.SubRegion.IsPresent() {
		e.SubRegion = Present(e.Region)
	}
	return e
}

// FillSubRegions applies FillSubRegion to every entity and returns a new slice.
func FillSubRegions(entities []Entity) []Entity {
	out := make([]Entity, len(entities))
	for i, e := range entities {
		out[i] = FillSubRegion(e)
	}
	return out
}
