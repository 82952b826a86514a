package geo

import (
	"encoding/csv"
	"io"
	"iter"
	"strconv"

	"github.com/sartorproj/casecurve/timeseries"
)

// WriteCSV streams markers as region,sub_region,lon,lat,date,value,magnitude
// rows and returns how many were written.
func WriteCSV(w io.Writer, markers iter.Seq[Marker]) (int, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"region", "sub_region", "lon", "lat", "date", "value", "magnitude"}); err != nil {
		return 0, err
	}

	n := 0
	for mk := range markers {
		record := []string{
			mk.Entity.Region,
			mk.Entity.SubRegion.String(),
			formatFloat(mk.Coordinate.Lon),
			formatFloat(mk.Coordinate.Lat),
			mk.Day.Format(timeseries.DateFormat),
			formatFloat(mk.Value),
			formatFloat(mk.Magnitude),
		}
		if err := writer.Write(record); err != nil {
			return n, err
		}
		n++
	}

	writer.Flush()
	return n, writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
