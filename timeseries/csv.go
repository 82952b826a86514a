package timeseries

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

// DateFormat is the layout used for dates in exported files.
const DateFormat = "2006-01-02"

// WriteCSV writes series side by side, one column per series, joined on
// timestamp. The first series defines the rows; the others leave a blank
// cell on days they do not cover. NaN values are written as blanks.
func WriteCSV(w io.Writer, series ...*Series) error {
	if len(series) == 0 {
		return errors.New("no series to write")
	}
	base := series[0]
	if !base.HasTimestamps() {
		return errors.New("first series must carry timestamps")
	}

	lookup := make([]map[time.Time]float64, len(series))
	header := make([]string, 0, len(series)+1)
	header = append(header, "date")
	for i, s := range series {
		name := s.Name
		if name == "" {
			name = "y" + strconv.Itoa(i)
		}
		header = append(header, name)

		lookup[i] = make(map[time.Time]float64, s.Len())
		if s.HasTimestamps() {
			for j, ts := range s.Timestamps {
				lookup[i][ts] = s.Values[j]
			}
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, ts := range base.Timestamps {
		record[0] = ts.Format(DateFormat)
		for i := range series {
			v, ok := lookup[i][ts]
			if !ok || math.IsNaN(v) {
				record[i+1] = ""
				continue
			}
			record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes series to a file with WriteCSV.
func SaveCSV(filename string, series ...*Series) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := WriteCSV(file, series...); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
