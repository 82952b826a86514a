package table

import (
	"errors"
	"time"
)

const (
	// DateLayout is the month/day/2-digit-year format of date column headers.
	DateLayout = "1/2/06"

	// YearOffset is added to the raw two-digit year.
	YearOffset = 2000
)

var errNotIncreasing = errors.New("not after the previous date")

// ParseDate parses one M/D/YY label. The two-digit year is read as a raw
// number and shifted by YearOffset, so "3/11/20" is 2020-03-11.
func ParseDate(label string) (time.Time, error) {
	t, err := time.Parse(DateLayout, label)
	if err != nil {
		return time.Time{}, &DateFormatError{Label: label, Err: err}
	}
	year := YearOffset + t.Year()%100
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseDateAxis parses every label and checks the dates strictly increase.
func ParseDateAxis(labels []string) ([]time.Time, error) {
	axis := make([]time.Time, len(labels))
	for i, label := range labels {
		d, err := ParseDate(label)
		if err != nil {
			return nil, err
		}
		if i > 0 && !d.After(axis[i-1]) {
			return nil, &DateFormatError{Label: label, Err: errNotIncreasing}
		}
		axis[i] = d
	}
	return axis, nil
}
