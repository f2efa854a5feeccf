package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel causes wrapped by ValidationError.
var (
	ErrOutOfRange  = errors.New("out of range")
	ErrNotInteger  = errors.New("not an integer")
	ErrInvalidDate = errors.New("unrecognized date format")
)

// shiftStartHour is the clock hour that opens bucket 0.
const shiftStartHour = 4

// DayNames maps the 1-based DayOfWeek ordinal (index-1) to its name.
var DayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// MonthNames lists months in calendar order.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// crashDateLayouts are tried in order by ParseCrashDate. The US forms use
// single-digit month, day and hour verbs, which also accept zero-padded input.
var crashDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07",
	"2006/01/02 15:04:05-07",
	"2006/01/02 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	"1/2/2006",
}

// ParseCrashDate parses the CrashDate column. Values without an offset are
// taken as UTC; results are always returned in UTC.
func ParseCrashDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range crashDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DayName returns the weekday for a 1-based ordinal (1 = Sunday).
func DayName(ordinal int) (string, error) {
	if ordinal < 1 || ordinal > len(DayNames) {
		return "", fmt.Errorf("%w: day %d not in 1-7", ErrOutOfRange, ordinal)
	}
	return DayNames[ordinal-1], nil
}

// ShiftedHourBucket remaps a 0–23 hour so that 4 AM is bucket 0 and 3 AM is
// bucket 23.
func ShiftedHourBucket(hour int) (int, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: hour %d not in 0-23", ErrOutOfRange, hour)
	}
	return (hour - shiftStartHour + 24) % 24, nil
}

// Ordinal extracts an integer from a normalized numeric value.
func Ordinal(v Value) (int, error) {
	if v.Kind != KindNumber || v.Num != float64(int(v.Num)) {
		return 0, ErrNotInteger
	}
	return int(v.Num), nil
}
