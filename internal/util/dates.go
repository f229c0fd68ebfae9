package util

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format for every form date.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format (use YYYY-MM-DD)")

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns midnight UTC of
// that calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}

	// RFC3339 keeps the calendar date as written, offset ignored
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t), nil
	}

	return time.Time{}, ErrInvalidDate
}

// DateOnly drops the clock part of t, keeping its calendar date in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsFutureDate reports whether date falls on a calendar day after now's.
func IsFutureDate(date, now time.Time) bool {
	return DateOnly(date).After(DateOnly(now))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
