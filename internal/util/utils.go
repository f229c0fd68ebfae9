package util

import (
	"strconv"
	"strings"
)

// TrimmedOrNil returns nil for a blank value so optional filters stay unset.
func TrimmedOrNil(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// ParseIntOrDefault parses an optional non-negative integer query value.
func ParseIntOrDefault(v string, def int) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
