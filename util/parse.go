package util

import (
	"strconv"
	"strings"
)

// OptionalInt parses a decimal string to int64. The second return is
// false when the string carries no numeric interpretation; callers keep
// the original text in that case.
func OptionalInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntOr parses a decimal string, returning def when it is not numeric.
func IntOr(s string, def int64) int64 {
	if v, ok := OptionalInt(s); ok {
		return v
	}
	return def
}

// ParseFloat64 parses a string to float64, returning 0 on error.
func ParseFloat64(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}
