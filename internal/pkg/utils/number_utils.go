package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloatOrZero parses a numeric string and returns 0 for anything that is
// empty, unparseable or non-finite. Calculator inputs arrive as raw query
// strings typed by the user, and an invalid value must degrade silently to
// the zero result instead of producing an error or a NaN that would leak
// into JSON.
func ParseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
