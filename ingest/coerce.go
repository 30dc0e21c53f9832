package ingest

import (
	"math"
	"strconv"
	"strings"
)

// toFloat mirrors Cypher's toFloat on a string: nil when it does not parse.
func toFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// toInteger mirrors Cypher's toInteger on a string: decimal strings are
// truncated toward zero, anything else is nil.
func toInteger(s string) *int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) ||
		f >= math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	i := int64(f)
	return &i
}
