// Package pixel interprets raw CSS length strings as pixel magnitudes.
//
// It is the single numeric boundary for token matching: every comparison
// downstream operates on the float64 returned here, never on the raw
// string.
package pixel

import (
	"math"
	"strconv"
	"strings"
)

// Suffix is the only unit the matcher understands.
const Suffix = "px"

// Parse returns the pixel magnitude of raw.
//
// The literal "0" parses as 0 even without a unit. Any other value must
// carry the px suffix with a finite numeric prefix. The second return is
// false when raw is not numeric-comparable.
func Parse(raw string) (float64, bool) {
	if raw == "0" {
		return 0, true
	}
	num, ok := strings.CutSuffix(raw, Suffix)
	if !ok || num == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// Comparable reports whether raw would parse, without returning the
// magnitude. Token map keys that fail this are unreachable for matching.
func Comparable(raw string) bool {
	_, ok := Parse(raw)
	return ok
}
