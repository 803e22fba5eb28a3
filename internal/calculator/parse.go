package calculator

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the numeric prefix a browser's parseFloat would accept.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseLenient reads the leading number of s and ignores the rest ("500abc" is 500).
// Input without a numeric prefix, or one that overflows, yields 0.
func ParseLenient(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// ParseLimit reads a category limit. Anything that is not a finite non-negative
// number becomes 0, which means "no limit".
func ParseLimit(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
