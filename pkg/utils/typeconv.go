package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParseGroupedFloat parses a decimal string that may use commas as
// thousands separators, e.g. "26,854,599" or "1,234.5".
func ParseGroupedFloat(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, fmt.Errorf("empty number")
	}
	return strconv.ParseFloat(clean, 64)
}

// RoundHalfEven rounds v to the given number of decimal places, resolving
// ties to the nearest even digit.
func RoundHalfEven(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}

// NormalizeValue turns driver byte slices into strings so that scanned rows
// print and compare cleanly.
func NormalizeValue(val interface{}) interface{} {
	if b, ok := val.([]byte); ok {
		return string(b)
	}
	return val
}

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether name is safe to splice into SQL as a table
// or column name.
func IsIdentifier(name string) bool {
	return identifierRegex.MatchString(name)
}
