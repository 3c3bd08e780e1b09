// ABOUTME: Utility functions for parsing numbers from upstream strings
// ABOUTME: Provides safe parsing with zero defaults, accepting Dutch decimal commas

package parse

import (
	"strconv"
	"strings"
)

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// FloatOrZero parses "4,5" as well as "4.5", returning 0 if parsing fails
func FloatOrZero(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
