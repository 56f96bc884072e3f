// Package utils holds small parsing helpers for query parameters.
package utils

import (
	"strconv"
	"strings"
)

// IntOr parses s as a base-10 int, returning def when s is blank or not a
// number.
//
//	utils.IntOr("25", 100)  // 25
//	utils.IntOr(" ", 100)   // 100
//	utils.IntOr("ten", 100) // 100
func IntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
