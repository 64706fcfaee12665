// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of business logic.
package utils

import (
	"strconv"
	"strings"
)

// IngredientImageURL joins the fixed CDN base with the relative image path
// segment carried by instruction step details. The API returns bare file
// names (e.g. "garlic.png"), never full URLs. Empty segments stay empty so
// clients can distinguish "no image" from a broken link.
func IngredientImageURL(base, segment string) string {
	if segment == "" {
		return ""
	}
	if strings.HasPrefix(segment, "http://") || strings.HasPrefix(segment, "https://") {
		return segment
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(segment, "/")
}

// ParseID converts a decimal string to a positive int64 identifier.
// It returns false for empty, non-numeric, zero, or negative input.
func ParseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// AtoiDefault converts a string to an int, falling back to def when the
// string is empty or not a valid integer.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
