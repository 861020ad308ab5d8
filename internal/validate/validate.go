package validate

import (
	"regexp"
	"strconv"
	"strings"

	"tiendajson/internal/domain"
)

var (
	reQ      = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)
	reCartID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reName   = regexp.MustCompile(`^[\pL\pN _'&.-]{1,60}$`)
)

// ProductID parses a positive integer product id.
func ProductID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// CartID validates an opaque cart handle. The result is a copy, safe to keep
// after the request that supplied s has finished.
func CartID(s string) (string, bool) {
	s = strings.Clone(strings.TrimSpace(s))
	return s, s != "" && reCartID.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Category validates a category name taken from a path segment.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reName.MatchString(s)
}

// Limit parses an optional list limit. Empty means no limit (0).
func Limit(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Qty clamps a requested line quantity to 0..domain.MaxLineQuantity. Zero
// removes the line.
func Qty(n int) int {
	if n < 0 {
		return 0
	}
	if n > domain.MaxLineQuantity {
		return domain.MaxLineQuantity
	}
	return n
}
