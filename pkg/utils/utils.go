package utils

import (
	"strconv"
	"strings"
)

// FormatFloat32 renders v as the shortest decimal string that parses back to
// the same float32. Integral values keep a trailing ".0" (0 renders as "0.0").
func FormatFloat32(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eInN") {
		s += ".0"
	}
	return s
}

// IsASCII reports whether b only holds 7-bit ASCII bytes.
func IsASCII(b []byte) bool {
	for _, c := range b {
		if c > 0x7f {
			return false
		}
	}
	return true
}
