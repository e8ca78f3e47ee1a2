package utils

import "strconv"

// Fixed1 formats f with one decimal, like the list view shows pace and speed.
func Fixed1(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// Number formats f without trailing zeros.
func Number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ShortID trims a UUID to its first block for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
