// Package sanitizer normalizes caller-supplied strings before validation and
// storage. Functions are idempotent and never fail; malformed input comes
// back as an empty string.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses internal
// whitespace runs to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeRoomName cleans a display name for a room.
func NormalizeRoomName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeRoomID lowercases and strips whitespace from a room identifier so
// lookups are stable regardless of caller formatting.
func NormalizeRoomID(id string) string {
	id = TrimAndNormalize(id)
	return strings.ToLower(strings.ReplaceAll(id, " ", ""))
}
