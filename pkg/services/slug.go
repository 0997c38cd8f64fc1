package services

import (
	"fmt"
	"strings"
)

// Slugify derives a url-safe id from a display name: lower-cased,
// whitespace runs collapsed to single hyphens, everything outside
// [a-z0-9-] stripped, leading/trailing and doubled hyphens removed.
func Slugify(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// uniqueSlug appends an incrementing numeric suffix until the candidate
// does not collide with taken ids.
func uniqueSlug(base string, taken map[string]bool) string {
	if base == "" {
		base = "untitled"
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
