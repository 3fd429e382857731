// Package enrich attaches catalog statistics to local items by normalized
// name matching: normalize, resolve aliases, exact match, then substring
// containment fallback, then merge the three catalog records into one
// stats object.
package enrich

import "strings"

// Normalize canonicalizes a name into its comparison key: lowercase with
// every character outside [a-z0-9] stripped. This is the sole key space for
// matching; collisions between distinct source names are accepted.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
