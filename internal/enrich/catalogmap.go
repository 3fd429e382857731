package enrich

import "strings"

// Map is an insertion-ordered lookup table from normalized name key to the
// first catalog record seen for that key. Later duplicates are dropped, so
// when two catalog generations are concatenated the earlier one wins.
type Map[T any] struct {
	keys    []string
	entries map[string]T
}

// NewMap creates an empty catalog map.
func NewMap[T any]() *Map[T] {
	return &Map[T]{entries: make(map[string]T)}
}

// Put inserts a record under the normalized form of name. First insertion
// wins; duplicates are silently dropped.
func (m *Map[T]) Put(name string, v T) {
	key := Normalize(name)
	if _, ok := m.entries[key]; ok {
		return
	}
	m.keys = append(m.keys, key)
	m.entries[key] = v
}

// Len returns the number of distinct keys.
func (m *Map[T]) Len() int {
	return len(m.keys)
}

// Find looks up rawName using the fixed precedence order: exact match on
// the aliased key, exact match on the plain key, then a containment scan
// (either direction) with the aliased key, then the same scan with the
// plain key. Exact lookups run first so a precise alias mapping is never
// shadowed by a spurious substring hit.
//
// The containment scans walk keys in insertion order and take the first
// hit, not the best one. That tie-break decides which record wins for
// ambiguous names ("Saddle" vs "Saddle (Exotic)"); changing it to a
// best-match scan would silently change which stats attach.
func (m *Map[T]) Find(aliases Aliases, rawName string) (T, bool) {
	key := Normalize(rawName)
	aliasKey := aliases.Resolve(key)

	if v, ok := m.entries[aliasKey]; ok {
		return v, true
	}
	if v, ok := m.entries[key]; ok {
		return v, true
	}

	for _, k := range m.keys {
		if strings.Contains(k, aliasKey) || strings.Contains(aliasKey, k) {
			return m.entries[k], true
		}
	}
	for _, k := range m.keys {
		if strings.Contains(k, key) || strings.Contains(key, k) {
			return m.entries[k], true
		}
	}

	var zero T
	return zero, false
}
