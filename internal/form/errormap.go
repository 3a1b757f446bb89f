// Package form holds the building blocks shared by every authoring screen:
// the ErrorMap, the ordered collection editors and the validator wrapper.
package form

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorMap maps a dotted field path (e.g. "questions.0.marks") to a single
// human-readable message. An empty map means the draft is valid.
type ErrorMap map[string]string

// Add records msg for path unless the path already has a message.
func (m ErrorMap) Add(path, msg string) {
	if _, ok := m[path]; ok {
		return
	}
	m[path] = msg
}

// Merge copies every entry of other into m, overwriting existing paths.
func (m ErrorMap) Merge(other ErrorMap) {
	for k, v := range other {
		m[k] = v
	}
}

// Valid reports whether the map holds no errors.
func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// Paths returns the error paths in lexical order.
func (m ErrorMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for k := range m {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	return paths
}

// ClearPrefix drops the entry for prefix and every entry nested under it.
// Editing a field clears its stale errors the way the form does on change.
func (m ErrorMap) ClearPrefix(prefix string) {
	for k := range m {
		if k == prefix || strings.HasPrefix(k, prefix+".") {
			delete(m, k)
		}
	}
}

// Path joins segments into a dotted path. Ints are rendered as indexes.
func Path(segments ...any) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		switch v := s.(type) {
		case int:
			parts = append(parts, strconv.Itoa(v))
		case string:
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ".")
}
