package domain

import (
	"sort"
	"strings"
)

// FormType selects one of the supported form families.
type FormType string

const (
	FormAuto     FormType = "auto"
	FormProperty FormType = "property"
)

// Valid reports whether t names a known form family.
func (t FormType) Valid() bool {
	return t == FormAuto || t == FormProperty
}

func (t FormType) String() string { return string(t) }

// Document is the accumulated form data keyed by section.
// A section value is a record (map[string]any) or a repeatable list ([]any of records).
type Document map[string]any

// Clone returns a deep copy of the document so callers can mutate it safely.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = CloneValue(v)
	}
	return out
}

// SectionKeys returns the section keys in lexical order.
func (d Document) SectionKeys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CloneValue deep-copies maps and slices produced by JSON/YAML decoding or seeded defaults.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = CloneValue(inner)
		}
		return out
	case Document:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = CloneValue(inner)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = CloneValue(inner)
		}
		return out
	default:
		return v
	}
}

// ErrorMap maps a dotted field path (e.g. "drivers.0.name") to a message.
type ErrorMap map[string]string

// Clone returns a copy of the map. A nil map clones to an empty one.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
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

// ForSection returns the entries under section with the section prefix stripped,
// the shape section editors consume ("drivers.0.name" -> "0.name").
func (m ErrorMap) ForSection(section string) ErrorMap {
	out := make(ErrorMap)
	prefix := section + "."
	for k, v := range m {
		if k == section {
			out[""] = v
			continue
		}
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return out
}

// ClearPath deletes the entry for path and every entry nested below it.
// It reports how many entries were removed.
func (m ErrorMap) ClearPath(path string) int {
	removed := 0
	prefix := path + "."
	for k := range m {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(m, k)
			removed++
		}
	}
	return removed
}
