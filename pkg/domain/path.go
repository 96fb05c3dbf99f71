package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// JoinPath builds a dotted field path, skipping empty segments.
func JoinPath(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}

// SplitPath splits a dotted path into its first segment (the section) and the rest.
func SplitPath(path string) (section, rest string) {
	section, rest, _ = strings.Cut(path, ".")
	return section, rest
}

// Lookup resolves a dotted path (e.g. "drivers.0.dateLicensed.g") against the document.
func (d Document) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// SetPath writes value at a dotted path inside a deep copy of the document and returns the copy.
// Intermediate records and list indices must already exist; the leaf key may be new.
func (d Document) SetPath(path string, value any) (Document, error) {
	segs := strings.Split(path, ".")
	if len(segs) < 2 {
		return nil, fmt.Errorf("%w: %q does not address a field", ErrInvalidPath, path)
	}
	out := d.Clone()
	var cur any = map[string]any(out)
	for i, seg := range segs {
		last := i == len(segs)-1
		switch node := cur.(type) {
		case map[string]any:
			if last {
				node[seg] = value
				return out, nil
			}
			next, ok := node[seg]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
			}
			if last {
				node[idx] = value
				return out, nil
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return out, nil
}
