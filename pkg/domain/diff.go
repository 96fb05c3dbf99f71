package domain

import (
	"reflect"
	"sort"
	"strconv"
)

// ChangedPaths returns the dotted leaf paths whose values differ between old and new.
// A list whose length changed is reported at its own path as well as at each
// index present on only one side. Paths are returned in lexical order.
func ChangedPaths(old, new Document) []string {
	seen := make(map[string]struct{})
	diffValue(map[string]any(old), map[string]any(new), "", seen)
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func diffValue(oldVal, newVal any, path string, seen map[string]struct{}) {
	oldMap, oldIsMap := asMap(oldVal)
	newMap, newIsMap := asMap(newVal)
	if oldIsMap && newIsMap {
		for k, v := range newMap {
			o, exists := oldMap[k]
			if !exists {
				mark(JoinPath(path, k), seen)
				continue
			}
			diffValue(o, v, JoinPath(path, k), seen)
		}
		for k := range oldMap {
			if _, exists := newMap[k]; !exists {
				mark(JoinPath(path, k), seen)
			}
		}
		return
	}

	oldList, oldIsList := oldVal.([]any)
	newList, newIsList := newVal.([]any)
	if oldIsList && newIsList {
		if len(oldList) != len(newList) {
			mark(path, seen)
		}
		for i := 0; i < max(len(oldList), len(newList)); i++ {
			p := JoinPath(path, strconv.Itoa(i))
			if i >= len(oldList) || i >= len(newList) {
				mark(p, seen)
				continue
			}
			diffValue(oldList[i], newList[i], p, seen)
		}
		return
	}

	if !reflect.DeepEqual(oldVal, newVal) {
		mark(path, seen)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return map[string]any(m), true
	}
	return nil, false
}

func mark(path string, seen map[string]struct{}) {
	if path != "" {
		seen[path] = struct{}{}
	}
}
