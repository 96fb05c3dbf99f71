package schema

import "github.com/aretw0/intake/pkg/domain"

// Defaults builds the seeded value of a section: declared defaults for every field,
// and MinItems (at least one) seeded entries for lists.
func Defaults(s *Schema, key string) (any, bool) {
	sec, ok := s.Section(key)
	if !ok {
		return nil, false
	}
	return defaultFor(sec), true
}

// DefaultDocument seeds every declared section.
func DefaultDocument(s *Schema) domain.Document {
	doc := make(domain.Document, len(s.sections))
	for _, sec := range s.sections {
		doc[sec.Key] = defaultFor(sec)
	}
	return doc
}

// NewEntry returns a seeded element record for a list section.
func NewEntry(f Field) map[string]any {
	return defaultRecord(f.Fields)
}

func defaultFor(f Field) any {
	if f.DefaultValue != nil {
		return domain.CloneValue(f.DefaultValue)
	}
	switch f.Kind {
	case KindObject:
		return defaultRecord(f.Fields)
	case KindList:
		n := max(f.MinItems, 1)
		items := make([]any, n)
		for i := range items {
			items[i] = defaultRecord(f.Fields)
		}
		return items
	case KindBool:
		return false
	case KindNumber:
		return 0
	default:
		return ""
	}
}

func defaultRecord(fields []Field) map[string]any {
	rec := make(map[string]any, len(fields))
	for _, f := range fields {
		rec[f.Key] = defaultFor(f)
	}
	return rec
}
