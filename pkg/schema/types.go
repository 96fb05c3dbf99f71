package schema

import (
	"fmt"
	"strings"
)

// Kind defines how a field value is checked and normalized.
type Kind int

const (
	// KindString is free text.
	KindString Kind = iota
	// KindEnum is text restricted to Options.
	KindEnum
	// KindEmail is text shaped like local@domain.tld.
	KindEmail
	// KindNumeric is text that must parse as a number (years, kilometres).
	KindNumeric
	// KindNumber is a real number; numeric strings are coerced.
	KindNumber
	// KindBool is a true/false flag.
	KindBool
	// KindObject is a nested record described by Fields.
	KindObject
	// KindList is a repeatable list of records described by Fields.
	KindList
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindEnum:    "enum",
	KindEmail:   "email",
	KindNumeric: "numeric",
	KindNumber:  "number",
	KindBool:    "bool",
	KindObject:  "object",
	KindList:    "list",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field describes a single rule in a section table.
// A section is itself a Field of KindObject or KindList.
type Field struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`

	// DefaultValue replaces absent or empty optional values.
	DefaultValue any `json:"default,omitempty"`

	// Fields describes the record of an object, or the element record of a list.
	Fields []Field `json:"fields,omitempty"`

	MinItems int `json:"min_items,omitempty"`
	MaxItems int `json:"max_items,omitempty"`

	// Check runs after the kind rule passed on a non-empty value.
	Check func(value any) error `json:"-"`
}

// --- Factory Functions ---

// Text creates an optional free-text field.
func Text(key, label string) Field { return Field{Key: key, Label: label, Kind: KindString} }

// Enum creates an optional field restricted to options.
func Enum(key, label string, options ...string) Field {
	return Field{Key: key, Label: label, Kind: KindEnum, Options: options}
}

// Email creates an optional email field.
func Email(key, label string) Field { return Field{Key: key, Label: label, Kind: KindEmail} }

// Numeric creates an optional text field that must hold a number.
func Numeric(key, label string) Field { return Field{Key: key, Label: label, Kind: KindNumeric} }

// Number creates an optional numeric field.
func Number(key, label string) Field { return Field{Key: key, Label: label, Kind: KindNumber} }

// Bool creates an optional flag.
func Bool(key, label string) Field { return Field{Key: key, Label: label, Kind: KindBool} }

// Object creates a nested record.
func Object(key, label string, fields ...Field) Field {
	return Field{Key: key, Label: label, Kind: KindObject, Fields: fields}
}

// List creates a repeatable list of records holding between min and max entries.
func List(key, label string, min, max int, fields ...Field) Field {
	return Field{Key: key, Label: label, Kind: KindList, Fields: fields, MinItems: min, MaxItems: max}
}

// Require marks the field as required.
func (f Field) Require() Field {
	f.Required = true
	return f
}

// WithDefault sets the value used when the field is absent or empty.
func (f Field) WithDefault(v any) Field {
	f.DefaultValue = v
	return f
}

// WithCheck attaches an extra rule evaluated after the kind rule.
func (f Field) WithCheck(check func(any) error) Field {
	f.Check = check
	return f
}

// Lookup returns the child field with the given key.
func (f Field) Lookup(key string) (Field, bool) {
	for _, child := range f.Fields {
		if child.Key == key {
			return child, true
		}
	}
	return Field{}, false
}

// Schema is the ordered set of section rules of one form family.
type Schema struct {
	sections []Field
	index    map[string]int
}

// New builds a schema from section fields. Section keys must be unique
// and sections must be objects or lists.
func New(sections ...Field) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(sections))}
	for i, sec := range sections {
		if sec.Key == "" {
			return nil, fmt.Errorf("section %d: empty key", i)
		}
		if _, dup := s.index[sec.Key]; dup {
			return nil, fmt.Errorf("section %q: duplicate key", sec.Key)
		}
		if sec.Kind != KindObject && sec.Kind != KindList {
			return nil, fmt.Errorf("section %q: kind %s is not a record", sec.Key, sec.Kind)
		}
		if err := checkField(sec, sec.Key); err != nil {
			return nil, err
		}
		s.index[sec.Key] = i
		s.sections = append(s.sections, sec)
	}
	return s, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(sections ...Field) *Schema {
	s, err := New(sections...)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return s
}

func checkField(f Field, path string) error {
	switch f.Kind {
	case KindEnum:
		if len(f.Options) == 0 {
			return fmt.Errorf("field %q: enum without options", path)
		}
	case KindList:
		if f.MaxItems > 0 && f.MinItems > f.MaxItems {
			return fmt.Errorf("field %q: min items %d above max %d", path, f.MinItems, f.MaxItems)
		}
	}
	seen := make(map[string]bool, len(f.Fields))
	for _, child := range f.Fields {
		if seen[child.Key] {
			return fmt.Errorf("field %q: duplicate key %q", path, child.Key)
		}
		seen[child.Key] = true
		if err := checkField(child, path+"."+child.Key); err != nil {
			return err
		}
	}
	return nil
}

// Sections returns the section rules in declaration order.
func (s *Schema) Sections() []Field {
	out := make([]Field, len(s.sections))
	copy(out, s.sections)
	return out
}

// Section returns the rule of a section.
func (s *Schema) Section(key string) (Field, bool) {
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}
	return s.sections[i], true
}

// Keys returns the section keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.sections))
	for i, sec := range s.sections {
		keys[i] = sec.Key
	}
	return keys
}

// FieldAt resolves the rule governing a dotted path such as "drivers.0.dateLicensed.g".
// List indices are skipped when walking the table.
func (s *Schema) FieldAt(path string) (Field, bool) {
	segs := strings.Split(path, ".")
	cur, ok := s.Section(segs[0])
	if !ok {
		return Field{}, false
	}
	for _, seg := range segs[1:] {
		if cur.Kind == KindList && isIndex(seg) {
			cur = Field{Key: seg, Kind: KindObject, Fields: cur.Fields}
			continue
		}
		next, found := cur.Lookup(seg)
		if !found {
			return Field{}, false
		}
		cur = next
	}
	return cur, true
}

func isIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
