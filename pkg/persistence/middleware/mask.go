package middleware

import (
	"regexp"

	"github.com/aretw0/intake/pkg/domain"
)

// Redacted replaces masked values.
const Redacted = "***"

// Masker hides document values whose key matches one of its patterns.
type Masker struct {
	patterns []*regexp.Regexp
}

// NewMasker compiles the key patterns. Invalid patterns are reported, not panicked on.
func NewMasker(patterns ...string) (*Masker, error) {
	m := &Masker{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// MustMasker is like NewMasker but panics on an invalid pattern.
func MustMasker(patterns ...string) *Masker {
	m, err := NewMasker(patterns...)
	if err != nil {
		panic(err)
	}
	return m
}

// Mask returns a masked deep copy of doc; doc itself is untouched.
func (m *Masker) Mask(doc domain.Document) domain.Document {
	out := doc.Clone()
	for k, v := range out {
		out[k] = m.mask(k, v)
	}
	return out
}

func (m *Masker) mask(key string, v any) any {
	if m.matches(key) {
		return Redacted
	}
	switch t := v.(type) {
	case map[string]any:
		for k, nested := range t {
			t[k] = m.mask(k, nested)
		}
	case []any:
		for i, nested := range t {
			t[i] = m.mask("", nested)
		}
	}
	return v
}

func (m *Masker) matches(key string) bool {
	if key == "" {
		return false
	}
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
