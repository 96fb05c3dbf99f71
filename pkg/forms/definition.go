package forms

import (
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/registry"
	"github.com/aretw0/intake/pkg/schema"
)

// Definition binds a form family to its step registry and rule tables.
type Definition struct {
	Type     domain.FormType
	Title    string
	Registry *registry.Registry
	Schema   *schema.Schema

	applicant func(domain.Document) string
}

// Option customizes a Definition.
type Option func(*Definition)

// WithApplicantName sets how the confirmation step names the applicant.
func WithApplicantName(fn func(domain.Document) string) Option {
	return func(d *Definition) { d.applicant = fn }
}

// New builds a definition. Every registry section must be declared by the schema
// and every schema section must be owned by a step.
func New(t domain.FormType, title string, reg *registry.Registry, s *schema.Schema, opts ...Option) (*Definition, error) {
	if reg == nil || s == nil {
		return nil, fmt.Errorf("form %s: registry and schema are required", t)
	}
	for _, section := range reg.Sections() {
		if _, ok := s.Section(section); !ok {
			return nil, fmt.Errorf("form %s: step section %q: %w", t, section, domain.ErrUnknownSection)
		}
	}
	for _, key := range s.Keys() {
		if _, ok := reg.IndexOf(key); !ok {
			return nil, fmt.Errorf("form %s: section %q has no step", t, key)
		}
	}
	d := &Definition{Type: t, Title: title, Registry: reg, Schema: s}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MustNew is like New but panics on a registry/schema mismatch.
func MustNew(t domain.FormType, title string, reg *registry.Registry, s *schema.Schema, opts ...Option) *Definition {
	d, err := New(t, title, reg, s, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Seed returns a document holding every declared section with its defaults.
func (d *Definition) Seed() domain.Document {
	return schema.DefaultDocument(d.Schema)
}

// Section returns the rule of a section owned by this form.
func (d *Definition) Section(key string) (schema.Field, bool) {
	return d.Schema.Section(key)
}

// Progress reports the indicator for step i.
func (d *Definition) Progress(i int) domain.Progress {
	step, _ := d.Registry.StepAt(i)
	return domain.NewProgress(i, d.Registry.Len(), step.Name)
}

// ApplicantName returns the name shown on the confirmation step, or "".
func (d *Definition) ApplicantName(doc domain.Document) string {
	if d.applicant == nil {
		return ""
	}
	return d.applicant(doc)
}
