package registry

import (
	"fmt"
)

// Step is one wizard step. The terminal confirmation step has no Section.
type Step struct {
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
}

// Registry is the immutable ordered list of steps of one form family.
type Registry struct {
	steps []Step
	index map[string]int
}

// New builds a registry. It requires at least two steps, a section on every step
// but the last, no section on the last, and unique section keys.
func New(steps ...Step) (*Registry, error) {
	if len(steps) < 2 {
		return nil, fmt.Errorf("registry needs at least 2 steps, got %d", len(steps))
	}
	r := &Registry{
		steps: append([]Step(nil), steps...),
		index: make(map[string]int, len(steps)),
	}
	last := len(steps) - 1
	for i, s := range steps {
		if s.Name == "" {
			return nil, fmt.Errorf("step %d: empty name", i)
		}
		if i == last {
			if s.Section != "" {
				return nil, fmt.Errorf("step %q: terminal step cannot own a section", s.Name)
			}
			continue
		}
		if s.Section == "" {
			return nil, fmt.Errorf("step %q: only the terminal step may omit a section", s.Name)
		}
		if _, dup := r.index[s.Section]; dup {
			return nil, fmt.Errorf("step %q: section %q already owned", s.Name, s.Section)
		}
		r.index[s.Section] = i
	}
	return r, nil
}

// MustNew is like New but panics on an invalid step list.
func MustNew(steps ...Step) *Registry {
	r, err := New(steps...)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return r
}

// Len returns the number of steps, confirmation included.
func (r *Registry) Len() int { return len(r.steps) }

// StepAt returns the step at i.
func (r *Registry) StepAt(i int) (Step, bool) {
	if i < 0 || i >= len(r.steps) {
		return Step{}, false
	}
	return r.steps[i], true
}

// SectionAt returns the section owned by step i, or "" for the confirmation step
// and out-of-range indices.
func (r *Registry) SectionAt(i int) string {
	s, _ := r.StepAt(i)
	return s.Section
}

// IsTerminal reports whether i is the confirmation step.
func (r *Registry) IsTerminal(i int) bool { return i == len(r.steps)-1 }

// LastEditable returns the index of the last step that owns a section.
func (r *Registry) LastEditable() int { return len(r.steps) - 2 }

// IndexOf returns the step that owns section.
func (r *Registry) IndexOf(section string) (int, bool) {
	i, ok := r.index[section]
	return i, ok
}

// Sections returns the section keys in step order.
func (r *Registry) Sections() []string {
	out := make([]string, 0, len(r.steps)-1)
	for _, s := range r.steps[:len(r.steps)-1] {
		out = append(out, s.Section)
	}
	return out
}

// Steps returns a copy of the step list.
func (r *Registry) Steps() []Step {
	return append([]Step(nil), r.steps...)
}
