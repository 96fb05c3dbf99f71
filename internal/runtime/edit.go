package runtime

import (
	"context"
	"fmt"
	"reflect"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/schema"
)

// Update replaces one section wholesale. Error entries whose value changed
// between the old and new section are cleared; no validation runs.
func (e *Engine) Update(ctx context.Context, state *domain.State, section string, value any) (*domain.State, domain.Result, error) {
	if err := e.checkEditable(state); err != nil {
		return nil, domain.Result{}, err
	}
	if _, ok := e.def.Registry.IndexOf(section); !ok {
		return nil, domain.Result{}, fmt.Errorf("%w: %q in %s form", domain.ErrUnknownSection, section, e.def.Type)
	}
	next := e.replaceSection(state, section, domain.CloneValue(value))
	return next, domain.Result{Outcome: domain.OutcomeUpdated, Errors: next.Errors.Clone()}, nil
}

// UpdateField sets a single leaf value by dotted path (e.g. "drivers.1.dateLicensed.g").
// The error entry for the path is cleared only when the value actually changes.
func (e *Engine) UpdateField(ctx context.Context, state *domain.State, path string, value any) (*domain.State, domain.Result, error) {
	if err := e.checkEditable(state); err != nil {
		return nil, domain.Result{}, err
	}
	section, rest := domain.SplitPath(path)
	if _, ok := e.def.Registry.IndexOf(section); !ok {
		return nil, domain.Result{}, fmt.Errorf("%w: %q in %s form", domain.ErrUnknownSection, section, e.def.Type)
	}
	if rest == "" {
		return nil, domain.Result{}, fmt.Errorf("%w: %q names a section, use Update", domain.ErrInvalidPath, path)
	}
	field, ok := e.def.Schema.FieldAt(path)
	if !ok {
		return nil, domain.Result{}, fmt.Errorf("%w: %q is not declared", domain.ErrInvalidPath, path)
	}
	if field.Kind == schema.KindObject || field.Kind == schema.KindList {
		return nil, domain.Result{}, fmt.Errorf("%w: %q is not a leaf field, use Update", domain.ErrInvalidPath, path)
	}

	old, existed := state.Document.Lookup(path)
	doc, err := state.Document.SetPath(path, domain.CloneValue(value))
	if err != nil {
		return nil, domain.Result{}, err
	}
	next := e.cloneState(state)
	next.Document = doc
	if !existed || !reflect.DeepEqual(old, value) {
		next.Errors.ClearPath(path)
	}
	return next, domain.Result{Outcome: domain.OutcomeUpdated, Errors: next.Errors.Clone()}, nil
}

// AddEntry appends a seeded record to a repeatable section.
func (e *Engine) AddEntry(ctx context.Context, state *domain.State, section string) (*domain.State, domain.Result, error) {
	if err := e.checkEditable(state); err != nil {
		return nil, domain.Result{}, err
	}
	field, items, err := e.repeatable(state, section)
	if err != nil {
		return nil, domain.Result{}, err
	}
	if field.MaxItems > 0 && len(items) >= field.MaxItems {
		return nil, domain.Result{}, fmt.Errorf("%w: %s holds at most %d entries", domain.ErrEntryLimit, section, field.MaxItems)
	}

	grown := make([]any, 0, len(items)+1)
	grown = append(grown, items...)
	grown = append(grown, schema.NewEntry(field))

	next := e.replaceSection(state, section, grown)
	e.logger.Debug("entry added", "session_id", state.SessionID, "section", section, "count", len(grown))
	return next, domain.Result{Outcome: domain.OutcomeUpdated, Errors: next.Errors.Clone()}, nil
}

// RemoveEntry deletes the record at index. The first record is never removable.
func (e *Engine) RemoveEntry(ctx context.Context, state *domain.State, section string, index int) (*domain.State, domain.Result, error) {
	if err := e.checkEditable(state); err != nil {
		return nil, domain.Result{}, err
	}
	_, items, err := e.repeatable(state, section)
	if err != nil {
		return nil, domain.Result{}, err
	}
	if index <= 0 || index >= len(items) {
		return nil, domain.Result{}, fmt.Errorf("%w: %s index %d of %d", domain.ErrEntryNotRemovable, section, index, len(items))
	}

	shrunk := make([]any, 0, len(items)-1)
	shrunk = append(shrunk, items[:index]...)
	shrunk = append(shrunk, items[index+1:]...)

	next := e.replaceSection(state, section, shrunk)
	e.logger.Debug("entry removed", "session_id", state.SessionID, "section", section, "index", index)
	return next, domain.Result{Outcome: domain.OutcomeUpdated, Errors: next.Errors.Clone()}, nil
}

func (e *Engine) repeatable(state *domain.State, section string) (schema.Field, []any, error) {
	field, ok := e.def.Section(section)
	if !ok {
		return schema.Field{}, nil, fmt.Errorf("%w: %q in %s form", domain.ErrUnknownSection, section, e.def.Type)
	}
	if field.Kind != schema.KindList {
		return schema.Field{}, nil, fmt.Errorf("%w: %q", domain.ErrNotRepeatable, section)
	}
	items, _ := domain.CloneValue(state.Document[section]).([]any)
	return field, items, nil
}

// replaceSection installs value and clears the errors of every path whose value changed.
func (e *Engine) replaceSection(state *domain.State, section string, value any) *domain.State {
	next := e.cloneState(state)
	next.Document[section] = value

	changed := domain.ChangedPaths(
		domain.Document{section: state.Document[section]},
		domain.Document{section: value},
	)
	for _, path := range changed {
		next.Errors.ClearPath(path)
	}
	return next
}
