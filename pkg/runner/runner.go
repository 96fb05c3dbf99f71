package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/google/go-cmp/cmp"
)

// ContentRenderer transforms markdown before it is written, e.g. to ANSI.
type ContentRenderer func(string) (string, error)

// Runner walks a wizard from the terminal.
type Runner struct {
	prompter Prompter
	out      io.Writer
	render   ContentRenderer
	store    ports.StateStore
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where headers and messages are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithRenderer sets the markdown renderer. Without one, markdown is written as is.
func WithRenderer(render ContentRenderer) Option {
	return func(r *Runner) {
		r.render = render
	}
}

// WithStore saves the session after every transition so it can be resumed.
func WithStore(store ports.StateStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Runner that asks questions through p.
func New(p Prompter, opts ...Option) *Runner {
	r := &Runner{
		prompter: p,
		out:      os.Stdout,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fills the wizard step by step until the application is delivered.
// It returns ErrAborted when the user quits; the session is saved first when a
// store is configured.
func (r *Runner) Run(ctx context.Context, w *intake.Wizard) (*domain.State, error) {
	def := w.Definition()
	r.show(titleMarkdown(def))

	for !w.Done() {
		if err := ctx.Err(); err != nil {
			return w.State(), err
		}

		index := w.Step()
		section := def.Registry.SectionAt(index)
		field, ok := def.Section(section)
		if !ok {
			return w.State(), fmt.Errorf("%w: %q", domain.ErrUnknownSection, section)
		}

		r.show(stepMarkdown(def.Progress(index)))
		if err := r.fill(ctx, w, field, field.Key, ""); err != nil {
			return r.stop(ctx, w, err)
		}

		choice, err := r.prompter.Choose(Question{Label: NavigationLabel, Options: navChoices(def, index)})
		if err != nil {
			return r.stop(ctx, w, err)
		}

		var res domain.Result
		switch choice {
		case ChoiceNext, ChoiceSubmit:
			res, err = w.Proceed(ctx)
		case ChoiceBack:
			res, err = w.Retreat(ctx)
		case ChoiceQuit:
			return r.stop(ctx, w, ErrAborted)
		default:
			return w.State(), fmt.Errorf("unknown menu choice %q", choice)
		}
		if err != nil {
			return w.State(), err
		}
		r.logger.Debug("transition", "session_id", w.State().SessionID, "choice", choice, "outcome", res.Outcome)
		r.report(def, res)

		if err := r.save(ctx, w); err != nil {
			return w.State(), err
		}
	}

	state := w.State()
	r.show(summaryMarkdown(def, state))
	return state, nil
}

// stop saves the session before returning err.
func (r *Runner) stop(ctx context.Context, w *intake.Wizard, err error) (*domain.State, error) {
	if errors.Is(err, ErrAborted) {
		if saveErr := r.save(context.WithoutCancel(ctx), w); saveErr != nil {
			return w.State(), errors.Join(err, saveErr)
		}
	}
	return w.State(), err
}

// fill asks for every field of an object or list rule rooted at path.
func (r *Runner) fill(ctx context.Context, w *intake.Wizard, f schema.Field, path, label string) error {
	switch f.Kind {
	case schema.KindObject:
		for _, child := range f.Fields {
			if err := r.fill(ctx, w, child, domain.JoinPath(path, child.Key), joinLabel(label, child.Label)); err != nil {
				return err
			}
		}
		return nil
	case schema.KindList:
		return r.fillList(ctx, w, f, path, label)
	default:
		return r.ask(ctx, w, f, path, label)
	}
}

func (r *Runner) fillList(ctx context.Context, w *intake.Wizard, f schema.Field, path, label string) error {
	entry := func(i int) error {
		record := schema.Field{Kind: schema.KindObject, Fields: f.Fields}
		return r.fill(ctx, w, record, domain.JoinPath(path, strconv.Itoa(i)), joinLabel(label, "#"+strconv.Itoa(i+1)))
	}

	n := entryCount(w, path)
	for i := 0; i < n; i++ {
		if err := entry(i); err != nil {
			return err
		}
	}

	for {
		n = entryCount(w, path)
		choices := []string{ChoiceContinue}
		if f.MaxItems == 0 || n < f.MaxItems {
			choices = append(choices, ChoiceAdd)
		}
		if n > 1 {
			choices = append(choices, ChoiceRemove)
		}
		if len(choices) == 1 {
			return nil
		}

		msg := fmt.Sprintf("%s: %d entered", f.Label, n)
		if f.MaxItems > 0 {
			msg = fmt.Sprintf("%s: %d of %d entered", f.Label, n, f.MaxItems)
		}
		choice, err := r.prompter.Choose(Question{Path: path, Label: msg, Kind: schema.KindList, Options: choices})
		if err != nil {
			return err
		}

		switch choice {
		case ChoiceContinue:
			return nil
		case ChoiceAdd:
			if _, err := w.AddEntry(ctx, path); err != nil {
				return err
			}
			if err := entry(n); err != nil {
				return err
			}
		case ChoiceRemove:
			if _, err := w.RemoveEntry(ctx, path, n-1); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown menu choice %q", choice)
		}
	}
}

// ask prompts for one scalar and writes it back when it changed.
func (r *Runner) ask(ctx context.Context, w *intake.Wizard, f schema.Field, path, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	current, _ := w.State().Document.Lookup(path)

	for {
		value, err := r.prompter.Ask(Question{
			Path:     path,
			Label:    label,
			Kind:     f.Kind,
			Required: f.Required,
			Options:  f.Options,
			Current:  current,
		})
		if err != nil {
			return err
		}

		if text, ok := value.(string); ok {
			clean, err := SanitizeInput(text)
			if err != nil {
				fmt.Fprintf(r.out, "Error: %v. Please try again.\n", err)
				continue
			}
			value = clean
		}

		if cmp.Equal(value, current) {
			return nil
		}
		_, err = w.UpdateField(ctx, path, value)
		return err
	}
}

func (r *Runner) report(def *forms.Definition, res domain.Result) {
	switch res.Outcome {
	case domain.OutcomeValidationFailed:
		r.show(errorsMarkdown(def, res.Errors))
	case domain.OutcomeDeliveryFailed:
		r.show(deliveryFailedMarkdown(res.Err))
	}
}

func (r *Runner) save(ctx context.Context, w *intake.Wizard) error {
	if r.store == nil {
		return nil
	}
	state := w.State()
	if err := r.store.Save(ctx, state.SessionID, state); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	r.logger.Debug("state saved", "session_id", state.SessionID, "step", state.StepIndex)
	return nil
}

func (r *Runner) show(markdown string) {
	out := markdown
	if r.render != nil {
		if rendered, err := r.render(markdown); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(r.out, strings.TrimSpace(out))
}

func navChoices(def *forms.Definition, index int) []string {
	choices := []string{ChoiceNext}
	if index >= def.Registry.LastEditable() {
		choices[0] = ChoiceSubmit
	}
	if index > 0 {
		choices = append(choices, ChoiceBack)
	}
	return append(choices, ChoiceQuit)
}

func entryCount(w *intake.Wizard, path string) int {
	v, _ := w.State().Document.Lookup(path)
	list, _ := v.([]any)
	return len(list)
}

func joinLabel(prefix, label string) string {
	if prefix == "" {
		return label
	}
	return prefix + " / " + label
}
