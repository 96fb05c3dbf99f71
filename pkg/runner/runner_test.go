package runner_test

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/testutils"
	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted answers by path. An exhausted queue keeps the current value for
// fields and picks the first option for menus.
type scripted struct {
	answers map[string][]any
	choices map[string][]string
	asked   []string
}

func newScripted(answers map[string][]any) *scripted {
	if answers == nil {
		answers = map[string][]any{}
	}
	return &scripted{answers: answers, choices: map[string][]string{}}
}

func (s *scripted) Ask(q runner.Question) (any, error) {
	s.asked = append(s.asked, q.Path)
	queue := s.answers[q.Path]
	if len(queue) == 0 {
		return q.Current, nil
	}
	s.answers[q.Path] = queue[1:]
	return queue[0], nil
}

func (s *scripted) Choose(q runner.Question) (string, error) {
	queue := s.choices[q.Path]
	if len(queue) == 0 {
		return q.Options[0], nil
	}
	s.choices[q.Path] = queue[1:]
	if queue[0] == "" {
		return "", runner.ErrAborted
	}
	return queue[0], nil
}

// answersFrom flattens a document into one answer per leaf path.
func answersFrom(doc domain.Document) map[string][]any {
	out := map[string][]any{}
	var walk func(path string, v any)
	walk = func(path string, v any) {
		switch t := v.(type) {
		case map[string]any:
			for k, child := range t {
				walk(domain.JoinPath(path, k), child)
			}
		case []any:
			for i, child := range t {
				walk(domain.JoinPath(path, strconv.Itoa(i)), child)
			}
		default:
			out[path] = []any{t}
		}
	}
	for k, v := range doc {
		walk(k, v)
	}
	return out
}

func newWizard(t *testing.T, formType domain.FormType, d ports.Deliverer) *intake.Wizard {
	t.Helper()
	eng, err := intake.New(formType, intake.WithDeliverer(d))
	require.NoError(t, err)
	return eng.NewWizard(t.Context(), "s-"+string(formType))
}

func TestRun_AutoApplication(t *testing.T) {
	outbox := memory.NewOutbox()
	w := newWizard(t, domain.FormAuto, outbox)
	var out bytes.Buffer

	p := newScripted(answersFrom(testutils.ValidAutoDocument()))
	state, err := runner.New(p, runner.WithOutput(&out)).Run(t.Context(), w)
	require.NoError(t, err)

	assert.True(t, state.IsSubmitted())
	require.Len(t, outbox.Messages(), 1)
	doc := outbox.Messages()[0].Document
	name, _ := doc.Lookup("generalInfo.insuredName")
	assert.Equal(t, "Ann Driver", name)
	vin, _ := doc.Lookup("vehicles.0.vin")
	assert.Equal(t, "1HGCV1F30JA000000", vin)

	text := out.String()
	assert.Contains(t, text, "# Auto Insurance Application")
	assert.Contains(t, text, "## Step 1 of 5: General Information")
	assert.Contains(t, text, "## Step 4 of 5: Driving History")
	assert.Contains(t, text, "Thank you, Ann Driver!")
	assert.Contains(t, p.asked, "drivers.0.dateLicensed.g2")
}

func TestRun_PropertyApplication(t *testing.T) {
	outbox := memory.NewOutbox()
	w := newWizard(t, domain.FormProperty, outbox)
	var out bytes.Buffer

	p := newScripted(answersFrom(testutils.ValidPropertyDocument()))
	state, err := runner.New(p, runner.WithOutput(&out)).Run(t.Context(), w)
	require.NoError(t, err)

	assert.True(t, state.IsSubmitted())
	require.Len(t, outbox.Messages(), 1)
	assert.Equal(t, domain.FormProperty, outbox.Messages()[0].FormType)
	assert.Contains(t, out.String(), "Thank you, Pat Owner!")
}

func TestRun_ValidationFailureRepromptsStep(t *testing.T) {
	outbox := memory.NewOutbox()
	w := newWizard(t, domain.FormAuto, outbox)
	var out bytes.Buffer

	answers := answersFrom(testutils.ValidAutoDocument())
	answers["generalInfo.email"] = []any{"not-an-email", "ann@example.com"}

	_, err := runner.New(newScripted(answers), runner.WithOutput(&out)).Run(t.Context(), w)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Please fix the following")
	assert.Contains(t, text, "Email (`generalInfo.email`): invalid email format")
	assert.Equal(t, 2, strings.Count(text, "## Step 1 of 5"))

	email, _ := outbox.Messages()[0].Document.Lookup("generalInfo.email")
	assert.Equal(t, "ann@example.com", email)
}

func TestRun_AddAndRemoveEntries(t *testing.T) {
	outbox := memory.NewOutbox()
	w := newWizard(t, domain.FormAuto, outbox)

	answers := answersFrom(testutils.ValidAutoDocument())
	answers["drivers.1.name"] = []any{"Bob Driver"}
	answers["drivers.1.licenseNumber"] = []any{"B1234"}
	answers["drivers.1.relationToInsured"] = []any{"spouse"}
	p := newScripted(answers)
	p.choices["drivers"] = []string{runner.ChoiceAdd, runner.ChoiceAdd, runner.ChoiceRemove, runner.ChoiceContinue}

	_, err := runner.New(p, runner.WithOutput(&bytes.Buffer{})).Run(t.Context(), w)
	require.NoError(t, err)

	drivers, _ := outbox.Messages()[0].Document.Lookup("drivers")
	require.Len(t, drivers, 2)
	name, _ := outbox.Messages()[0].Document.Lookup("drivers.1.name")
	assert.Equal(t, "Bob Driver", name)
}

func TestRun_BackRevisitsStep(t *testing.T) {
	w := newWizard(t, domain.FormAuto, memory.NewOutbox())
	var out bytes.Buffer

	p := newScripted(answersFrom(testutils.ValidAutoDocument()))
	p.choices[""] = []string{runner.ChoiceNext, runner.ChoiceBack}

	state, err := runner.New(p, runner.WithOutput(&out)).Run(t.Context(), w)
	require.NoError(t, err)
	assert.True(t, state.IsSubmitted())
	assert.Equal(t, 2, strings.Count(out.String(), "## Step 1 of 5"))
	assert.Equal(t, 2, strings.Count(out.String(), "## Step 2 of 5"))
}

func TestRun_DeliveryFailureCanBeRetried(t *testing.T) {
	outbox := memory.NewOutbox()
	var calls atomic.Int32
	d := ports.DelivererFunc(func(ctx context.Context, ft domain.FormType, doc domain.Document) error {
		if calls.Add(1) == 1 {
			return errors.New("mail relay down")
		}
		return outbox.Deliver(ctx, ft, doc)
	})
	w := newWizard(t, domain.FormAuto, d)
	var out bytes.Buffer

	p := newScripted(answersFrom(testutils.ValidAutoDocument()))
	state, err := runner.New(p, runner.WithOutput(&out)).Run(t.Context(), w)
	require.NoError(t, err)

	assert.True(t, state.IsSubmitted())
	assert.EqualValues(t, 2, calls.Load())
	assert.Contains(t, out.String(), "Submission failed")
	assert.Contains(t, out.String(), "mail relay down")
	assert.Len(t, outbox.Messages(), 1)
}

func TestRun_QuitSavesSession(t *testing.T) {
	store := memory.NewStore()
	w := newWizard(t, domain.FormAuto, memory.NewOutbox())

	p := newScripted(answersFrom(testutils.ValidAutoDocument()))
	p.choices[""] = []string{runner.ChoiceNext, runner.ChoiceQuit}

	state, err := runner.New(p, runner.WithOutput(&bytes.Buffer{}), runner.WithStore(store)).Run(t.Context(), w)
	require.ErrorIs(t, err, runner.ErrAborted)
	assert.Equal(t, 1, state.StepIndex)

	saved, err := store.Load(t.Context(), state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.StepIndex)
	name, _ := saved.Document.Lookup("generalInfo.insuredName")
	assert.Equal(t, "Ann Driver", name)
}

func TestRun_InterruptSavesSession(t *testing.T) {
	store := memory.NewStore()
	w := newWizard(t, domain.FormAuto, memory.NewOutbox())

	p := newScripted(nil)
	p.choices[""] = []string{""}

	_, err := runner.New(p, runner.WithOutput(&bytes.Buffer{}), runner.WithStore(store)).Run(t.Context(), w)
	require.ErrorIs(t, err, runner.ErrAborted)

	_, err = store.Load(t.Context(), "s-auto")
	assert.NoError(t, err)
}

func TestRun_SanitizesAnswers(t *testing.T) {
	outbox := memory.NewOutbox()
	w := newWizard(t, domain.FormAuto, outbox)

	answers := answersFrom(testutils.ValidAutoDocument())
	answers["generalInfo.address"] = []any{"123 St\x1b[0m"}
	_, err := runner.New(newScripted(answers), runner.WithOutput(&bytes.Buffer{})).Run(t.Context(), w)
	require.NoError(t, err)

	addr, _ := outbox.Messages()[0].Document.Lookup("generalInfo.address")
	assert.Equal(t, "123 St[0m", addr)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	w := newWizard(t, domain.FormAuto, memory.NewOutbox())
	_, err := runner.New(newScripted(nil), runner.WithOutput(&bytes.Buffer{})).Run(ctx, w)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RendererIsApplied(t *testing.T) {
	w := newWizard(t, domain.FormAuto, memory.NewOutbox())
	var out bytes.Buffer

	p := newScripted(answersFrom(testutils.ValidAutoDocument()))
	render := func(md string) (string, error) { return strings.ToUpper(md), nil }
	_, err := runner.New(p, runner.WithOutput(&out), runner.WithRenderer(render)).Run(t.Context(), w)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "# AUTO INSURANCE APPLICATION")
}
