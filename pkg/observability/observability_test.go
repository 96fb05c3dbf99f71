package observability_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/testutils"
	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_WizardLifecycle(t *testing.T) {
	ctx := context.Background()
	m := observability.NewMetrics()
	outbox := memory.NewOutbox()
	eng := intake.MustNew(domain.FormProperty,
		intake.WithDeliverer(outbox),
		intake.WithLifecycleHooks(m.Hooks()),
	)

	w := eng.NewWizard(ctx, "s1")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsStarted.WithLabelValues("property")))

	_, err := w.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("property", "step")))

	doc := testutils.ValidPropertyDocument()
	for _, section := range doc.SectionKeys() {
		_, err := w.Update(ctx, section, doc[section])
		require.NoError(t, err)
	}
	_, err = w.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StepEntries.WithLabelValues("property", "1")))

	outbox.FailWith(errors.New("down"))
	_, err = w.Submit(ctx)
	require.NoError(t, err)
	outbox.FailWith(nil)
	_, err = w.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SubmitsStarted.WithLabelValues("property")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Deliveries.WithLabelValues("property", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Deliveries.WithLabelValues("property", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DeliveryDuration), "one histogram series per form type")
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	hooks.OnSessionStart(context.Background(), &domain.StepEvent{EventBase: domain.EventBase{FormType: domain.FormAuto}})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `intake_sessions_started_total{form_type="auto"} 1`)

	expected := `
# HELP intake_sessions_started_total Wizard sessions started.
# TYPE intake_sessions_started_total counter
intake_sessions_started_total{form_type="auto"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(m.SessionsStarted, strings.NewReader(expected)))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := observability.LoggingHooks(logger)

	ctx := context.Background()
	base := domain.EventBase{SessionID: "s1", FormType: domain.FormAuto}
	hooks.OnStepEnter(ctx, &domain.StepEvent{EventBase: base, From: 0, To: 1, StepName: "Driver Information"})
	hooks.OnDelivery(ctx, &domain.DeliveryEvent{EventBase: base, Err: errors.New("smtp down")})

	out := buf.String()
	assert.Contains(t, out, "msg=step_enter")
	assert.Contains(t, out, `step="Driver Information"`)
	assert.Contains(t, out, "level=WARN msg=delivery")
	assert.Contains(t, out, `error="smtp down"`)
}
