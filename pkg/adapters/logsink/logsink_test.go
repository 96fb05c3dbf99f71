package logsink_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/aretw0/intake/internal/testutils"
	"github.com/aretw0/intake/pkg/adapters/logsink"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverer_LogsMaskedDocument(t *testing.T) {
	var buf bytes.Buffer
	d := logsink.New(slog.New(slog.NewJSONHandler(&buf, nil)), nil)

	doc := testutils.ValidAutoDocument()
	require.NoError(t, d.Deliver(context.Background(), domain.FormAuto, doc))

	var line struct {
		Msg      string         `json:"msg"`
		FormType string         `json:"form_type"`
		Document map[string]any `json:"document"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "auto", line.FormType)

	general := line.Document["generalInfo"].(map[string]any)
	assert.Equal(t, "***", general["email"])
	assert.Equal(t, "***", general["mobilePhone"])
	assert.Equal(t, "Ann Driver", general["insuredName"])
	assert.NotContains(t, buf.String(), "A1234-56789", "license numbers never reach the log")
}

func TestDeliverer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := logsink.New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), nil)
	assert.ErrorIs(t, d.Deliver(ctx, domain.FormAuto, domain.Document{}), context.Canceled)
}
