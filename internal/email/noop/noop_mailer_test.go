package noop_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"capprice/internal/email/noop"
	"capprice/internal/port"
)

func TestNoopMailer_LogsInsteadOfSending(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mailer := noop.NewNoopMailer(zap.New(core))

	id := uuid.New()
	err := mailer.SendReport(context.Background(), port.ReportEmail{
		To:           "compras@example.com",
		SimulationID: id,
		HTML:         "<p>laudo</p>",
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "compras@example.com", fields["to"])
	assert.Equal(t, id.String(), fields["simulation_id"])
	assert.Equal(t, int64(len("<p>laudo</p>")), fields["html_bytes"])
}
