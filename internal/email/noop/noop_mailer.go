package noop

import (
	"context"

	"go.uber.org/zap"

	"capprice/internal/port"
)

type noopMailer struct {
	logger *zap.Logger
}

// NewNoopMailer creates a ReportMailer that only logs what it would have sent.
func NewNoopMailer(logger *zap.Logger) port.ReportMailer {
	return &noopMailer{logger: logger}
}

func (m *noopMailer) SendReport(_ context.Context, msg port.ReportEmail) error {
	m.logger.Info("[NOOP EMAIL] simulation report",
		zap.String("to", msg.To),
		zap.Stringer("simulation_id", msg.SimulationID),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
