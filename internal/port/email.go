package port

import (
	"context"

	"github.com/google/uuid"
)

// ReportEmail is a simulation report addressed to one recipient.
type ReportEmail struct {
	To           string
	SimulationID uuid.UUID
	Summary      string
	HTML         string
}

// ReportMailer delivers simulation reports by e-mail.
type ReportMailer interface {
	SendReport(ctx context.Context, msg ReportEmail) error
}
