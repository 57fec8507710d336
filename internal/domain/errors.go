package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrSimulationNotFound    = errors.New("simulation not found")
	ErrInvalidSimulation     = errors.New("invalid simulation request")
	ErrRefineryRequired      = errors.New("refinery is required when a net price is informed")
	ErrWorkflowTimeout       = errors.New("pricing workflow timed out")
	ErrWorkflowUnavailable   = errors.New("pricing workflow unavailable")
	ErrWorkflowEmptyResponse = errors.New("pricing workflow returned an empty response")
	ErrNoScenarios           = errors.New("pricing workflow response contains no scenarios")
	ErrReportNotAvailable    = errors.New("simulation has no report")
	ErrReportDeliveryFailed  = errors.New("report delivery failed")
)
