package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"capprice/internal/domain"
	"capprice/internal/metrics"
	"capprice/internal/port"
	"capprice/internal/pricing"
)

// SimulationRequest is the pricing form submitted by the user. Raw holds the body as
// posted; it is what gets forwarded to the workflow, so keys the struct does not know
// about still reach it.
type SimulationRequest struct {
	DestinationUF   string   `json:"destino_uf"`
	DestinationCity string   `json:"destino_cidade"`
	Product         string   `json:"produto,omitempty"`
	Refinery        string   `json:"refinaria,omitempty"`
	Origin          string   `json:"origem,omitempty"`
	Quantity        *float64 `json:"quantidade,omitempty"`
	NetPrice        *float64 `json:"preco_net,omitempty"`
	Margin          *float64 `json:"margem,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Validate checks the fields the workflow cannot price without.
func (r *SimulationRequest) Validate() error {
	if strings.TrimSpace(r.DestinationUF) == "" {
		return fmt.Errorf("%w: destino_uf is required", domain.ErrInvalidSimulation)
	}
	if strings.TrimSpace(r.DestinationCity) == "" {
		return fmt.Errorf("%w: destino_cidade is required", domain.ErrInvalidSimulation)
	}
	if r.NetPrice != nil && strings.TrimSpace(r.Refinery) == "" {
		return domain.ErrRefineryRequired
	}
	return nil
}

// FormContext returns the defaults the normalizer applies to scenarios.
func (r *SimulationRequest) FormContext() domain.FormContext {
	fc := domain.FormContext{
		Origin:   strings.TrimSpace(r.Origin),
		Product:  strings.TrimSpace(r.Product),
		Quantity: r.Quantity,
		NetPrice: r.NetPrice,
		Margin:   r.Margin,
	}
	city, uf := strings.TrimSpace(r.DestinationCity), strings.TrimSpace(r.DestinationUF)
	if city != "" || uf != "" {
		fc.Destination = city + " / " + uf
	}
	return fc
}

// SimulationResult is the outcome of one simulation.
type SimulationResult struct {
	Simulation    *domain.Simulation
	Normalization domain.NormalizationResult
	ReportHTML    string
}

// SimulationService defines the pricing simulation contract.
type SimulationService interface {
	Simulate(ctx context.Context, req SimulationRequest) (*SimulationResult, error)
	Normalize(payload json.RawMessage, fc domain.FormContext) domain.NormalizationResult
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error)
	List(ctx context.Context, offset, limit int) ([]domain.Simulation, int, error)
	GetReportURL(ctx context.Context, id uuid.UUID) (string, error)
	EmailReport(ctx context.Context, id uuid.UUID, to string) error
}

type simulationService struct {
	repo     port.SimulationRepository
	workflow port.PricingWorkflow
	reports  port.ReportStore
	mailer   port.ReportMailer
	metrics  *metrics.Recorder
	logger   *zap.Logger
}

// NewSimulationService creates a new SimulationService implementation.
func NewSimulationService(
	repo port.SimulationRepository,
	workflow port.PricingWorkflow,
	reports port.ReportStore,
	mailer port.ReportMailer,
	rec *metrics.Recorder,
	logger *zap.Logger,
) SimulationService {
	return &simulationService{
		repo:     repo,
		workflow: workflow,
		reports:  reports,
		mailer:   mailer,
		metrics:  rec,
		logger:   logger,
	}
}

// ReportKey is the object key of a simulation's rendered report.
func ReportKey(id uuid.UUID) string {
	return fmt.Sprintf("simulations/%s/report.html", id)
}

func (s *simulationService) Simulate(ctx context.Context, req SimulationRequest) (*SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form := req.Raw
	if len(bytes.TrimSpace(form)) == 0 {
		var err error
		if form, err = json.Marshal(req); err != nil {
			return nil, fmt.Errorf("encoding form: %w", err)
		}
	}

	start := time.Now()
	body, err := s.workflow.Price(ctx, form)
	s.metrics.WorkflowCall(time.Since(start))
	if err != nil {
		s.metrics.Simulation(metrics.OutcomeFailed)
		s.logger.Warn("simulationService.Simulate: workflow call failed", zap.Error(err))
		return nil, err
	}

	payload := workflowPayload(body)
	result := pricing.Normalize(payload, req.FormContext())
	s.metrics.Normalized(result.Tier)

	if !result.HasScenarios() {
		s.metrics.Simulation(metrics.OutcomeNoScenarios)
		s.logger.Warn("simulationService.Simulate: no scenarios in workflow response",
			zap.String("tier", string(result.Tier)),
			zap.String("payload", truncate(body, 500)),
		)
		return nil, domain.ErrNoScenarios
	}

	report := reportFor(payload, result)

	scenarios, err := json.Marshal(result.Scenarios)
	if err != nil {
		return nil, fmt.Errorf("encoding scenarios: %w", err)
	}
	sim := &domain.Simulation{
		ID:            uuid.New(),
		Form:          form,
		RawPayload:    body,
		Scenarios:     scenarios,
		ScenarioCount: len(result.Scenarios),
		Tier:          result.Tier,
	}

	if report != "" {
		key := ReportKey(sim.ID)
		if err := s.reports.Put(ctx, key, report); err != nil {
			s.logger.Warn("simulationService.Simulate: storing report failed",
				zap.Stringer("simulation_id", sim.ID), zap.Error(err))
		} else {
			sim.ReportKey = &key
		}
	}

	if err := s.repo.Create(ctx, sim); err != nil {
		if sim.ReportKey != nil {
			if delErr := s.reports.Delete(ctx, *sim.ReportKey); delErr != nil {
				s.logger.Warn("simulationService.Simulate: removing orphan report failed",
					zap.String("key", *sim.ReportKey), zap.Error(delErr))
			}
		}
		s.metrics.Simulation(metrics.OutcomeFailed)
		return nil, fmt.Errorf("persisting simulation: %w", err)
	}

	s.metrics.Simulation(metrics.OutcomeSucceeded)
	s.logger.Info("simulationService.Simulate: simulation stored",
		zap.Stringer("simulation_id", sim.ID),
		zap.Int("scenarios", sim.ScenarioCount),
		zap.String("tier", string(sim.Tier)),
		zap.Bool("report", sim.HasReport()),
	)
	return &SimulationResult{Simulation: sim, Normalization: result, ReportHTML: report}, nil
}

func (s *simulationService) Normalize(payload json.RawMessage, fc domain.FormContext) domain.NormalizationResult {
	result := pricing.Normalize(workflowPayload(payload), fc)
	s.metrics.Normalized(result.Tier)
	return result
}

func (s *simulationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *simulationService) List(ctx context.Context, offset, limit int) ([]domain.Simulation, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *simulationService) GetReportURL(ctx context.Context, id uuid.UUID) (string, error) {
	sim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !sim.HasReport() {
		return "", domain.ErrReportNotAvailable
	}
	return s.reports.PresignedURL(ctx, *sim.ReportKey)
}

func (s *simulationService) EmailReport(ctx context.Context, id uuid.UUID, to string) error {
	sim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !sim.HasReport() {
		return domain.ErrReportNotAvailable
	}

	html, err := s.reports.Get(ctx, *sim.ReportKey)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotAvailable) {
			return err
		}
		return fmt.Errorf("loading report: %w", err)
	}

	err = s.mailer.SendReport(ctx, port.ReportEmail{
		To:           to,
		SimulationID: sim.ID,
		Summary:      summarize(sim),
		HTML:         html,
	})
	if err != nil {
		s.logger.Error("simulationService.EmailReport: delivery failed",
			zap.Stringer("simulation_id", sim.ID), zap.Error(err))
		if errors.Is(err, domain.ErrReportDeliveryFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrReportDeliveryFailed, err)
	}
	return nil
}

// workflowPayload prepares a workflow body for the normalizer. A body that is itself a
// JSON string is decoded once so its content gets parsed; any other body is passed as
// raw JSON, keeping its member order.
func workflowPayload(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return json.RawMessage(body)
}

// reportFor picks the report shown for a simulation: a direct laudoHtml or htmls entry
// in the payload, then the normalizer's report, then the primary scenario's own.
func reportFor(payload any, result domain.NormalizationResult) string {
	if html := pricing.ExtractReportHTML(payload); html != "" {
		return html
	}
	if result.ReportHTML != "" {
		return result.ReportHTML
	}
	if p := result.Primary(); p != nil {
		return p.ReportHTML
	}
	return ""
}

// summarize renders a one-line description of the primary scenario for e-mail bodies.
func summarize(sim *domain.Simulation) string {
	var scenarios []domain.Scenario
	if err := json.Unmarshal(sim.Scenarios, &scenarios); err != nil || len(scenarios) == 0 {
		return ""
	}
	p := scenarios[0]
	return fmt.Sprintf("%s de %s para %s: preço final R$ %.2f (margem %.2f%%)",
		orDash(p.Product), orDash(p.Refinery), orDash(p.Destination), p.FinalPrice, p.Margin)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
