package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FormContext carries the values the user typed into the pricing form. They backfill
// fields a raw scenario does not carry.
type FormContext struct {
	Origin      string   `json:"origem,omitempty"`
	Destination string   `json:"destino,omitempty"`
	Product     string   `json:"produto,omitempty"`
	Quantity    *float64 `json:"quantidade,omitempty"`
	NetPrice    *float64 `json:"precoNet,omitempty"`
	Margin      *float64 `json:"margem,omitempty"`
}

// Scenario is one canonical priced-shipment option. JSON names are consumed verbatim
// by the pricing front-end.
type Scenario struct {
	Kind ScenarioKind `json:"kind"`

	Refinery        string `json:"refinaria"`
	Origin          string `json:"origem"`
	Destination     string `json:"destino"`
	DestinationCity string `json:"destinoCidade"`
	DestinationUF   string `json:"destinoUF"`

	Quantity   float64 `json:"quantidade"`
	NetPrice   float64 `json:"precoNet"`
	Freight    float64 `json:"frete"`
	Taxes      float64 `json:"impostos"`
	Difal      float64 `json:"difal"`
	COGS       float64 `json:"cmv"`
	Margin     float64 `json:"margem"`
	FinalPrice float64 `json:"precoFinal"`

	Product string `json:"produto"`

	FreightImpactPercent float64 `json:"impactoFretePercentual"`
	DistanceKm           float64 `json:"distanciaKm"`

	ReportText             string `json:"laudoTexto"`
	Rationale              string `json:"motivo"`
	FiscalSituation        string `json:"situacaoFiscal"`
	CreditBalanceUsage     string `json:"usoSaldoCredor"`
	LogisticsJustification string `json:"justificativaLogistica"`
	KeyAdvantage           string `json:"principalVantagem"`
	FiscalRisk             string `json:"riscoFiscal"`

	ReportHTML string `json:"laudoHtml,omitempty"`
}

// NormalizationResult is the outcome of normalizing one workflow payload.
// Scenarios is never nil.
type NormalizationResult struct {
	Scenarios  []Scenario        `json:"scenarios"`
	ReportHTML string            `json:"reportHtml,omitempty"`
	Tier       NormalizationTier `json:"tier"`
}

// HasScenarios reports whether any scenario was recovered.
func (r NormalizationResult) HasScenarios() bool {
	return len(r.Scenarios) > 0
}

// Primary returns the first scenario, or nil when there is none.
func (r NormalizationResult) Primary() *Scenario {
	if len(r.Scenarios) == 0 {
		return nil
	}
	return &r.Scenarios[0]
}

// Simulation is a persisted pricing simulation: the form sent to the workflow, the raw
// payload it answered with, and the scenarios recovered from it.
type Simulation struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	Form          json.RawMessage   `db:"form" json:"form"`
	RawPayload    json.RawMessage   `db:"raw_payload" json:"-"`
	Scenarios     json.RawMessage   `db:"scenarios" json:"scenarios"`
	ScenarioCount int               `db:"scenario_count" json:"scenario_count"`
	Tier          NormalizationTier `db:"tier" json:"tier"`
	ReportKey     *string           `db:"report_key" json:"-"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// HasReport reports whether a rendered report was stored for the simulation.
func (s *Simulation) HasReport() bool {
	return s.ReportKey != nil && *s.ReportKey != ""
}

// SimulationStats aggregates stored simulations over a time window.
type SimulationStats struct {
	TotalSimulations  int        `db:"total_simulations" json:"total_simulations"`
	WithReport        int        `db:"with_report" json:"with_report"`
	TotalScenarios    int        `db:"total_scenarios" json:"total_scenarios"`
	TierFlatArray     int        `db:"tier_flat_array" json:"tier_flat_array"`
	TierWrappedBucket int        `db:"tier_wrapped_bucket" json:"tier_wrapped_bucket"`
	TierDeepBucket    int        `db:"tier_deep_bucket" json:"tier_deep_bucket"`
	TierFlatObject    int        `db:"tier_flat_object" json:"tier_flat_object"`
	LastSimulationAt  *time.Time `db:"last_simulation_at" json:"last_simulation_at,omitempty"`
}
