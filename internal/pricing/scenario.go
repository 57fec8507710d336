package pricing

import (
	"capprice/internal/domain"
	"capprice/internal/jsontree"
)

// MapScenario projects the raw scenario object at id onto the canonical record. Each
// field comes from the raw object when it carries a usable value, else from ctx, else
// from a fixed default. Any node shape is accepted; a non-object yields defaults only.
func MapScenario(t *jsontree.Tree, id jsontree.NodeID, ctx domain.FormContext, kind domain.ScenarioKind) domain.Scenario {
	return domain.Scenario{
		Kind: kind,

		Refinery:        firstText(t, id, domain.NotInformed, "refinariaNome", "refinaria"),
		Origin:          firstText(t, id, ctx.Origin, "origem"),
		Destination:     firstText(t, id, ctx.Destination, "destino"),
		DestinationCity: firstText(t, id, "", "destinoCidade"),
		DestinationUF:   firstText(t, id, "", "destinoUF"),

		Quantity:   numberOr(t, id, "quantidade", ctx.Quantity),
		NetPrice:   numberOr(t, id, "precoNet", ctx.NetPrice),
		Freight:    number(t, id, "frete"),
		Taxes:      number(t, id, "impostos"),
		Difal:      number(t, id, "difal"),
		COGS:       number(t, id, "cmv"),
		Margin:     numberOr(t, id, "margem", ctx.Margin),
		FinalPrice: number(t, id, "precoFinal"),

		Product: firstText(t, id, ctx.Product, "produto"),

		FreightImpactPercent: number(t, id, "impactoFretePercentual"),
		DistanceKm:           number(t, id, "distanciaKm"),

		ReportText:             firstText(t, id, "", "laudo"),
		Rationale:              firstText(t, id, "", "motivo"),
		FiscalSituation:        firstText(t, id, "", "situacaoFiscal"),
		CreditBalanceUsage:     firstText(t, id, "", "usoSaldoCredor"),
		LogisticsJustification: firstText(t, id, "", "justificativaLogistica"),
		KeyAdvantage:           firstText(t, id, "", "principalVantagem"),
		FiscalRisk:             firstText(t, id, "", "riscoFiscal"),

		ReportHTML: firstText(t, id, "", "laudoHtml"),
	}
}

func mapAll(t *jsontree.Tree, ids []jsontree.NodeID, ctx domain.FormContext) []domain.Scenario {
	out := make([]domain.Scenario, 0, len(ids))
	for i, id := range ids {
		out = append(out, MapScenario(t, id, ctx, domain.KindForIndex(i)))
	}
	return out
}

// firstText returns the first member among keys holding a truthy scalar, rendered as
// text. Containers never count as text.
func firstText(t *jsontree.Tree, id jsontree.NodeID, fallback string, keys ...string) string {
	for _, k := range keys {
		v, ok := t.Get(id, k)
		if !ok || !t.Truthy(v) {
			continue
		}
		if s, ok := t.Scalar(v); ok {
			return s
		}
	}
	return fallback
}

func number(t *jsontree.Tree, id jsontree.NodeID, key string) float64 {
	v, ok := t.Get(id, key)
	if !ok {
		return 0
	}
	return nodeNumber(t, v)
}

// numberOr coerces key when the member exists, even as null, and falls back to def
// only when it is missing.
func numberOr(t *jsontree.Tree, id jsontree.NodeID, key string, def *float64) float64 {
	if v, ok := t.Get(id, key); ok {
		return nodeNumber(t, v)
	}
	if def == nil {
		return 0
	}
	return ToNumber(*def)
}
