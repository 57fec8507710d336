package pricing_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capprice/internal/domain"
	"capprice/internal/jsontree"
	"capprice/internal/pricing"
)

func ptr(f float64) *float64 { return &f }

func mapJSON(t *testing.T, raw string, ctx domain.FormContext, kind domain.ScenarioKind) domain.Scenario {
	t.Helper()
	tree, err := jsontree.Parse([]byte(raw))
	require.NoError(t, err)
	return pricing.MapScenario(tree, jsontree.Root, ctx, kind)
}

func TestMapScenario_CopiesFields(t *testing.T) {
	s := mapJSON(t, `{
		"refinariaNome": "REPAR",
		"refinaria": "ignored",
		"origem": "Araucária/PR",
		"destino": "Curitiba / PR",
		"destinoCidade": "Curitiba",
		"destinoUF": "PR",
		"quantidade": "30",
		"precoNet": 3200.5,
		"frete": 180,
		"impostos": 410.25,
		"difal": 12,
		"cmv": 3500,
		"margem": 12.5,
		"precoFinal": 4100,
		"produto": "CAP 50/70",
		"impactoFretePercentual": 4.4,
		"distanciaKm": 27,
		"laudo": "texto do laudo",
		"motivo": "menor custo",
		"situacaoFiscal": "regular",
		"usoSaldoCredor": "não",
		"justificativaLogistica": "rota curta",
		"principalVantagem": "frete",
		"riscoFiscal": "baixo",
		"laudoHtml": "<p>laudo</p>"
	}`, domain.FormContext{}, domain.ScenarioPrimary)

	assert.Equal(t, domain.Scenario{
		Kind:                   domain.ScenarioPrimary,
		Refinery:               "REPAR",
		Origin:                 "Araucária/PR",
		Destination:            "Curitiba / PR",
		DestinationCity:        "Curitiba",
		DestinationUF:          "PR",
		Quantity:               30,
		NetPrice:               3200.5,
		Freight:                180,
		Taxes:                  410.25,
		Difal:                  12,
		COGS:                   3500,
		Margin:                 12.5,
		FinalPrice:             4100,
		Product:                "CAP 50/70",
		FreightImpactPercent:   4.4,
		DistanceKm:             27,
		ReportText:             "texto do laudo",
		Rationale:              "menor custo",
		FiscalSituation:        "regular",
		CreditBalanceUsage:     "não",
		LogisticsJustification: "rota curta",
		KeyAdvantage:           "frete",
		FiscalRisk:             "baixo",
		ReportHTML:             "<p>laudo</p>",
	}, s)
}

func TestMapScenario_FallsBackToContext(t *testing.T) {
	ctx := domain.FormContext{
		Origin:      "Paulínia/SP",
		Destination: "Campinas / SP",
		Product:     "CAP 30/45",
		Quantity:    ptr(25),
		NetPrice:    ptr(3000),
		Margin:      ptr(8),
	}
	s := mapJSON(t, `{"precoFinal": 100}`, ctx, domain.ScenarioAlternative)

	assert.Equal(t, domain.ScenarioAlternative, s.Kind)
	assert.Equal(t, domain.NotInformed, s.Refinery)
	assert.Equal(t, "Paulínia/SP", s.Origin)
	assert.Equal(t, "Campinas / SP", s.Destination)
	assert.Equal(t, "CAP 30/45", s.Product)
	assert.Equal(t, 25.0, s.Quantity)
	assert.Equal(t, 3000.0, s.NetPrice)
	assert.Equal(t, 8.0, s.Margin)
	assert.Equal(t, 100.0, s.FinalPrice)
	assert.Empty(t, s.DestinationCity)
	assert.Empty(t, s.ReportHTML)
}

func TestMapScenario_PresentNullBeatsContext(t *testing.T) {
	ctx := domain.FormContext{Quantity: ptr(25), Margin: ptr(8)}
	s := mapJSON(t, `{"quantidade": null, "margem": "abc"}`, ctx, domain.ScenarioPrimary)

	assert.Zero(t, s.Quantity)
	assert.Zero(t, s.Margin)
}

func TestMapScenario_FalsyLabelsUseFallbacks(t *testing.T) {
	ctx := domain.FormContext{Origin: "ctx-origin", Product: "ctx-product"}
	s := mapJSON(t, `{"refinariaNome": "", "refinaria": 0, "origem": false, "produto": null}`, ctx, domain.ScenarioPrimary)

	assert.Equal(t, domain.NotInformed, s.Refinery)
	assert.Equal(t, "ctx-origin", s.Origin)
	assert.Equal(t, "ctx-product", s.Product)
}

func TestMapScenario_ToleratesWrongTypes(t *testing.T) {
	s := mapJSON(t, `{
		"refinaria": {"nome": "REDUC"},
		"destinoUF": ["RJ"],
		"destinoCidade": 123,
		"motivo": true,
		"frete": {"valor": 10},
		"impostos": [5],
		"difal": [1, 2],
		"cmv": "1e999",
		"precoFinal": true
	}`, domain.FormContext{}, domain.ScenarioPrimary)

	assert.Equal(t, domain.NotInformed, s.Refinery)
	assert.Empty(t, s.DestinationUF)
	assert.Equal(t, "123", s.DestinationCity)
	assert.Equal(t, "true", s.Rationale)
	assert.Zero(t, s.Freight)
	assert.Equal(t, 5.0, s.Taxes)
	assert.Zero(t, s.Difal)
	assert.Zero(t, s.COGS)
	assert.Equal(t, 1.0, s.FinalPrice)
}

func TestMapScenario_NonObjectYieldsDefaults(t *testing.T) {
	for _, raw := range []string{`null`, `"text"`, `[1,2,3]`, `42`} {
		s := mapJSON(t, raw, domain.FormContext{Product: "P"}, domain.ScenarioPrimary)
		assert.Equal(t, domain.ScenarioPrimary, s.Kind, raw)
		assert.Equal(t, domain.NotInformed, s.Refinery, raw)
		assert.Equal(t, "P", s.Product, raw)
		assert.Zero(t, s.FinalPrice, raw)
	}
}

func TestMapScenario_NumericFieldsAreFinite(t *testing.T) {
	inputs := []string{
		`{"precoFinal": 1e308, "frete": -1e308, "cmv": "NaN", "difal": "Infinity", "margem": "-Inf"}`,
		`{"quantidade": [], "precoNet": {}, "impostos": "", "distanciaKm": [[[]]]}`,
		`{}`,
	}
	ctx := domain.FormContext{Quantity: ptr(math.Inf(1)), NetPrice: ptr(math.NaN())}

	for _, raw := range inputs {
		s := mapJSON(t, raw, ctx, domain.ScenarioPrimary)
		assert.Equal(t, domain.ScenarioPrimary, s.Kind)

		v := reflect.ValueOf(s)
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.Kind() == reflect.Float64 {
				n := f.Float()
				assert.False(t, math.IsNaN(n) || math.IsInf(n, 0), "%s in %s", v.Type().Field(i).Name, raw)
			}
		}
	}
}
