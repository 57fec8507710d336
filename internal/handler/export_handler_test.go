package handler_test

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"capprice/internal/csvexport"
	"capprice/internal/domain"
)

func exportSimulation(t *testing.T, finalPrices ...float64) domain.Simulation {
	t.Helper()
	var scenarios []domain.Scenario
	for i, p := range finalPrices {
		scenarios = append(scenarios, domain.Scenario{Kind: domain.KindForIndex(i), FinalPrice: p})
	}
	data, err := json.Marshal(scenarios)
	require.NoError(t, err)
	return domain.Simulation{ID: uuid.New(), Scenarios: data, Tier: domain.TierFlatArray, ScenarioCount: len(scenarios)}
}

func TestSimulationHandler_ExportCSV_Paginates(t *testing.T) {
	h, svc := newSimulationHandler()

	page1 := make([]domain.Simulation, 200)
	for i := range page1 {
		page1[i] = exportSimulation(t, 10)
	}
	page2 := []domain.Simulation{exportSimulation(t, 20, 21)}

	svc.On("List", mock.Anything, 0, 200).Return(page1, 201, nil)
	svc.On("List", mock.Anything, 200, 200).Return(page2, 201, nil)

	c, w := newContext(http.MethodGet, "/api/v1/simulations/export/csv", nil)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "simulacoes_")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, csvexport.BOM, body[:3])

	records, err := csv.NewReader(strings.NewReader(string(body[3:]))).ReadAll()
	require.NoError(t, err)
	// header + 200 single-scenario rows + 2 rows for the last simulation
	require.Len(t, records, 203)
	assert.Equal(t, "Simulation ID", records[0][0])
	assert.Equal(t, "21.00", records[202][16])
	svc.AssertExpectations(t)
}

func TestSimulationHandler_ExportCSV_ListError(t *testing.T) {
	h, svc := newSimulationHandler()
	svc.On("List", mock.Anything, 0, 200).Return(nil, 0, errors.New("db down"))

	c, w := newContext(http.MethodGet, "/api/v1/simulations/export/csv", nil)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeResponse(t, w).Error.Code)
}
