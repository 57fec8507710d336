package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"capprice/internal/domain"
	"capprice/internal/handler"
	"capprice/mocks"
)

func TestStatsHandler_GetStats(t *testing.T) {
	svc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(svc, zap.NewNop())
	svc.On("GetStats", mock.Anything, 30).Return(&domain.SimulationStats{TotalSimulations: 4, WithReport: 3}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/stats?days=30", nil)
	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.EqualValues(t, 4, data["total_simulations"])
	assert.EqualValues(t, 3, data["with_report"])
	svc.AssertExpectations(t)
}

func TestStatsHandler_GetStats_InvalidDays(t *testing.T) {
	svc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(svc, zap.NewNop())

	c, w := newContext(http.MethodGet, "/api/v1/stats?days=-1", nil)
	h.GetStats(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything)
}

func TestStatsHandler_GetStats_Error(t *testing.T) {
	svc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(svc, zap.NewNop())
	svc.On("GetStats", mock.Anything, 0).Return(nil, errors.New("db down"))

	c, w := newContext(http.MethodGet, "/api/v1/stats", nil)
	h.GetStats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
