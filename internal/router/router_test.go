package router_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"capprice/internal/domain"
	"capprice/internal/handler"
	"capprice/internal/router"
	"capprice/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newEngine(svc *mocks.MockSimulationService, stats *mocks.MockStatsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.Setup(zap.NewNop(), []string{"http://localhost:3000"},
		handler.NewSimulationHandler(svc, zap.NewNop()),
		handler.NewStatsHandler(stats, zap.NewNop()),
		handler.NewHealthHandler(okPinger{}))
}

func TestRouter_Routes(t *testing.T) {
	svc := new(mocks.MockSimulationService)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(&domain.Simulation{ID: id}, nil)
	svc.On("List", mock.Anything, 0, 20).Return([]domain.Simulation{}, 0, nil)
	svc.On("List", mock.Anything, 0, 200).Return([]domain.Simulation{}, 0, nil)
	svc.On("Normalize", mock.Anything, mock.Anything).Return(domain.NormalizationResult{Scenarios: []domain.Scenario{}, Tier: domain.TierNone})
	stats := new(mocks.MockStatsService)
	stats.On("GetStats", mock.Anything, 0).Return(&domain.SimulationStats{}, nil)
	r := newEngine(svc, stats)

	cases := []struct {
		method, path string
		body         string
		status       int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/v1/simulations", "", http.StatusOK},
		{http.MethodGet, "/api/v1/simulations/export/csv", "", http.StatusOK},
		{http.MethodGet, "/api/v1/stats", "", http.StatusOK},
		{http.MethodGet, "/api/v1/simulations/" + id.String(), "", http.StatusOK},
		{http.MethodPost, "/api/v1/normalize", `{"payload":{}}`, http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "%s %s", tc.method, tc.path)
	}
}
