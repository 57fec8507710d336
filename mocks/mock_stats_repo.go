package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"capprice/internal/domain"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) GetSimulationStats(ctx context.Context, since time.Time) (*domain.SimulationStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimulationStats), args.Error(1)
}
