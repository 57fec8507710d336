package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"capprice/internal/domain"
)

// MockSimulationRepo is a mock implementation of port.SimulationRepository.
type MockSimulationRepo struct {
	mock.Mock
}

func (m *MockSimulationRepo) Create(ctx context.Context, sim *domain.Simulation) error {
	args := m.Called(ctx, sim)
	return args.Error(0)
}

func (m *MockSimulationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Simulation), args.Error(1)
}

func (m *MockSimulationRepo) List(ctx context.Context, offset, limit int) ([]domain.Simulation, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Simulation), args.Int(1), args.Error(2)
}

func (m *MockSimulationRepo) ListAfter(ctx context.Context, after uuid.UUID, limit int) ([]domain.Simulation, error) {
	args := m.Called(ctx, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Simulation), args.Error(1)
}

func (m *MockSimulationRepo) UpdateNormalization(ctx context.Context, sim *domain.Simulation) error {
	args := m.Called(ctx, sim)
	return args.Error(0)
}

func (m *MockSimulationRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]string, int, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Int(1), args.Error(2)
}
