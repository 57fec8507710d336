package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"capprice/internal/domain"
	"capprice/internal/service"
)

// MockSimulationService is a mock implementation of service.SimulationService.
type MockSimulationService struct {
	mock.Mock
}

func (m *MockSimulationService) Simulate(ctx context.Context, req service.SimulationRequest) (*service.SimulationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SimulationResult), args.Error(1)
}

func (m *MockSimulationService) Normalize(payload json.RawMessage, fc domain.FormContext) domain.NormalizationResult {
	args := m.Called(payload, fc)
	return args.Get(0).(domain.NormalizationResult)
}

func (m *MockSimulationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Simulation), args.Error(1)
}

func (m *MockSimulationService) List(ctx context.Context, offset, limit int) ([]domain.Simulation, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Simulation), args.Int(1), args.Error(2)
}

func (m *MockSimulationService) GetReportURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockSimulationService) EmailReport(ctx context.Context, id uuid.UUID, to string) error {
	args := m.Called(ctx, id, to)
	return args.Error(0)
}
