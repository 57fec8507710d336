package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// MockPricingWorkflow is a mock implementation of port.PricingWorkflow.
type MockPricingWorkflow struct {
	mock.Mock
}

func (m *MockPricingWorkflow) Price(ctx context.Context, form json.RawMessage) ([]byte, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
