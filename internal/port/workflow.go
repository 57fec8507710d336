package port

import (
	"context"
	"encoding/json"
)

// PricingWorkflow submits a pricing form to the external workflow and returns the raw
// response body. Implementations make exactly one attempt.
type PricingWorkflow interface {
	Price(ctx context.Context, form json.RawMessage) ([]byte, error)
}
