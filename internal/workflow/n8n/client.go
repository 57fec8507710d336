// Package n8n calls the n8n webhook that prices a simulation form.
package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"capprice/internal/config"
	"capprice/internal/domain"
)

// Workflow answers are a handful of scenarios plus rendered HTML; anything beyond this
// is not a pricing answer.
const maxResponseBytes = 32 << 20

// Client is a PricingWorkflow backed by an n8n webhook.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewClient creates a Client for the configured webhook.
func NewClient(cfg *config.WorkflowConfig, logger *zap.Logger) *Client {
	return NewClientWithTimeout(cfg.WebhookURL, cfg.Timeout(), logger)
}

// NewClientWithTimeout creates a Client for endpoint with an explicit call timeout.
func NewClientWithTimeout(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 240 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.Named("n8n"),
	}
}

// Price posts form to the webhook and returns the response body. Failures wrap
// domain.ErrWorkflowTimeout, domain.ErrWorkflowUnavailable or
// domain.ErrWorkflowEmptyResponse. The call is never retried.
func (c *Client) Price(ctx context.Context, form json.RawMessage) ([]byte, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("%w: webhook url not configured", domain.ErrWorkflowUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(form))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("n8n.Price: webhook timed out", zap.Duration("elapsed", time.Since(start)))
			return nil, fmt.Errorf("%w: %v", domain.ErrWorkflowTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrWorkflowUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: reading response: %v", domain.ErrWorkflowTimeout, err)
		}
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrWorkflowUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrWorkflowUnavailable, resp.StatusCode, truncate(body, 512))
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("%w: response too large: over %d bytes", domain.ErrWorkflowUnavailable, maxResponseBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.ErrWorkflowEmptyResponse
	}

	c.logger.Debug("n8n.Price: webhook answered",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
