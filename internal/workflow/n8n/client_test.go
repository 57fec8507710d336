package n8n_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"capprice/internal/domain"
	"capprice/internal/workflow/n8n"
)

var form = json.RawMessage(`{"destino_uf":"PR","destino_cidade":"Curitiba","quantidade":30}`)

func TestClient_Price_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, string(form), string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"precoFinal":100}]`))
	}))
	defer srv.Close()

	client := n8n.NewClientWithTimeout(srv.URL, 5*time.Second, zap.NewNop())
	body, err := client.Price(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, `[{"precoFinal":100}]`, string(body))
}

func TestClient_Price_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Workflow could not be started"}`))
	}))
	defer srv.Close()

	client := n8n.NewClientWithTimeout(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.Price(context.Background(), form)

	assert.ErrorIs(t, err, domain.ErrWorkflowUnavailable)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_Price_BlankBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("  \n"))
	}))
	defer srv.Close()

	client := n8n.NewClientWithTimeout(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.Price(context.Background(), form)

	assert.ErrorIs(t, err, domain.ErrWorkflowEmptyResponse)
}

func TestClient_Price_OversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte(" "), 32<<20+1))
	}))
	defer srv.Close()

	client := n8n.NewClientWithTimeout(srv.URL, 30*time.Second, zap.NewNop())
	_, err := client.Price(context.Background(), form)

	require.ErrorIs(t, err, domain.ErrWorkflowUnavailable)
	assert.Contains(t, err.Error(), "response too large")
}

func TestClient_Price_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := n8n.NewClientWithTimeout(srv.URL, 50*time.Millisecond, zap.NewNop())
	_, err := client.Price(context.Background(), form)

	assert.ErrorIs(t, err, domain.ErrWorkflowTimeout)
}

func TestClient_Price_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := n8n.NewClientWithTimeout(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.Price(ctx, form)

	assert.ErrorIs(t, err, domain.ErrWorkflowTimeout)
}

func TestClient_Price_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := n8n.NewClientWithTimeout(url, 5*time.Second, zap.NewNop())
	_, err := client.Price(context.Background(), form)

	assert.ErrorIs(t, err, domain.ErrWorkflowUnavailable)
}

func TestClient_Price_NotConfigured(t *testing.T) {
	client := n8n.NewClientWithTimeout("", time.Second, zap.NewNop())
	_, err := client.Price(context.Background(), form)

	assert.ErrorIs(t, err, domain.ErrWorkflowUnavailable)
}
