package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/codes"

	"github.com/anchainai/aml-mcp/internal/metrics"
	"github.com/anchainai/aml-mcp/internal/traces"
)

// Config holds the configuration for connecting to the AnChain AML API.
type Config struct {
	BaseURL string // Base URL, e.g. "https://aml.anchainai.com/api"
	APIKey  string // Startup credential; consulted in local mode only
	Remote  bool   // Remote mode reads x-api-key from each request instead
}

// AMLClient is a pure HTTP client for the AnChain AML API. It holds no
// credential; every call receives one from the resolver.
type AMLClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewAMLClient creates a new client for the AnChain AML API.
func NewAMLClient(cfg Config) *AMLClient {
	return &AMLClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError represents an error response from the AML API.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest makes an HTTP request to the AML API and returns the response body.
func (c *AMLClient) doRequest(ctx context.Context, method, path string, query url.Values, body any, credential string) (json.RawMessage, error) {
	ctx, span := traces.StartSpan(ctx, "aml.request",
		traces.Method(method),
		traces.Endpoint(path),
	)
	defer span.End()

	timer := prometheus.NewTimer(metrics.UpstreamRequestDuration.WithLabelValues(path))
	defer timer.ObserveDuration()

	u, err := url.Parse(c.cfg.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(traces.StatusCode(resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read response")
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return json.RawMessage(respBody), nil
}

// CryptoScreening screens an address. The three screening tools share this
// endpoint and differ only in the action value: score, activity, attribution.
func (c *AMLClient) CryptoScreening(ctx context.Context, credential, protocol, address, action string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("protocol", protocol)
	q.Set("address", address)
	q.Set("action", action)
	return c.doRequest(ctx, http.MethodGet, "/crypto_screening", q, nil, credential)
}

// SanctionsScreening checks an entity against global sanctions lists.
func (c *AMLClient) SanctionsScreening(ctx context.Context, credential string, payload map[string]any) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPost, "/sanctions_screening", nil, payload, credential)
}

// IPScreening looks up threat intelligence for an IP address.
func (c *AMLClient) IPScreening(ctx context.Context, credential, ipAddress string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("ip_address", ipAddress)
	return c.doRequest(ctx, http.MethodGet, "/ip_screening", q, nil, credential)
}

// AutoTrace follows asset flows from an address or transaction.
func (c *AMLClient) AutoTrace(ctx context.Context, credential string, payload map[string]any) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPost, "/crypto_auto_trace", nil, payload, credential)
}

// ContractSource fetches verified source code for a smart contract.
func (c *AMLClient) ContractSource(ctx context.Context, credential, protocol, contractAddress string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("action", "contract")
	q.Set("protocol", protocol)
	q.Set("contract_address", contractAddress)
	return c.doRequest(ctx, http.MethodGet, "/smart_contract_agent", q, nil, credential)
}

// Transaction fetches decoded details for a transaction.
func (c *AMLClient) Transaction(ctx context.Context, credential, protocol, txHash string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("action", "transaction")
	q.Set("protocol", protocol)
	q.Set("transaction_hash", txHash)
	return c.doRequest(ctx, http.MethodGet, "/smart_contract_agent", q, nil, credential)
}
