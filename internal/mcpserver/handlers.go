package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/anchainai/aml-mcp/internal/logging"
	"github.com/anchainai/aml-mcp/internal/metrics"
	"github.com/anchainai/aml-mcp/internal/traces"
	"github.com/anchainai/aml-mcp/internal/validation"
)

// Screening actions accepted by the crypto_screening endpoint.
const (
	actionScore       = "score"
	actionActivity    = "activity"
	actionAttribution = "attribution"
)

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	client   *AMLClient
	resolver *Resolver
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client *AMLClient, resolver *Resolver) *Handlers {
	return &Handlers{client: client, resolver: resolver}
}

// HandleCryptoScreening returns the risk score for an address.
func (h *Handlers) HandleCryptoScreening(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.screen(ctx, req, ToolCryptoScreening.Name, actionScore)
}

// HandleCryptoActivityScreening returns observed activity for an address.
func (h *Handlers) HandleCryptoActivityScreening(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.screen(ctx, req, ToolCryptoActivityScreening.Name, actionActivity)
}

// HandleCryptoAttributionScreening returns entity attribution for an address.
func (h *Handlers) HandleCryptoAttributionScreening(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.screen(ctx, req, ToolCryptoAttributionScreening.Name, actionAttribution)
}

// screen implements the three crypto screening tools, which share one
// endpoint and differ only in the action value.
func (h *Handlers) screen(ctx context.Context, req mcp.CallToolRequest, tool, action string) (*mcp.CallToolResult, error) {
	ctx, span := traces.StartSpan(ctx, tool, traces.Tool(tool))
	defer span.End()

	address := req.GetString("address", "")
	protocol := req.GetString("protocol", "")
	if errs := validation.Validate(
		validation.Required("address", address),
		validation.Required("protocol", protocol),
	); len(errs) > 0 {
		return failure(ctx, tool, metrics.OutcomeValidationError, errs.Error()), nil
	}

	credential, err := h.resolver.Resolve(req.Header)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeCredentialError, err.Error()), nil
	}

	raw, err := h.client.CryptoScreening(ctx, credential, protocol, address, action)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeUpstreamError, fmt.Sprintf("Screening failed: %v", err)), nil
	}

	return success(ctx, tool, raw), nil
}

// HandleSanctionsScreening checks an entity against global sanctions lists.
func (h *Handlers) HandleSanctionsScreening(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool := ToolSanctionsScreening.Name
	ctx, span := traces.StartSpan(ctx, tool, traces.Tool(tool))
	defer span.End()

	// Only fields the caller actually provided enter the properties object.
	properties := map[string]any{}
	if names := req.GetStringSlice("name", nil); len(names) > 0 {
		properties["name"] = names
	}
	if ids := req.GetStringSlice("idNumber", nil); len(ids) > 0 {
		properties["idNumber"] = ids
	}
	if countries := req.GetStringSlice("nationality", nil); len(countries) > 0 {
		properties["nationality"] = countries
	}
	if years := req.GetIntSlice("birthYear", nil); len(years) > 0 {
		properties["birthYear"] = years
	}
	if len(properties) == 0 {
		return failure(ctx, tool, metrics.OutcomeValidationError,
			"at least one of name, idNumber, nationality, or birthYear is required"), nil
	}

	credential, err := h.resolver.Resolve(req.Header)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeCredentialError, err.Error()), nil
	}

	payload := map[string]any{
		"schema":     req.GetString("schema", "person"),
		"scope":      req.GetString("scope", "basic"),
		"properties": properties,
	}
	raw, err := h.client.SanctionsScreening(ctx, credential, payload)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeUpstreamError, fmt.Sprintf("Sanctions screening failed: %v", err)), nil
	}

	return success(ctx, tool, raw), nil
}

// HandleIPScreening looks up threat intelligence for an IP address.
func (h *Handlers) HandleIPScreening(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool := ToolIPScreening.Name
	ctx, span := traces.StartSpan(ctx, tool, traces.Tool(tool))
	defer span.End()

	ipAddress := req.GetString("ip_address", "")
	if errs := validation.Validate(
		validation.Required("ip_address", ipAddress),
	); len(errs) > 0 {
		return failure(ctx, tool, metrics.OutcomeValidationError, errs.Error()), nil
	}

	credential, err := h.resolver.Resolve(req.Header)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeCredentialError, err.Error()), nil
	}

	raw, err := h.client.IPScreening(ctx, credential, ipAddress)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeUpstreamError, fmt.Sprintf("IP screening failed: %v", err)), nil
	}

	return success(ctx, tool, raw), nil
}

// HandleAutoTrace follows asset flows from an address or transaction.
func (h *Handlers) HandleAutoTrace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool := ToolAutoTrace.Name
	ctx, span := traces.StartSpan(ctx, tool, traces.Tool(tool))
	defer span.End()

	protocol := req.GetString("protocol", "")
	if errs := validation.Validate(
		validation.Required("protocol", protocol),
	); len(errs) > 0 {
		return failure(ctx, tool, metrics.OutcomeValidationError, errs.Error()), nil
	}
	timeFrom, err := req.RequireInt("time_from")
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeValidationError,
			"time_from: must be a Unix timestamp in seconds"), nil
	}
	timeTo, err := req.RequireInt("time_to")
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeValidationError,
			"time_to: must be a Unix timestamp in seconds"), nil
	}

	payload := map[string]any{
		"proto":       protocol,
		"direct":      req.GetString("direction", "in"),
		"time_from":   timeFrom,
		"time_to":     timeTo,
		"time_window": req.GetInt("time_window", 365),
		"min_amount":  req.GetFloat("min_amount", 0),
	}

	// Traced subject: address wins over txn_hash. With neither, the payload
	// carries an explicit null txnhash and the vendor's rejection passes through.
	if address := req.GetString("address", ""); address != "" {
		payload["address"] = address
	} else if txnHash := req.GetString("txn_hash", ""); txnHash != "" {
		payload["txnhash"] = txnHash
	} else {
		payload["txnhash"] = nil
	}

	if _, ok := req.GetArguments()["max_amount"]; ok {
		payload["max_amount"] = req.GetFloat("max_amount", 0)
	}
	if token := req.GetString("token", ""); token != "" {
		payload["token"] = token
	}

	credential, err := h.resolver.Resolve(req.Header)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeCredentialError, err.Error()), nil
	}

	raw, err := h.client.AutoTrace(ctx, credential, payload)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeUpstreamError, fmt.Sprintf("Trace failed: %v", err)), nil
	}

	return success(ctx, tool, raw), nil
}

// HandleGetSourceCode fetches verified smart contract source code.
func (h *Handlers) HandleGetSourceCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool := ToolGetSourceCode.Name
	ctx, span := traces.StartSpan(ctx, tool, traces.Tool(tool))
	defer span.End()

	address := req.GetString("address", "")
	protocol := req.GetString("protocol", "")
	if errs := validation.Validate(
		validation.Required("address", address),
		validation.Required("protocol", protocol),
		validation.OneOf("protocol", protocol, "eth", "bnb"),
	); len(errs) > 0 {
		return failure(ctx, tool, metrics.OutcomeValidationError, errs.Error()), nil
	}

	credential, err := h.resolver.Resolve(req.Header)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeCredentialError, err.Error()), nil
	}

	raw, err := h.client.ContractSource(ctx, credential, protocol, address)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeUpstreamError, fmt.Sprintf("Source code lookup failed: %v", err)), nil
	}

	return success(ctx, tool, raw), nil
}

// HandleGetTransaction fetches transaction details, trimmed per scope.
func (h *Handlers) HandleGetTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool := ToolGetTransaction.Name
	ctx, span := traces.StartSpan(ctx, tool, traces.Tool(tool))
	defer span.End()

	txHash := req.GetString("transaction_hash", "")
	protocol := req.GetString("protocol", "")
	scope := req.GetString("scope", "summary")
	if errs := validation.Validate(
		validation.Required("transaction_hash", txHash),
		validation.Required("protocol", protocol),
		validation.OneOf("protocol", protocol, "eth", "bnb"),
		validation.OneOf("scope", scope, "summary", "full"),
	); len(errs) > 0 {
		return failure(ctx, tool, metrics.OutcomeValidationError, errs.Error()), nil
	}

	credential, err := h.resolver.Resolve(req.Header)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeCredentialError, err.Error()), nil
	}

	raw, err := h.client.Transaction(ctx, credential, protocol, txHash)
	if err != nil {
		return failure(ctx, tool, metrics.OutcomeUpstreamError, fmt.Sprintf("Transaction lookup failed: %v", err)), nil
	}

	return success(ctx, tool, trimTransaction(raw, scope)), nil
}

// --- Result helpers ---

// failure records the outcome metric and returns a tool error result.
func failure(ctx context.Context, tool, outcome, msg string) *mcp.CallToolResult {
	metrics.ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	if outcome == metrics.OutcomeUpstreamError {
		logging.L(ctx).Warn("tool call failed", "tool", tool, "outcome", outcome)
	} else {
		logging.L(ctx).Debug("tool call rejected", "tool", tool, "outcome", outcome)
	}
	return mcp.NewToolResultError(msg)
}

// success records the outcome metric and returns the response as indented JSON.
func success(ctx context.Context, tool string, raw json.RawMessage) *mcp.CallToolResult {
	metrics.ToolCallsTotal.WithLabelValues(tool, metrics.OutcomeOK).Inc()
	logging.L(ctx).Debug("tool call ok", "tool", tool)
	return mcp.NewToolResultText(formatJSON(raw))
}

// trimTransaction shrinks the vendor's transaction envelope
// {"data": {"transaction": {"data": <call tree>, ...overview}}}:
// summary drops the nested call tree, full returns only the call tree.
// Any shape mismatch returns the envelope unchanged.
func trimTransaction(raw json.RawMessage, scope string) json.RawMessage {
	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		return raw
	}
	txn, ok := data["transaction"].(map[string]any)
	if !ok {
		return raw
	}

	if scope == "full" {
		tree, ok := txn["data"]
		if !ok {
			return raw
		}
		out, err := json.Marshal(tree)
		if err != nil {
			return raw
		}
		return out
	}

	delete(txn, "data")
	out, err := json.Marshal(txn)
	if err != nil {
		return raw
	}
	return out
}

func formatJSON(raw json.RawMessage) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return string(raw)
	}
	return pretty.String()
}
