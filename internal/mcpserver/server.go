package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// serverInstructions is shown to connected agents describing the tool suite.
const serverInstructions = "AnChain.AI AML screening tools: risk-score, " +
	"activity, and attribution screening for crypto addresses; sanctions " +
	"list screening for people, companies, vessels, and aircraft; IP threat " +
	"intelligence; asset-flow tracing; and smart contract source and " +
	"transaction lookups on EVM chains. Remote deployments require an " +
	"AnChain API key in the x-api-key header of every request."

// NewMCPServer creates a configured MCP server with all AML tools registered.
func NewMCPServer(cfg Config) *server.MCPServer {
	s := server.NewMCPServer("anchain_aml", "1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	client := NewAMLClient(cfg)
	h := NewHandlers(client, NewResolver(cfg))

	s.AddTool(ToolCryptoScreening, h.HandleCryptoScreening)
	s.AddTool(ToolCryptoActivityScreening, h.HandleCryptoActivityScreening)
	s.AddTool(ToolCryptoAttributionScreening, h.HandleCryptoAttributionScreening)
	s.AddTool(ToolSanctionsScreening, h.HandleSanctionsScreening)
	s.AddTool(ToolIPScreening, h.HandleIPScreening)
	s.AddTool(ToolAutoTrace, h.HandleAutoTrace)
	s.AddTool(ToolGetSourceCode, h.HandleGetSourceCode)
	s.AddTool(ToolGetTransaction, h.HandleGetTransaction)

	return s
}
