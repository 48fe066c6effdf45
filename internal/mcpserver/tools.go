package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the AnChain AML MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

// protocolList enumerates the chains the screening endpoints accept. The
// vendor owns this list; it is carried in descriptions, not enforced locally.
const protocolList = "btc, eth, sol, xlm, trx, egld, xrp, bch, ltc, algo, bsv, dash, xvg, zec"

var ToolCryptoScreening = mcp.NewTool("crypto_screening",
	mcp.WithDescription(
		"Screen a cryptocurrency address for money-laundering risk. "+
			"Returns the AnChain risk score and level plus the flagged categories "+
			"behind it. Supported protocols: "+protocolList+"."),
	mcp.WithTitleAnnotation("Crypto Address Risk Score"),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(true),
	mcp.WithString("address",
		mcp.Required(),
		mcp.Description("The address to screen (e.g. 'bc1qa5wkgaew2dkv56kfvj49j0av5nml45x9ek9hz6')")),
	mcp.WithString("protocol",
		mcp.Required(),
		mcp.Description("Blockchain protocol of the address: "+protocolList)),
)

var ToolCryptoActivityScreening = mcp.NewTool("crypto_activity_screening",
	mcp.WithDescription(
		"Screen a cryptocurrency address for its observed activity: transaction "+
			"volume, counterparty categories, and suspicious behaviour flags. "+
			"Supported protocols: "+protocolList+"."),
	mcp.WithTitleAnnotation("Crypto Address Activity"),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(true),
	mcp.WithString("address",
		mcp.Required(),
		mcp.Description("The address to screen")),
	mcp.WithString("protocol",
		mcp.Required(),
		mcp.Description("Blockchain protocol of the address: "+protocolList)),
)

var ToolCryptoAttributionScreening = mcp.NewTool("crypto_attribution_screening",
	mcp.WithDescription(
		"Look up attribution data for a cryptocurrency address: the real-world "+
			"entity behind it (exchange, mixer, darknet market, ransomware wallet) "+
			"where known. Supported protocols: "+protocolList+"."),
	mcp.WithTitleAnnotation("Crypto Address Attribution"),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(true),
	mcp.WithString("address",
		mcp.Required(),
		mcp.Description("The address to look up")),
	mcp.WithString("protocol",
		mcp.Required(),
		mcp.Description("Blockchain protocol of the address: "+protocolList)),
)

var ToolSanctionsScreening = mcp.NewTool("sanctions_screening",
	mcp.WithDescription(
		"Screen an entity against global sanctions lists. At least one of name, "+
			"idNumber, nationality, or birthYear must be provided. Conditions "+
			"combine with AND; values within one array combine with OR."),
	mcp.WithTitleAnnotation("Sanctions List Screening"),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(true),
	mcp.WithString("schema",
		mcp.Description("Entity type to search (default 'person')"),
		mcp.Enum("person", "company", "vessel", "aircraft", "crypto")),
	mcp.WithString("scope",
		mcp.Description("Search scope; 'full' requires an enterprise plan (default 'basic')"),
		mcp.Enum("basic", "full")),
	mcp.WithArray("name",
		mcp.Description("Names to match (e.g. [\"John Doe\"])"),
		mcp.Items(map[string]any{"type": "string"})),
	mcp.WithArray("idNumber",
		mcp.Description("Identification numbers: passports, national IDs, registration numbers"),
		mcp.Items(map[string]any{"type": "string"})),
	mcp.WithArray("nationality",
		mcp.Description("2-letter ISO 3166-1 country codes (e.g. [\"US\", \"RU\"])"),
		mcp.Items(map[string]any{"type": "string"})),
	mcp.WithArray("birthYear",
		mcp.Description("Birth years as integers between 1000 and 9999"),
		mcp.Items(map[string]any{"type": "integer"})),
)

var ToolIPScreening = mcp.NewTool("ip_screening",
	mcp.WithDescription(
		"Look up threat intelligence for an IP address: known malicious activity, "+
			"abuse reports, and network metadata. Accepts IPv4 or IPv6."),
	mcp.WithTitleAnnotation("IP Threat Intelligence"),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(true),
	mcp.WithString("ip_address",
		mcp.Required(),
		mcp.Description("The IPv4 or IPv6 address to screen (e.g. '8.8.8.8')")),
)

var ToolAutoTrace = mcp.NewTool("auto_trace",
	mcp.WithDescription(
		"Trace asset flows from a crypto address or transaction across multiple "+
			"hops. Provide either address or txn_hash as the traced subject; when "+
			"both are given, address wins. Returns the flow graph and the endpoints "+
			"reached within the time window."),
	mcp.WithTitleAnnotation("Asset Flow Tracing"),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(true),
	mcp.WithString("protocol",
		mcp.Required(),
		mcp.Description("Blockchain protocol to trace on: "+protocolList)),
	mcp.WithString("address",
		mcp.Description("Address to trace from. Takes precedence over txn_hash when both are set.")),
	mcp.WithString("txn_hash",
		mcp.Description("Transaction hash to trace from; used when address is absent.")),
	mcp.WithNumber("time_from",
		mcp.Required(),
		mcp.Description("Start of the trace window as a Unix timestamp in seconds")),
	mcp.WithNumber("time_to",
		mcp.Required(),
		mcp.Description("End of the trace window as a Unix timestamp in seconds")),
	mcp.WithString("direction",
		mcp.Description("Flow direction to follow: 'in' traces sources, 'out' traces destinations (default 'in')"),
		mcp.Enum("in", "out")),
	mcp.WithNumber("time_window",
		mcp.Description("Maximum lookback per hop in days (default 365)")),
	mcp.WithNumber("min_amount",
		mcp.Description("Ignore transfers below this amount (default 0)")),
	mcp.WithNumber("max_amount",
		mcp.Description("Ignore transfers above this amount; unlimited when omitted")),
	mcp.WithString("token",
		mcp.Description("Restrict the trace to a specific token symbol or contract")),
)

var ToolGetSourceCode = mcp.NewTool("get_source_code",
	mcp.WithDescription(
		"Fetch the verified source code of a smart contract. EVM chains only."),
	mcp.WithTitleAnnotation("Smart Contract Source"),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(true),
	mcp.WithString("address",
		mcp.Required(),
		mcp.Description("The contract address (e.g. '0x7a250d5630b4cf539739df2c5dacb4c659f2488d')")),
	mcp.WithString("protocol",
		mcp.Required(),
		mcp.Description("EVM chain hosting the contract"),
		mcp.Enum("eth", "bnb")),
)

var ToolGetTransaction = mcp.NewTool("get_transaction",
	mcp.WithDescription(
		"Fetch decoded details for a transaction. EVM chains only. "+
			"scope 'summary' returns the overview without the raw call tree; "+
			"scope 'full' returns only the raw call tree, which can be very large."),
	mcp.WithTitleAnnotation("Transaction Details"),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(true),
	mcp.WithString("transaction_hash",
		mcp.Required(),
		mcp.Description("The transaction hash to look up")),
	mcp.WithString("protocol",
		mcp.Required(),
		mcp.Description("EVM chain the transaction was mined on"),
		mcp.Enum("eth", "bnb")),
	mcp.WithString("scope",
		mcp.Description("How much of the result to return (default 'summary')"),
		mcp.Enum("summary", "full")),
)
