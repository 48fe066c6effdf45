// AnChain AML MCP Server - exposes AnChain.AI screening APIs as MCP tools for LLM agents
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	mcpgo "github.com/mark3labs/mcp-go/server"

	"github.com/anchainai/aml-mcp/internal/config"
	"github.com/anchainai/aml-mcp/internal/logging"
	"github.com/anchainai/aml-mcp/internal/mcpserver"
	"github.com/anchainai/aml-mcp/internal/server"
	"github.com/anchainai/aml-mcp/internal/traces"
)

// Build info - set by ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:          "aml-mcp",
		Short:        "AnChain.AI AML screening tools over MCP",
		Long: "Serves AnChain.AI anti-money-laundering screening APIs as MCP tools.\n" +
			"Local mode speaks MCP over stdio using a key fixed at startup; remote\n" +
			"mode serves MCP over HTTP and reads each caller's x-api-key header.",
		RunE:         run,
		SilenceUsage: true,
	}

	flags := root.Flags()
	flags.String("transport", config.TransportLocal, "MCP transport: local (stdio) or remote (HTTP)")
	flags.StringP("api-key", "k", "", "AnChain API key (required in local mode)")
	flags.String("host", config.DefaultHost, "listen host (remote mode)")
	flags.Int("port", config.DefaultPort, "listen port (remote mode)")
	flags.String("base-url", config.DefaultBaseURL, "AnChain AML API base URL")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	flags.String("log-format", config.DefaultLogFormat, "log format: text or json")
	flags.Int("rate-limit", config.DefaultRateLimit, "requests per minute per client (remote mode)")

	config.Init(root)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()

	shutdownTraces, err := traces.Init(ctx, cfg.OTLPEndpoint, logger)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			if err := shutdownTraces(context.Background()); err != nil {
				logger.Error("trace shutdown error", "error", err)
			}
		}()
	}

	if cfg.IsRemote() {
		logger.Info("starting in remote mode",
			"version", Version,
			"commit", Commit,
			"build_time", BuildTime,
			"addr", cfg.ListenAddr(),
		)

		srv, err := server.New(cfg, server.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("create server: %w", err)
		}
		return srv.Run(ctx)
	}

	// Local mode: MCP over stdio. The logger writes to stderr, so stdout
	// stays clean for the JSON-RPC stream.
	logger.Info("starting in local mode",
		"version", Version,
		"commit", Commit,
		"build_time", BuildTime,
		"base_url", cfg.BaseURL,
	)

	s := mcpserver.NewMCPServer(mcpserver.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
	})
	if err := mcpgo.ServeStdio(s); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
