// Package config handles application configuration from flags, environment
// variables, and defaults.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Transport modes. Local serves MCP over stdio with one key fixed at
// startup; remote serves MCP over HTTP with a per-request x-api-key header.
const (
	TransportLocal  = "local"
	TransportRemote = "remote"
)

const (
	DefaultBaseURL   = "https://aml.anchainai.com/api"
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 8002
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultRateLimit = 120 // requests per minute per client
)

// Config holds all application configuration.
type Config struct {
	Transport string // "local" or "remote"
	APIKey    string // vendor credential, local mode only
	Host      string // remote listener host
	Port      int    // remote listener port
	BaseURL   string // vendor API base URL

	LogLevel  string
	LogFormat string

	RateLimitPerMinute int
	OTLPEndpoint       string // OTLP gRPC endpoint; empty disables tracing
}

// Init wires viper to the command's flags and the process environment.
// It loads a .env file if present (for local development).
func Init(cmd *cobra.Command) {
	_ = godotenv.Load()

	viper.SetEnvPrefix("anchain")
	viper.AutomaticEnv()

	if cmd != nil {
		flags := cmd.Flags()
		_ = viper.BindPFlag(KeyTransport, flags.Lookup("transport"))
		_ = viper.BindPFlag(KeyAPIKey, flags.Lookup("api-key"))
		_ = viper.BindPFlag(KeyHost, flags.Lookup("host"))
		_ = viper.BindPFlag(KeyPort, flags.Lookup("port"))
		_ = viper.BindPFlag(KeyBaseURL, flags.Lookup("base-url"))
		_ = viper.BindPFlag(KeyLogLevel, flags.Lookup("log-level"))
		_ = viper.BindPFlag(KeyLogFormat, flags.Lookup("log-format"))
		_ = viper.BindPFlag(KeyRateLimit, flags.Lookup("rate-limit"))
	}

	// ANCHAIN_APIKEY is the vendor's historical variable name, kept as an
	// alias alongside ANCHAIN_API_KEY.
	_ = viper.BindEnv(KeyAPIKey, "ANCHAIN_APIKEY")
	_ = viper.BindEnv(KeyOTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyTransport, TransportLocal)
	viper.SetDefault(KeyHost, DefaultHost)
	viper.SetDefault(KeyPort, DefaultPort)
	viper.SetDefault(KeyBaseURL, DefaultBaseURL)
	viper.SetDefault(KeyLogLevel, DefaultLogLevel)
	viper.SetDefault(KeyLogFormat, DefaultLogFormat)
	viper.SetDefault(KeyRateLimit, DefaultRateLimit)
}

// Load reads the resolved configuration and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Transport:          viper.GetString(KeyTransport),
		APIKey:             viper.GetString(KeyAPIKey),
		Host:               viper.GetString(KeyHost),
		Port:               viper.GetInt(KeyPort),
		BaseURL:            viper.GetString(KeyBaseURL),
		LogLevel:           viper.GetString(KeyLogLevel),
		LogFormat:          viper.GetString(KeyLogFormat),
		RateLimitPerMinute: viper.GetInt(KeyRateLimit),
		OTLPEndpoint:       viper.GetString(KeyOTLPEndpoint),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration can actually run the selected
// transport. Local mode refuses to start without a credential.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportLocal, TransportRemote:
	default:
		return fmt.Errorf("transport must be %q or %q, got %q", TransportLocal, TransportRemote, c.Transport)
	}

	if c.Transport == TransportLocal && strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api key is required in local mode: set --api-key or ANCHAIN_APIKEY")
	}

	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute http(s) URL", c.BaseURL)
	}

	if c.Transport == TransportRemote && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	return nil
}

// IsLocal returns true when serving MCP over stdio.
func (c *Config) IsLocal() bool {
	return c.Transport == TransportLocal
}

// IsRemote returns true when serving MCP over HTTP.
func (c *Config) IsRemote() bool {
	return c.Transport == TransportRemote
}

// ListenAddr returns the remote listener address as host:port.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
