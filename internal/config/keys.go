package config

// Viper keys. Each resolves from, in precedence order: command-line flag,
// ANCHAIN_-prefixed environment variable, built-in default.
const (
	KeyTransport    = "transport"
	KeyAPIKey       = "api_key"
	KeyHost         = "host"
	KeyPort         = "port"
	KeyBaseURL      = "base_url"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyRateLimit    = "rate_limit"
	KeyOTLPEndpoint = "otlp_endpoint"
)
