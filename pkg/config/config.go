package config

import "time"

// Config is the root configuration structure for the Torii gateway.
type Config struct {
	// Gateway contains HTTP server configuration including listen address,
	// timeouts, and CORS settings.
	Gateway GatewayConfig `yaml:"gateway"`

	// Upstream contains the upstream generation API configuration.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Auth contains the optional bearer-credential verification stage.
	Auth AuthConfig `yaml:"auth"`

	// Telemetry contains observability configuration: logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GatewayConfig contains configuration for the HTTP server.
type GatewayConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It bounds the whole request, including upstream retries.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
type CORSConfig struct {
	// Enabled controls whether CORS is enabled.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins for CORS requests.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods.
	// Default: ["POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is a list of allowed HTTP headers.
	// Default: ["Authorization", "Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders is a list of headers exposed to the client.
	// Default: ["X-Request-ID"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is the preflight cache age in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`

	// AllowCredentials controls whether credentials are allowed.
	// Default: false
	AllowCredentials bool `yaml:"allow_credentials"`
}

// UpstreamConfig contains configuration for the upstream generation API.
type UpstreamConfig struct {
	// BaseURL is the base URL of the upstream API, without a trailing slash.
	// Default: "https://generativelanguage.googleapis.com/v1beta/models"
	BaseURL string `yaml:"base_url"`

	// Model is the model identifier appended to the base URL.
	// Default: "gemini-2.0-flash"
	Model string `yaml:"model"`

	// APIKey is the upstream API key. Normally supplied via
	// TORII_UPSTREAM_API_KEY rather than the file. When empty, the gateway
	// runs in degraded mode and rejects every request as misconfigured.
	APIKey string `yaml:"api_key"`

	// Timeout is the per-attempt HTTP timeout.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns controls the connection pool size.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost controls per-host idle connections.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout controls how long idle connections are kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`

	// Retry is the retry policy for upstream calls.
	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig contains the upstream retry policy.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`

	// BaseDelay is the delay before the first retry; each further retry
	// doubles it. No jitter is applied.
	// Default: 1s
	BaseDelay time.Duration `yaml:"base_delay"`
}

// AuthConfig contains the optional authentication stage configuration.
type AuthConfig struct {
	// Enabled controls whether the gateway verifies bearer credentials.
	// When false, requests are forwarded without an authentication stage.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Credentials is the JSON-encoded credential bundle for the verifier.
	// Normally supplied via TORII_AUTH_CREDENTIALS. When auth is enabled
	// and this is absent or unparsable, the gateway rejects every request
	// as misconfigured until restart.
	Credentials string `yaml:"credentials"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the /metrics endpoint is exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace.
	// Default: "torii"
	Namespace string `yaml:"namespace"`
}

// UpstreamConfigured reports whether the mandatory upstream configuration
// is present. The gateway checks this per request and answers with the
// misconfigured error while it is false.
func (c *Config) UpstreamConfigured() bool {
	return c.Upstream.APIKey != ""
}
