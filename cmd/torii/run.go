package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"halcyon-hq/torii/pkg/cli"
	"halcyon-hq/torii/pkg/config"
	"halcyon-hq/torii/pkg/gateway/types"
	"halcyon-hq/torii/pkg/security/auth"
	"halcyon-hq/torii/pkg/server"
	"halcyon-hq/torii/pkg/telemetry/logging"
	"halcyon-hq/torii/pkg/telemetry/metrics"
	"halcyon-hq/torii/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watch         bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Torii gateway server",
	Long: `Start the Torii gateway server with the specified configuration.

The server listens on the configured address and forwards generation
requests to the upstream API after verifying the caller's bearer
credential.

Examples:
  # Start with default config
  torii run

  # Start with custom config
  torii run --config /etc/torii/config.yaml

  # Override listen address
  torii run --listen 0.0.0.0:8080

  # Reload configuration on file changes
  torii run --watch

  # Validate config without starting the server
  torii run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "reload configuration when the file changes")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Gateway.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("Configuration valid")
		return nil
	}

	fmt.Printf("Torii %s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)

	if !cfg.UpstreamConfigured() {
		slog.Error("upstream API key missing, gateway starts degraded and rejects all generation requests")
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	gw := newGatewayState(cfg, collector.Upstream())
	defer gw.Close()

	deps := server.Dependencies{
		Generator:  gw,
		Collector:  collector,
		Configured: gw.Configured,
	}
	if cfg.Auth.Enabled {
		deps.Verifier = gw
		deps.VerifierReady = gw.VerifierReady
	}

	ctx := cli.SetupSignalHandler()

	if runFlags.watch {
		watcher, werr := config.NewFileWatcher(cfgFile, 0, logger)
		if werr != nil {
			return cli.NewServerError("watcher setup", werr)
		}
		go func() {
			if werr := watcher.Watch(ctx, func() error {
				if rerr := config.ReloadConfig(cfgFile); rerr != nil {
					return rerr
				}
				gw.Apply(config.GetConfig())
				return nil
			}); werr != nil {
				slog.Error("configuration watcher stopped", "error", werr)
			}
		}()
		defer watcher.Stop()
	}

	srv := server.NewServer(cfg, deps)

	fmt.Printf("Server listening on %s\n", cfg.Gateway.ListenAddress)
	fmt.Printf("Generation endpoint: http://%s%s\n", cfg.Gateway.ListenAddress, server.GeneratePath)
	fmt.Printf("Health endpoint: http://%s/health\n", cfg.Gateway.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("Metrics endpoint: http://%s%s\n", cfg.Gateway.ListenAddress, cfg.Telemetry.Metrics.Path)
	}

	if err := srv.Start(ctx); err != nil {
		return cli.NewServerError("serve", err)
	}
	return nil
}

// gatewayState holds the config-derived components behind a lock so a
// configuration reload can swap them atomically while the server keeps
// serving.
type gatewayState struct {
	mu       sync.RWMutex
	cfg      *config.Config
	client   *upstream.Client
	verifier *auth.Verifier
	observer upstream.AttemptObserver
}

func newGatewayState(cfg *config.Config, observer upstream.AttemptObserver) *gatewayState {
	g := &gatewayState{observer: observer}
	g.Apply(cfg)
	return g
}

// Apply rebuilds the upstream client and verifier from cfg and swaps them
// in. The previous client's idle connections are released.
func (g *gatewayState) Apply(cfg *config.Config) {
	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL:             cfg.Upstream.BaseURL,
		Model:               cfg.Upstream.Model,
		APIKey:              cfg.Upstream.APIKey,
		Timeout:             cfg.Upstream.Timeout,
		MaxIdleConns:        cfg.Upstream.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Upstream.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Upstream.IdleConnTimeout,
		Retry: upstream.RetryPolicy{
			MaxAttempts: cfg.Upstream.Retry.MaxAttempts,
			BaseDelay:   cfg.Upstream.Retry.BaseDelay,
		},
	}, g.observer)

	var verifier *auth.Verifier
	if cfg.Auth.Enabled {
		verifier = auth.NewVerifierFromJSON(cfg.Auth.Credentials)
	}

	g.mu.Lock()
	old := g.client
	g.cfg = cfg
	g.client = client
	g.verifier = verifier
	g.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// GenerateText implements handlers.TextGenerator.
func (g *gatewayState) GenerateText(ctx context.Context, payload *types.GenerationRequest) (string, error) {
	g.mu.RLock()
	client := g.client
	g.mu.RUnlock()
	return client.GenerateText(ctx, payload)
}

// Verify implements handlers.CredentialVerifier.
func (g *gatewayState) Verify(tokenString string) (*auth.Principal, error) {
	g.mu.RLock()
	verifier := g.verifier
	g.mu.RUnlock()

	if verifier == nil {
		return nil, &auth.MisconfiguredError{Reason: "credential verifier not configured"}
	}
	return verifier.Verify(tokenString)
}

// VerifierReady reports whether the current verifier holds usable material.
func (g *gatewayState) VerifierReady() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.verifier != nil && g.verifier.Ready()
}

// Configured reports whether the gateway holds everything it needs to
// serve: the upstream key and, when authentication is enabled, a usable
// verifier. A degraded verifier fails every request closed through the
// configuration gate rather than asking callers for a credential that can
// never verify.
func (g *gatewayState) Configured() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.cfg.UpstreamConfigured() {
		return false
	}
	return !g.cfg.Auth.Enabled || (g.verifier != nil && g.verifier.Ready())
}

// Close releases the current upstream client's connections.
func (g *gatewayState) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
