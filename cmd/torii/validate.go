package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"halcyon-hq/torii/pkg/cli"
	"halcyon-hq/torii/pkg/config"
)

var validateFlags struct {
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a configuration file without starting the server.

The validate command applies defaults and environment variable overrides,
runs structural validation, and reports whether the gateway would start
ready or degraded. Secrets are checked for presence only; their values
are never printed.

Examples:
  # Validate the default config file
  torii validate

  # Validate a specific file
  torii validate --config /etc/torii/config.yaml

  # Machine-readable output
  torii validate --format json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

// validationResult is the printable summary of a validated configuration.
type validationResult struct {
	Valid              bool   `json:"valid"`
	ListenAddress      string `json:"listen_address"`
	UpstreamModel      string `json:"upstream_model"`
	UpstreamConfigured bool   `json:"upstream_configured"`
	AuthEnabled        bool   `json:"auth_enabled"`
	CredentialsPresent bool   `json:"credentials_present"`
	MetricsEnabled     bool   `json:"metrics_enabled"`
}

func (r validationResult) String() string {
	status := "ready"
	if !r.UpstreamConfigured || (r.AuthEnabled && !r.CredentialsPresent) {
		status = "degraded"
	}
	return fmt.Sprintf("Configuration valid (startup would be %s)\n"+
		"  listen address:      %s\n"+
		"  upstream model:      %s\n"+
		"  upstream configured: %t\n"+
		"  auth enabled:        %t\n"+
		"  credentials present: %t\n"+
		"  metrics enabled:     %t",
		status, r.ListenAddress, r.UpstreamModel, r.UpstreamConfigured,
		r.AuthEnabled, r.CredentialsPresent, r.MetricsEnabled)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	result := validationResult{
		Valid:              true,
		ListenAddress:      cfg.Gateway.ListenAddress,
		UpstreamModel:      cfg.Upstream.Model,
		UpstreamConfigured: cfg.UpstreamConfigured(),
		AuthEnabled:        cfg.Auth.Enabled,
		CredentialsPresent: cfg.Auth.Credentials != "",
		MetricsEnabled:     cfg.Telemetry.Metrics.Enabled,
	}

	formatter := cli.NewFormatter(cli.OutputFormat(validateFlags.format))
	return formatter.FormatTo(os.Stdout, result)
}
