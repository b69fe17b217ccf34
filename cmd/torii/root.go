package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "torii",
	Short: "Torii - authenticated AI generation gateway",
	Long: `Torii is an authenticated forwarding gateway for AI text generation.

It sits between browser or service callers and the upstream generation API,
providing:
  - Bearer credential verification with subject revocation
  - Payload validation with byte-exact parts passthrough
  - Bounded retries with exponential backoff
  - A stable caller-facing error contract that never leaks internals
  - Server-side custody of the upstream API key`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
