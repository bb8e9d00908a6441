package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/superheroes/config"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "superheroes",
	Short: "REST API for heroes, powers and hero powers",
	Long: `superheroes serves a small JSON API over heroes, their powers and the
strength with which each hero wields a power.

Quick start:
  superheroes seed     # Load sample heroes and powers
  superheroes serve    # Start the HTTP server on :5555

Maintenance:
  superheroes validate # Validate configuration
  superheroes version  # Print build information`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file path")
}
