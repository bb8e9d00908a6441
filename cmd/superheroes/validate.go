package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/artpar/superheroes/bootstrap"
	"github.com/artpar/superheroes/config"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration before deployment",
	Long: `Validate the superheroes configuration.

Checks:
  - YAML syntax is valid
  - Values are in range
  - Database is reachable (optional)

Examples:
  superheroes validate
  superheroes validate --check-database --config /etc/superheroes/config.yaml`,
	RunE: runValidate,
}

var validateCheckDatabase bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckDatabase, "check-database", false, "check if the database is reachable")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", cfgFile)

	if _, err := os.Stat(cfgFile); err == nil {
		fmt.Fprintf(out, "  %s Config file exists\n", checkMark)
	} else {
		fmt.Fprintf(out, "  - Config file not found, using defaults and environment\n")
	}
	if config.HasEnvConfig() {
		fmt.Fprintf(out, "  %s SUPERHEROES_* environment overrides applied\n", checkMark)
	}

	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		fmt.Fprintf(out, "  %s Config valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Fprintf(out, "  %s Config valid\n", checkMark)

	fmt.Fprintf(out, "  %s Listen: %s\n", checkMark, cfg.Server.Addr())
	fmt.Fprintf(out, "  %s Database: %s\n", checkMark, cfg.Database.Driver)
	fmt.Fprintf(out, "  %s Logging: %s (%s)\n", checkMark, cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Metrics.Enabled {
		fmt.Fprintf(out, "  %s Metrics: %s\n", checkMark, cfg.Metrics.Path)
	}

	if validateCheckDatabase {
		if err := checkDatabase(cfg.Database); err != nil {
			fmt.Fprintf(out, "  %s Database reachable\n", crossMark)
			fmt.Fprintf(out, "      Error: %v\n", err)
			return err
		}
		fmt.Fprintf(out, "  %s Database reachable\n", checkMark)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}

func checkDatabase(cfg config.DatabaseConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, _, err := bootstrap.OpenDatabase(ctx, cfg, zerolog.Nop())
	if err != nil {
		return err
	}
	defer db.Close()

	return db.PingContext(ctx)
}
