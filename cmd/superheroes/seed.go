package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/superheroes/adapters/clock"
	superheroes "github.com/artpar/superheroes/app"
	"github.com/artpar/superheroes/bootstrap"
	"github.com/artpar/superheroes/config"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample heroes, powers and hero powers",
	Long: `Populate the configured database with sample data.

Without --reset the sample rows are appended to whatever is already there.
With --reset every table is emptied and ids restart at 1 first.

Examples:
  superheroes seed
  superheroes seed --reset`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete existing rows before seeding")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := bootstrap.NewLogger(cfg.Logging)

	db, stores, err := bootstrap.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if seedReset {
		if err := db.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		logger.Info().Msg("database reset")
	}

	res, err := superheroes.Seed(ctx, stores, clock.Real{})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d heroes, %d powers, %d hero powers\n",
		res.Heroes, res.Powers, res.HeroPowers)
	return nil
}

// seedIfEmpty seeds a freshly started server that has no heroes yet.
func seedIfEmpty(ctx context.Context, app *bootstrap.App) error {
	if ctx == nil {
		ctx = context.Background()
	}

	heroes, err := app.Stores.Heroes.List(ctx)
	if err != nil {
		return fmt.Errorf("list heroes: %w", err)
	}
	if len(heroes) > 0 {
		app.Logger.Info().Int("heroes", len(heroes)).Msg("database not empty, skipping seed")
		return nil
	}

	res, err := superheroes.Seed(ctx, app.Stores, clock.Real{})
	if err != nil {
		return err
	}
	app.Logger.Info().
		Int("heroes", res.Heroes).
		Int("powers", res.Powers).
		Int("hero_powers", res.HeroPowers).
		Msg("sample data loaded")
	return nil
}
