package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/superheroes/bootstrap"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the superheroes HTTP server.

The server will:
  - Load configuration from superheroes.yaml (or --config)
  - Apply SUPERHEROES_* environment variable overrides
  - Open the database and migrate the schema
  - Serve the API until SIGINT or SIGTERM

Environment variables:
  SUPERHEROES_SERVER_PORT      - Server port (default: 5555)
  SUPERHEROES_DATABASE_DRIVER  - sqlite, postgres or memory (default: sqlite)
  SUPERHEROES_DATABASE_DSN     - Database path or URL (default: app.db)
  SUPERHEROES_LOG_LEVEL        - Log level: debug, info, warn, error
  SUPERHEROES_LOG_FORMAT       - json or console

Examples:
  superheroes serve
  superheroes serve --config /etc/superheroes/config.yaml
  SUPERHEROES_DATABASE_DRIVER=memory superheroes serve --seed`,
	RunE: runServe,
}

var serveSeed bool

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "load sample data before serving if the database is empty")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(bootstrap.Options{
		ConfigPath: cfgFile,
		Version:    version,
		HotReload:  hotReload,
	})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	if serveSeed {
		if err := seedIfEmpty(cmd.Context(), app); err != nil {
			app.Shutdown()
			return err
		}
	}

	// Run (blocks until shutdown)
	return app.Run()
}
