package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/mindwise/internal/config"
	"github.com/jonathan/mindwise/internal/db"
	"github.com/jonathan/mindwise/internal/server"
)

var (
	servePort    int
	serveMigrate bool
	serveBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the authentication, job application, notes and analysis endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply pending database migrations before serving")
	serveCmd.Flags().BoolVar(&serveBrowser, "browser", false, "Render JavaScript-heavy job pages with headless Chrome")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}
	passwordCfg, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to load password config: %w", err)
	}

	if serveMigrate {
		if err := migrateUp(cfg.DatabaseURL); err != nil {
			return err
		}
	}

	ctx := cmd.Context()

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		store.Close()
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("[SERVER] Failed to close LLM client: %v", err)
		}
	}()

	runner := newRunner(cfg, client, serveBrowser)
	srv, err := server.New(cfg, server.Dependencies{
		Store:    store,
		Pipeline: runner,
		Jobs:     runner.Jobs,
		JWT:      jwtCfg,
		Password: passwordCfg,
	})
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// migrateUp applies every pending migration.
func migrateUp(databaseURL string) (err error) {
	m, err := db.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := m.Up(); err != nil {
		return err
	}
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Printf("[MIGRATE] Schema at version %d (dirty: %t)", version, dirty)
	return nil
}
