/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the compliance service. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse CLI flags / environment
  2. Load layered config (defaults -> TOML -> COMPLYEUR_* env)
  3. Open the SQLite trip store
  4. Wire the handler (store + compliance config + cache)
  5. Start the HTTP server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database
  4. Exit

EXAMPLES:
  # Run with a file database
  ./complyeur serve --db ./data/complyeur.db

  # In-memory database on another port
  ./complyeur serve --db :memory: --port 3000

SEE ALSO:
  - config/config.go: configuration surface
  - api/server.go: router configuration
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/thisjamieguy/complyeur-v2-sub005/api"
	"github.com/thisjamieguy/complyeur-v2-sub005/calculator"
	"github.com/thisjamieguy/complyeur-v2-sub005/config"
	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
	"github.com/thisjamieguy/complyeur-v2-sub005/store/sqlite"
)

func main() {
	app := &cli.App{
		Name:  "complyeur",
		Usage: "Schengen 90/180-day compliance service",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "path to TOML config file", EnvVars: []string{"COMPLYEUR_CONFIG"}},
					&cli.IntFlag{Name: "port", Usage: "override server port"},
					&cli.StringFlag{Name: "db", Usage: "override SQLite path (use :memory: for in-memory)"},
				},
				Action: serve,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.IsSet("db") {
		cfg.Server.DBPath = c.String("db")
	}

	log := newLogger(cfg.Server.LogLevel)

	base, err := cfg.ComplianceConfig(schengen.Today())
	if err != nil {
		return err
	}

	st, err := sqlite.New(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cache := calculator.NewCache(cfg.Compliance.CacheSize)
	handler := api.NewHandler(st, base, cache, log)

	sweeper := api.NewRiskSweeper(st, handler)
	handler.Sweeper = sweeper
	sweeper.Start()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(handler),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Int("port", cfg.Server.Port).
			Str("db", cfg.Server.DBPath).
			Int("window_days", base.WindowDays).
			Int("limit", base.Limit).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
