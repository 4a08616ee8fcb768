package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/crcresearch/padcheck/internal/config"
	"github.com/crcresearch/padcheck/internal/db"
	"github.com/crcresearch/padcheck/internal/logging"
	"github.com/crcresearch/padcheck/internal/padsource"
	"github.com/crcresearch/padcheck/internal/padsource/api"
	"github.com/crcresearch/padcheck/internal/padsource/snapshot"
	"github.com/crcresearch/padcheck/internal/service"
	"github.com/crcresearch/padcheck/internal/web"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "padcheck",
		Usage:   "Look up the latest PAD card per project and user",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "Listen address (overrides LISTEN_ADDR)"},
			&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Usage: "Data source backend: api or snapshot (overrides PAD_BACKEND)"},
			&cli.StringFlag{Name: "log-level", Usage: "Log level: debug, info, warn, error (overrides LOG_LEVEL)"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			if v := c.String("listen"); v != "" {
				cfg.ListenAddr = v
			}
			if v := c.String("backend"); v != "" {
				cfg.Backend = v
			}
			if v := c.String("log-level"); v != "" {
				cfg.LogLevel = v
			}

			logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer cleanup()

			source, closeSource, err := newDataSource(cfg, logger)
			if err != nil {
				return err
			}
			defer closeSource()

			svc := service.NewPadService(source, cfg.BaseURL, logger)
			server := web.NewServer(svc, logger)
			return server.ListenAndServe(cfg.ListenAddr)
		},
	}
}

func newDataSource(cfg *config.Config, logger *slog.Logger) (padsource.DataSource, func(), error) {
	switch cfg.Backend {
	case "snapshot":
		logger.Info("using snapshot backend", "path", cfg.SnapshotDB)
		database, err := db.Open(cfg.SnapshotDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open snapshot database: %w", err)
		}
		closeFn := func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close snapshot database", "error", err)
			}
		}
		return snapshot.New(database), closeFn, nil
	case "api", "":
		logger.Info("using live analytics backend", "url", cfg.APIURL)
		return api.New(cfg.APIURL, cfg.HTTPTimeout), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
