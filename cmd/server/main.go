package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dracory/tabbase"
	"github.com/dracory/tabbase/internal/seed"
	"github.com/dracory/tabbase/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Load configuration (flags override env)
	cfg, err := tabbase.LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Driver, cfg.DSN, cfg.DebugSQL, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	if cfg.Seed {
		if err := seed.Run(ctx, st.DB()); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Info("sample data loaded", slog.Int("tables", len(seed.Tables)))
	}

	app, err := tabbase.New(ctx, cfg, st)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("tabbase listening",
		slog.String("addr", addr),
		slog.String("mount", cfg.BasePath),
		slog.String("driver", cfg.Driver),
	)

	mux := http.NewServeMux()
	mux.Handle(cfg.BasePath, app.Handler())

	// Wrap with request logging middleware
	return http.ListenAndServe(addr, tabbase.RequestLogger(logger, mux))
}
