package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/config"
	"github.com/abelbrown/marquee/internal/logging"
	"github.com/abelbrown/marquee/internal/store"
)

// setup loads config, sends logs to stderr and returns a context cancelled
// on SIGINT/SIGTERM.
func setup() (context.Context, context.CancelFunc, *config.Config) {
	cfg, err := config.Load(os.Getenv("MARQUEE_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.InitWriter(os.Stderr, cfg.Log.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx, cancel, cfg
}

// openStore opens the configured trend store or fatals.
func openStore(ctx context.Context, cfg *config.Config) store.Store {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("open trend store: %v", err)
	}
	return st
}

// requireCatalog returns a catalog client with a key, or exits.
func requireCatalog(cfg *config.Config) *catalog.Client {
	client, err := catalog.New(cfg.Catalog)
	if err != nil {
		log.Fatalf("catalog client: %v", err)
	}
	if !client.Available() {
		fmt.Fprintln(os.Stderr, "error: catalog API key is not configured")
		fmt.Fprintln(os.Stderr, "  export TMDB_API_KEY=... or add it to .env.local")
		os.Exit(1)
	}
	return client
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
