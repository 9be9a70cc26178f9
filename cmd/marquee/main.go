// Command marquee is a terminal movie browser backed by the TMDB catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/config"
	"github.com/abelbrown/marquee/internal/logging"
	"github.com/abelbrown/marquee/internal/search"
	"github.com/abelbrown/marquee/internal/store"
	"github.com/abelbrown/marquee/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (default: marquee.toml in . or ~/.marquee)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Stdout belongs to the TUI, so logs go to a file.
	if err := logging.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()

	client, err := catalog.New(cfg.Catalog)
	if err != nil {
		return err
	}
	if !client.Available() {
		logging.Warn("catalog API key is not configured")
	}

	// A broken trend store only costs the trending strip.
	var trends ui.TrendStore
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logging.Error("trend store unavailable", "backend", cfg.Store.Backend, "error", err)
	} else {
		defer st.Close()
		trends = st
	}

	state := search.New(client.Available(), search.Options{
		Debounce:        cfg.Search.Debounce,
		TrendingLimit:   cfg.Search.TrendingLimit,
		RefreshTrending: cfg.Search.RefreshTrending,
	})
	app := ui.NewApp(state, ui.NewCommands(ctx, client, trends))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
