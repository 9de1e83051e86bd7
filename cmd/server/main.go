// Package main - Entry point for the parking-cost API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"parking-cost/adapters/dataset"
	"parking-cost/api"
	"parking-cost/core/catalog"
	"parking-cost/core/tariff"
	"parking-cost/internal/config"
	"parking-cost/internal/errors"
	"parking-cost/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "config file")
	addr := flag.String("addr", "", "server address (overrides server.addr)")
	refresh := flag.Duration("refresh", 0, "poll catalog.remote_url at this interval (0 disables)")
	flag.Parse()

	if err := run(*cfgPath, *addr, *refresh); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, addr string, refresh time.Duration) error {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	if addr == "" {
		addr = cfg.Server.Addr
	}

	cal, err := tariff.LoadCalendar(cfg.Pricing.TimeZone)
	if err != nil {
		return errors.Wrap(errors.TypeConfig, "unknown time zone", err)
	}

	initial, err := dataset.Load(cfg.Catalog.Path, dataset.Format(cfg.Catalog.Format))
	if err != nil {
		if !errors.IsType(err, errors.TypeNotFound) {
			return err
		}
		logging.Warn("no local dataset, starting empty", zap.String("path", cfg.Catalog.Path))
		initial = catalog.Empty()
	}
	store := catalog.NewStore(initial)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if refresh > 0 && cfg.Catalog.RemoteURL != "" {
		timeout := time.Duration(cfg.Catalog.RefreshTimeoutSeconds) * time.Second
		go pollCatalog(ctx, dataset.NewFetcher(timeout), store, cfg, refresh)
	}

	server := api.NewServer(store, api.Options{
		Version:  version,
		Currency: cfg.Pricing.Currency,
		Calendar: cal,
	})

	fmt.Printf("parking-cost server v%s\n", version)
	fmt.Printf("   API: http://localhost%s\n", addr)
	fmt.Println()

	return server.ListenAndServe(ctx, addr)
}

// pollCatalog installs newer remote datasets until ctx is done
func pollCatalog(ctx context.Context, f *dataset.Fetcher, store *catalog.Store, cfg *config.Config, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := f.Refresh(ctx, store, cfg.Catalog.RemoteURL, dataset.Format(cfg.Catalog.Format)); err != nil {
				logging.Warn("catalog refresh failed", zap.Error(err))
			}
		}
	}
}
