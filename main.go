package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acexeno/BuildIT-PC-sub000/internal/config"
	"github.com/acexeno/BuildIT-PC-sub000/internal/logger"
	"github.com/acexeno/BuildIT-PC-sub000/internal/metrics"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/api"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/catalog"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/pcpartpicker_automation"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/scraper"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/session"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/suggestion"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a .json, .yaml or .env config file")
	flag.Parse()

	feeders, err := config.Feeders(*configPath)
	if err != nil {
		return err
	}
	cfg, err := config.NewServerConfig(feeders)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.App.Debug {
		err = logger.NewSugaredDevLogger()
	} else {
		err = logger.NewSugaredProdLogger()
	}
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer logger.SyncZap()

	ctx := context.Background()
	store, err := catalog.Open(ctx, logger.S, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Catalog.SeedFile != "" {
		if _, err := store.LoadSeed(ctx, cfg.Catalog.SeedFile); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	var source suggestion.Catalog = store
	if cfg.Catalog.Source == "remote" {
		if cfg.Catalog.RemoteURL == "" {
			return errors.New("CATALOG_REMOTE_URL is required for a remote catalog")
		}
		source = catalog.NewRemoteClient(cfg.Catalog.RemoteURL, 0)
		logger.S.Infof("Using remote catalog at %s", cfg.Catalog.RemoteURL)
	}

	reg := metrics.NewRegistry()
	generator := suggestion.NewGenerator(source, suggestion.Options{
		Limit:         cfg.Suggest.Limit,
		BroadMinPrice: cfg.Suggest.BroadMinPrice,
		BroadMaxPrice: cfg.Suggest.BroadMaxPrice,
	}, reg)

	snapshots, err := session.OpenSnapshotStore(cfg.Session.Backend, cfg.Session.Dir)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer snapshots.Close()

	sessions := session.NewManager(session.Config{
		Store:       snapshots,
		Generator:   generator,
		Repo:        store,
		Logger:      logger.S,
		Observer:    reg,
		AutoRefresh: cfg.Session.AutoRefresh,
	})

	scrap := scraper.NewScraper()
	scrap.RandomizeUserAgent()

	app := api.New(api.Config{
		Catalog:    source,
		Builds:     store,
		Components: store,
		Sessions:   sessions,
		Scraper:    scrap,
		Export:     pcpartpicker_automation.ExportSelection,
		Metrics:    reg,
		Region:     cfg.Scraper.Region,
		Logger:     logger.S,
		AccessLog:  true,
	})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.S.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.S.Warnf("Shutdown: %v", err)
		}
	}()

	logger.S.Infof("%s listening on %s", cfg.App.Name, cfg.App.Addr)
	return app.Listen(cfg.App.Addr)
}
