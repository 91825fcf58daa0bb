package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quarterline/arcade-circuit/internal/config"
	"github.com/quarterline/arcade-circuit/internal/database"
	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/quarterline/arcade-circuit/internal/games"
	"github.com/quarterline/arcade-circuit/internal/history"
	server "github.com/quarterline/arcade-circuit/internal/http"
	"github.com/quarterline/arcade-circuit/internal/metrics"
	"github.com/quarterline/arcade-circuit/internal/perf"
	"github.com/quarterline/arcade-circuit/internal/scoring"
	"github.com/quarterline/arcade-circuit/internal/storage"
	"github.com/quarterline/arcade-circuit/internal/tournament"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	registry := games.Default()
	aggregator := scoring.New(registry)
	bus := events.NewBus()
	defer bus.Close()

	// The store's quota hook is bound once the monitor exists.
	storeOpts := storage.Options{
		QuotaBytes:  cfg.Storage.QuotaBytes,
		WarnPercent: cfg.Storage.WarnPercent,
	}
	store := storage.New(db, storeOpts)

	manager := tournament.New(store, aggregator, registry, bus, metricsSvc)
	hist := history.New(store, aggregator, bus, metricsSvc)
	defer hist.Close()

	monitor, err := perf.New(store, hist, metricsSvc, perf.Options{
		SampleCapacity: cfg.Perf.SampleCapacity,
		WarnPercent:    cfg.Storage.WarnPercent,
		RetainDays:     cfg.History.RetainDays,
		SweepEvery:     time.Duration(cfg.Perf.SweepEverySec) * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to initialize performance monitor: %s", err)
	}
	store.SetQuotaWarnHook(monitor.WarnHook)
	monitor.Start()
	defer monitor.Close()

	s := server.NewServer(
		manager,
		hist,
		store,
		registry,
		monitor,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
