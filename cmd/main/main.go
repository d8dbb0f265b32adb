package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/handler"
	"github.com/UnknownOlympus/hestia/internal/lib/logger"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/UnknownOlympus/hestia/internal/services/staff"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 120 * time.Second
)

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	log := logger.New(cfg.Env, os.Stdout)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	store, err := repository.NewStore(ctx, cfg, appMetrics)
	if err != nil {
		stop()
		log.Error("Failed to open employee store", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Error("Failed to close employee store", sl.Err(closeErr))
		}
	}()

	staffService := staff.NewStaff(log, store, appMetrics)
	router := handler.NewRouter(log, staffService, appMetrics)

	wgr.Add(2)

	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, log, reg, store, cfg.Monitoring.Port)
	}()

	go func() {
		defer wgr.Done()
		srv := &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		}

		log.InfoContext(ctx, "Starting Employee API", "address", cfg.HTTP.Address, "backend", cfg.Storage.Backend)
		if runErr := server.Run(ctx, srv, cfg.HTTP.ShutdownTimeout); runErr != nil {
			log.ErrorContext(ctx, "Employee API failed", sl.Err(runErr))
			stop()
			return
		}
		log.InfoContext(ctx, "Employee API stopped.")
	}()

	log.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	wgr.Wait()

	log.InfoContext(context.Background(), "Application stopped gracefully...")
}
