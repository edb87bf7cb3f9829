package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vsinha/takeoff/pkg/application/services/estimate"
	"github.com/vsinha/takeoff/pkg/infrastructure/config"
	"github.com/vsinha/takeoff/pkg/infrastructure/events"
	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
	"github.com/vsinha/takeoff/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/takeoff/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/takeoff/pkg/infrastructure/tracing"
	"github.com/vsinha/takeoff/pkg/interfaces/httpapi"
	httpH "github.com/vsinha/takeoff/pkg/interfaces/httpapi/handlers"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init(ctx, log, cfg.Tracing, version)

	masterlistRepo := memory.NewRebarMasterlistRepository(0)
	resourceRepo := memory.NewResourceRepository()
	if err := loadCatalogs(cfg.Catalog, masterlistRepo, resourceRepo); err != nil {
		log.Error("failed to load catalogs", "error", err)
		os.Exit(1)
	}

	runStore := events.NewInMemoryEventStore(log)
	runLogger := events.NewRunLogger(log)
	if err := runStore.Subscribe(runLogger.EventTypes(), runLogger); err != nil {
		log.Error("failed to subscribe run logger", "error", err)
		os.Exit(1)
	}
	estimateService := estimate.NewService(resourceRepo,
		estimate.WithConcurrency(cfg.Estimate.Concurrency),
		estimate.WithEventStore(runStore),
		estimate.WithLogger(log),
	)

	serviceName := ""
	if cfg.Tracing.Enabled {
		serviceName = cfg.Tracing.ServiceName
	}

	server := httpapi.NewServer(cfg.Server.Address(), httpapi.RouterConfig{
		Logger:             log,
		ServiceName:        serviceName,
		CalculationHandler: httpH.NewCalculationHandler(masterlistRepo),
		EstimateHandler:    httpH.NewEstimateHandler(log, estimateService, masterlistRepo),
		CatalogHandler:     httpH.NewCatalogHandler(masterlistRepo, resourceRepo),
		RunHandler:         httpH.NewRunHandler(runStore),
		HealthHandler:      httpH.NewHealthHandler(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", cfg.Server.Address(), "version", version)
		errCh <- server.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", "error", err)
	}
}

// loadCatalogs preloads the rebar masterlist and resource catalog from the
// configured CSV files. Unset paths leave the catalog empty.
func loadCatalogs(cfg config.CatalogConfig, masterlist *memory.RebarMasterlistRepository, resources *memory.ResourceRepository) error {
	loader := csv.NewLoader()

	if cfg.RebarMasterlistPath != "" {
		specs, err := loader.LoadRebarMasterlist(cfg.RebarMasterlistPath)
		if err != nil {
			return err
		}
		if err := masterlist.LoadSpecs(specs); err != nil {
			return fmt.Errorf("failed to load rebar masterlist: %w", err)
		}
	}

	if cfg.ResourcesPath != "" {
		rs, err := loader.LoadResources(cfg.ResourcesPath)
		if err != nil {
			return err
		}
		if err := resources.LoadResources(rs); err != nil {
			return fmt.Errorf("failed to load resources: %w", err)
		}
	}
	return nil
}
