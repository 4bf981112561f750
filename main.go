package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kpidashboard/config"
	"kpidashboard/database"
	"kpidashboard/handlers"
	repository "kpidashboard/repositories"
	"kpidashboard/routes"
	"kpidashboard/services"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		config.Logger.WithError(err).Fatal("Server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	config.InitLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			config.Logger.WithError(err).Error("Failed to close storage")
		}
	}()

	var opts []services.StoreOption
	if cfg.SeedOnEmpty {
		opts = append(opts, services.WithSeed(database.SeedEmployees(), database.SeedKPIs()))
	}
	store, err := services.NewRecordStore(ctx, repo, opts...)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var provider services.ReportProvider
	if cfg.Report.APIKey != "" {
		provider, err = services.NewGeminiProvider(ctx, cfg.Report.APIKey, cfg.Report.Model)
		if err != nil {
			return err
		}
	} else {
		config.Logger.Warn("No API key configured, reports will not be generated")
	}

	reportService := services.NewReportService(provider, services.ReportOptions{
		Timeout:      cfg.Report.Timeout,
		RateInterval: cfg.Report.RateInterval,
		Retention:    cfg.Report.Retention,
	})
	defer reportService.Close()

	dashboardService := services.NewDashboardService(store)
	handler := routes.SetupRoutes(routes.Handlers{
		Employees: handlers.NewEmployeeHandler(services.NewEmployeeService(store)),
		KPIs:      handlers.NewKPIHandler(services.NewKPIService(store)),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Reports:   handlers.NewReportHandler(dashboardService, reportService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		config.Logger.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		config.Logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.SnapshotRepository, error) {
	log := config.Logger.WithField("backend", cfg.StorageBackend)

	switch cfg.StorageBackend {
	case config.StorageMongo:
		client, err := database.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)

		log.Info("Creating database indexes...")
		if err := database.CreateSnapshotIndexes(db); err != nil {
			log.WithError(err).Warn("Failed to create snapshot indexes")
		}
		return repository.NewMongoSnapshotRepository(db, database.IsReplicaSet(ctx, client)), nil

	case config.StorageBolt:
		repo, err := repository.NewBoltSnapshotRepository(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.BoltPath).Info("Using bolt storage")
		return repo, nil

	default:
		log.Warn("Using in-memory storage, records are lost on exit")
		return repository.NewMemorySnapshotRepository(), nil
	}
}
