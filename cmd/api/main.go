package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/config"
	"github.com/cotizaplus/cotiza-api/internal/database"
	"github.com/cotizaplus/cotiza-api/internal/http/handler"
	"github.com/cotizaplus/cotiza-api/internal/http/middleware"
	"github.com/cotizaplus/cotiza-api/internal/http/router"
	"github.com/cotizaplus/cotiza-api/internal/jobs"
	"github.com/cotizaplus/cotiza-api/internal/logger"
	"github.com/cotizaplus/cotiza-api/internal/repository"
	"github.com/cotizaplus/cotiza-api/internal/service"
	"github.com/cotizaplus/cotiza-api/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, cfg.App.PublicBaseURL, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)

	// Services
	numberSequenceService := service.NewNumberSequenceService(numberSequenceRepo, cfg.Quotation.NumberPrefix, log)
	companyService := service.NewCompanyService(companyRepo, log)
	customerService := service.NewCustomerService(customerRepo, log)
	catalogService := service.NewCatalogService(productRepo, log)
	importService := service.NewImportService(productRepo, log)
	quotationService := service.NewQuotationService(quotationRepo, companyRepo, customerRepo, numberSequenceService, cfg.Quotation.ValidityDays, log)
	fileService := service.NewFileService(fileStorage, cfg.Storage.MaxUploadSizeMB, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	companyHandler := handler.NewCompanyHandler(companyService, log)
	customerHandler := handler.NewCustomerHandler(customerService, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, importService, cfg.Storage.MaxUploadSizeMB, log)
	quotationHandler := handler.NewQuotationHandler(quotationService, log)
	fileHandler := handler.NewFileHandler(fileService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		fileStorage,
		authMiddleware,
		rateLimiter,
		companyHandler,
		customerHandler,
		catalogHandler,
		quotationHandler,
		fileHandler,
	)

	// Background expiry sweep for sent quotations past their validity window
	var scheduler *jobs.Scheduler
	if cfg.Quotation.ExpiryEnabled {
		scheduler = jobs.NewScheduler(log)
		expiryJob := jobs.NewExpiryJob(quotationRepo, cfg.Quotation.ValidityDays, log)

		if err := scheduler.AddJob(jobs.ExpiryJobName, cfg.Quotation.ExpiryCron, expiryJob.Run); err != nil {
			log.Error("Failed to register expiry job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with quotation expiry job",
				zap.String("cron_expr", cfg.Quotation.ExpiryCron),
				zap.Int("validity_days", cfg.Quotation.ValidityDays),
			)
		}
	} else {
		log.Info("Quotation expiry sweep disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
