package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/config"
	"github.com/cotizaplus/cotiza-api/internal/database"
	"github.com/cotizaplus/cotiza-api/internal/http/handler"
	"github.com/cotizaplus/cotiza-api/internal/http/middleware"
	"github.com/cotizaplus/cotiza-api/internal/storage"
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	store            storage.Storage
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	companyHandler   *handler.CompanyHandler
	customerHandler  *handler.CustomerHandler
	catalogHandler   *handler.CatalogHandler
	quotationHandler *handler.QuotationHandler
	fileHandler      *handler.FileHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	store storage.Storage,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	companyHandler *handler.CompanyHandler,
	customerHandler *handler.CustomerHandler,
	catalogHandler *handler.CatalogHandler,
	quotationHandler *handler.QuotationHandler,
	fileHandler *handler.FileHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		store:            store,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		companyHandler:   companyHandler,
		customerHandler:  customerHandler,
		catalogHandler:   catalogHandler,
		quotationHandler: quotationHandler,
		fileHandler:      fileHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		status := "healthy"
		code := http.StatusOK
		if !allHealthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// In local storage mode uploaded images are served by the API itself
	if local, ok := rt.store.(*storage.LocalStorage); ok {
		fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(local.BasePath())))
		r.Get("/files/*", fileServer.ServeHTTP)
	}

	// API v1 routes, all behind authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Company profile (one per user)
			r.Route("/company", func(r chi.Router) {
				r.Get("/", rt.companyHandler.Get)
				r.Put("/", rt.companyHandler.Save)
			})

			// Customers
			r.Route("/customers", func(r chi.Router) {
				r.Get("/", rt.customerHandler.List)
				r.Post("/", rt.customerHandler.Create)
				r.Get("/{id}", rt.customerHandler.GetByID)
				r.Put("/{id}", rt.customerHandler.Update)
				r.Delete("/{id}", rt.customerHandler.Delete)
			})

			// Product catalog
			r.Route("/products", func(r chi.Router) {
				r.Get("/", rt.catalogHandler.List)
				r.Post("/", rt.catalogHandler.Create)
				r.Post("/import", rt.catalogHandler.Import)
				r.Get("/import/template", rt.catalogHandler.Template)
				r.Get("/{id}", rt.catalogHandler.GetByID)
				r.Put("/{id}", rt.catalogHandler.Update)
				r.Delete("/{id}", rt.catalogHandler.Delete)
			})

			// Quotations
			r.Route("/quotations", func(r chi.Router) {
				r.Get("/", rt.quotationHandler.List)
				r.Post("/", rt.quotationHandler.Create)
				r.Get("/{id}", rt.quotationHandler.GetByID)
				r.Put("/{id}", rt.quotationHandler.Update)
				r.Delete("/{id}", rt.quotationHandler.Delete)
				r.Patch("/{id}/status", rt.quotationHandler.UpdateStatus)
				r.Get("/{id}/pdf", rt.quotationHandler.ExportPDF)
			})

			// File uploads
			r.Post("/files/upload", rt.fileHandler.Upload)
		})
	})

	return r
}
