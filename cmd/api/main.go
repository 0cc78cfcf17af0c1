package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/georgemunganga/autoservice-backend/internal/config"
	"github.com/georgemunganga/autoservice-backend/internal/logging"
	"github.com/georgemunganga/autoservice-backend/internal/modules/auth"
	"github.com/georgemunganga/autoservice-backend/internal/modules/company"
	"github.com/georgemunganga/autoservice-backend/internal/modules/costing"
	"github.com/georgemunganga/autoservice-backend/internal/modules/customer"
	"github.com/georgemunganga/autoservice-backend/internal/modules/inventory"
	"github.com/georgemunganga/autoservice-backend/internal/modules/report"
	"github.com/georgemunganga/autoservice-backend/internal/modules/scheduling"
	"github.com/georgemunganga/autoservice-backend/internal/modules/servicerecord"
	"github.com/georgemunganga/autoservice-backend/internal/modules/technician"
	"github.com/georgemunganga/autoservice-backend/internal/modules/user"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
	appmw "github.com/georgemunganga/autoservice-backend/internal/platform/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database.URL)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	defer db.Close()
	logger.Info("Successfully connected to the database")

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, db, "up"); err != nil {
			logger.WithError(err).Fatal("migrate database")
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appmw.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// ── Identity & Business ─────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)
	authService := auth.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	companyService := company.NewService(company.NewPostgresRepository(db))
	customerService := customer.NewService(customer.NewPostgresRepository(db))
	technicianService := technician.NewService(technician.NewPostgresRepository(db))

	// ── Inventory & Costing ─────────────────────────────────
	inventoryService := inventory.NewService(inventory.NewPostgresRepository(db))
	costingService := costing.NewService(inventoryService, technicianService)

	// ── Service Records & Scheduling ────────────────────────
	defaultDuration := cfg.Scheduling.DefaultDuration
	recordService := servicerecord.NewService(servicerecord.NewPostgresRepository(db),
		inventoryService, technicianService, defaultDuration)
	schedulingService := scheduling.NewService(scheduling.NewPostgresRepository(db), defaultDuration)

	// ── Reports ─────────────────────────────────────────────
	reportService := report.NewService(report.NewPostgresRepository(db), inventoryService)

	router.Route("/api/v1", func(r chi.Router) {
		auth.NewHandler(authService).RegisterRoutes(r)
		userHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(appmw.RequireAuth(authService))
			r.Use(appmw.ScopeCompany(userService))
			userHandler.RegisterRoutes(r)
			company.NewHandler(companyService).RegisterRoutes(r)
			customer.NewHandler(customerService).RegisterRoutes(r)
			technician.NewHandler(technicianService).RegisterRoutes(r)
			inventory.NewHandler(inventoryService).RegisterRoutes(r)
			costing.NewHandler(costingService).RegisterRoutes(r)
			servicerecord.NewHandler(recordService).RegisterRoutes(r)
			scheduling.NewHandler(schedulingService).RegisterRoutes(r)
			report.NewHandler(reportService).RegisterRoutes(r)
		})
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.WithField("port", cfg.App.Port).Info("AutoService API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown")
	}
}
