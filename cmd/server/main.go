package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/hotel-backoffice/internal/config"
	"github.com/segyhp/hotel-backoffice/internal/handler"
	"github.com/segyhp/hotel-backoffice/internal/repository"
	"github.com/segyhp/hotel-backoffice/internal/service"
	"github.com/segyhp/hotel-backoffice/pkg/logger"
	"github.com/segyhp/hotel-backoffice/pkg/metrics"
	"github.com/segyhp/hotel-backoffice/pkg/response"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("hotel_backoffice", registry)

	// Initialize repositories
	folioRepo := repository.NewFolioRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	// Initialize services
	billingService := service.NewBillingService(folioRepo, paymentRepo, redisClient, cfg, log, m)
	scheduleService := service.NewScheduleService(scheduleRepo, cfg, log, m)

	billingHandler := handler.NewBillingHandler(billingService, log)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, log)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(cfg, log, m, registry, billingHandler, scheduleHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}), nil
}

func setupRoutes(
	cfg *config.Config,
	log logrus.FieldLogger,
	m *metrics.Metrics,
	registry *prometheus.Registry,
	billingHandler *handler.BillingHandler,
	scheduleHandler *handler.ScheduleHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(log, m))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")
	}

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(response.JSONMiddleware)

	api.HandleFunc("/folios/{folioId}/bill", billingHandler.GetBill).Methods("GET")
	api.HandleFunc("/folios/{folioId}/bill/preview", billingHandler.PreviewBill).Methods("POST")
	api.HandleFunc("/folios/{folioId}/checkout", billingHandler.Checkout).Methods("POST")

	api.HandleFunc("/backup-schedules/preview", scheduleHandler.Preview).Methods("POST")
	api.HandleFunc("/backup-schedules", scheduleHandler.Create).Methods("POST")
	api.HandleFunc("/backup-schedules", scheduleHandler.List).Methods("GET")
	api.HandleFunc("/backup-schedules/{id}", scheduleHandler.Get).Methods("GET")
	api.HandleFunc("/backup-schedules/{id}", scheduleHandler.Update).Methods("PUT")
	api.HandleFunc("/backup-schedules/{id}", scheduleHandler.Delete).Methods("DELETE")

	return router
}
