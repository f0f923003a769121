package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	deliveryHTTP "github.com/frontandrew/parkingcontrol/internal/delivery/http"
	"github.com/frontandrew/parkingcontrol/internal/pkg/config"
	"github.com/frontandrew/parkingcontrol/internal/pkg/database"
	"github.com/frontandrew/parkingcontrol/internal/pkg/logger"
	"github.com/frontandrew/parkingcontrol/internal/pkg/redis"
	"github.com/frontandrew/parkingcontrol/internal/pkg/validator"
	"github.com/frontandrew/parkingcontrol/internal/repository"
	"github.com/frontandrew/parkingcontrol/internal/repository/cached"
	"github.com/frontandrew/parkingcontrol/internal/repository/postgres"
	"github.com/frontandrew/parkingcontrol/internal/usecase/parkingspot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting Parking Control API server", map[string]interface{}{
		"address": cfg.Server.Address(),
	})

	// =========================================================================
	// PostgreSQL и миграции
	// =========================================================================

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		version, err := database.Migrate(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to apply migrations", map[string]interface{}{
				"error": err.Error(),
			})
		}
		log.Info("Migrations applied", map[string]interface{}{
			"version": version,
		})
	}

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	// =========================================================================
	// Repository (опционально с кэшем в Redis)
	// =========================================================================

	var parkingSpotRepo repository.ParkingSpotRepository = postgres.NewParkingSpotRepository(db)

	if cfg.Redis.Enabled {
		cache, err := redis.NewClient(ctx, redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// Без кэша сервис работает, просто медленнее
			log.Warn("Redis is not available, cache disabled", map[string]interface{}{
				"error":   err.Error(),
				"address": cfg.Redis.Address(),
			})
		} else {
			defer cache.Close()
			parkingSpotRepo = cached.NewParkingSpotRepository(parkingSpotRepo, cache, cfg.Redis.CacheTTL, log)
			log.Info("Redis cache enabled", map[string]interface{}{
				"address": cfg.Redis.Address(),
				"ttl":     cfg.Redis.CacheTTL.String(),
			})
		}
	}

	// =========================================================================
	// Service, handlers, router
	// =========================================================================

	parkingSpotService := parkingspot.NewService(parkingSpotRepo, log)

	parkingSpotHandler := deliveryHTTP.NewParkingSpotHandler(parkingSpotService, validator.New(), log)
	healthHandler := deliveryHTTP.NewHealthHandler(database.NewHealthChecker(db), log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := deliveryHTTP.NewRouter(parkingSpotHandler, healthHandler, registry, cfg, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск и graceful shutdown
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})
			_ = srv.Close()
		}

		log.Info("Server stopped gracefully")
	}
}
