package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cargo-tracker/internal/cargotype"
	"cargo-tracker/internal/config"
	"cargo-tracker/internal/database"
	"cargo-tracker/internal/fleet"
	"cargo-tracker/internal/gateway"
	"cargo-tracker/internal/ingestion"
	"cargo-tracker/internal/logger"
	"cargo-tracker/internal/routes"
	"cargo-tracker/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting cargo tracker dashboard",
		zap.String("environment", cfg.Server.Environment),
		zap.String("shipment_api", cfg.API.BaseURL),
	)

	var db *database.DB
	if cfg.Database.Enabled() {
		db, err = database.NewDB(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := fleet.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate fleet tables", zap.Error(err))
		}
		if err := cargotype.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate cargo type tables", zap.Error(err))
		}

		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := fleet.NewService(fleet.NewRepository(db)).Seed(seedCtx); err != nil {
			logger.Warn("Failed to seed fleet vehicles", zap.Error(err))
		}
		if err := cargotype.NewService(cargotype.NewRepository(db)).Seed(seedCtx); err != nil {
			logger.Warn("Failed to seed cargo types", zap.Error(err))
		}
		cancel()
	} else {
		logger.Info("Database not configured, fleet and cargo type management disabled")
	}

	gw := gateway.New(cfg.API.BaseURL, cfg.API.Timeout())
	st := store.New(gw)
	tracker := store.NewTracker(st, cfg.Tracking.PollInterval())

	var processor *ingestion.Processor
	var mqttClient *ingestion.MQTTIngestionClient
	if cfg.MQTT.Enabled() {
		processor = ingestion.NewProcessor(st, 2, 128)
		processor.Start()

		mqttClient, err = ingestion.NewMQTTIngestionClient(&cfg.MQTT, processor)
		if err != nil {
			logger.Fatal("Failed to create MQTT ingestion client", zap.Error(err))
		}
		if err := mqttClient.Start(); err != nil {
			logger.Fatal("Failed to start MQTT ingestion client", zap.Error(err))
		}
	} else {
		logger.Info("MQTT not configured, location telemetry ingestion disabled")
	}

	router := routes.SetupRoutes(cfg, db, st, tracker, processor)

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	tracker.Stop()
	if mqttClient != nil {
		mqttClient.Stop()
	}
	if processor != nil {
		processor.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
