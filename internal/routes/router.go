package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargo-tracker/internal/cargotype"
	"cargo-tracker/internal/config"
	"cargo-tracker/internal/database"
	"cargo-tracker/internal/delivery/http/handler"
	"cargo-tracker/internal/fleet"
	"cargo-tracker/internal/ingestion"
	"cargo-tracker/internal/logger"
	"cargo-tracker/internal/middleware"
	"cargo-tracker/internal/store"
)

// SetupRoutes builds the dashboard router. db and processor may be nil; the
// fleet and cargo type management screens and the ingestion health counters
// are then left out.
func SetupRoutes(cfg *config.Config, db *database.DB, st *store.Store, tracker *store.Tracker, processor *ingestion.Processor) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if db != nil {
			if err := db.Health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": "Database connection failed",
				})
				return
			}
		}
		body := gin.H{
			"status":  "healthy",
			"message": "Service is running",
		}
		if processor != nil {
			m := processor.Metrics().Snapshot()
			body["ingestion"] = gin.H{
				"reportsReceived":  m.ReportsReceived,
				"reportsForwarded": m.ReportsForwarded,
				"reportsDropped":   m.ReportsDropped,
				"reportsFailed":    m.ReportsFailed,
				"lastForwardedAt":  m.LastForwardedAt,
			}
		}
		c.JSON(http.StatusOK, body)
	})

	v1 := router.Group("/api/v1")
	{
		shipmentHandler := handler.NewShipmentHandler(st, tracker)
		shipmentHandler.RegisterRoutes(v1)

		if db != nil {
			protected := v1.Group("")
			protected.Use(middleware.AuthMiddleware(&cfg.Auth))

			fleetService := fleet.NewService(fleet.NewRepository(db))
			handler.NewFleetHandler(fleetService).RegisterRoutes(v1, protected)

			cargoTypeService := cargotype.NewService(cargotype.NewRepository(db))
			handler.NewCargoTypeHandler(cargoTypeService).RegisterRoutes(v1, protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
