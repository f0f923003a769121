package http

import (
	"net/http"

	"github.com/frontandrew/parkingcontrol/internal/delivery/http/middleware"
	"github.com/frontandrew/parkingcontrol/internal/pkg/config"
	"github.com/frontandrew/parkingcontrol/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	parkingSpotHandler *ParkingSpotHandler
	healthHandler      *HealthHandler
	metrics            *middleware.Metrics
	gatherer           prometheus.Gatherer
	config             *config.Config
	logger             logger.Logger
}

// NewRouter создает новый HTTP router.
// Метрики регистрируются в registry, он же отдается на /metrics.
func NewRouter(
	parkingSpotHandler *ParkingSpotHandler,
	healthHandler *HealthHandler,
	registry *prometheus.Registry,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		parkingSpotHandler: parkingSpotHandler,
		healthHandler:      healthHandler,
		metrics:            middleware.NewMetrics(registry),
		gatherer:           registry,
		config:             config,
		logger:             logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(rt.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
		MaxAge:         rt.config.CORS.MaxAge,
	}))

	r.Get("/health", rt.healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))

	// Маршрута на изменение (PUT/PATCH) нет: запись можно только создать или удалить
	r.Route("/parking-spot", func(r chi.Router) {
		r.Post("/", rt.parkingSpotHandler.CreateParkingSpot)
		r.Get("/", rt.parkingSpotHandler.ListParkingSpots)
		r.Get("/{id}", rt.parkingSpotHandler.GetParkingSpotByID)
		r.Delete("/{id}", rt.parkingSpotHandler.DeleteParkingSpot)
	})

	return r
}
