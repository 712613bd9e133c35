// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"business-cards/internal/adaptor"
	"business-cards/internal/data/repository"
	"business-cards/internal/usecase"
	"business-cards/pkg/middleware"
	"business-cards/pkg/token"
	"business-cards/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// App holds the wired router and its metrics registry
type App struct {
	Router   *chi.Mux
	Registry *prometheus.Registry
}

// Wiring builds services, handlers and routes over repo
func Wiring(repo *repository.Repository, tokens *token.Manager, config *utils.Config, logger *zap.Logger) *App {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	service := usecase.NewService(repo, tokens, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, tokens, config, logger, registry)

	return &App{
		Router:   router,
		Registry: registry,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *token.Manager,
	config *utils.Config,
	logger *zap.Logger,
	registry *prometheus.Registry,
) *chi.Mux {
	r := chi.NewRouter()
	metrics := middleware.NewMetrics(registry)

	// Apply global middleware
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Tracing())
	r.Use(metrics.Middleware)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	authToken := middleware.AuthToken(tokens, logger)

	// Apply routes
	wireUser(r, handler.User, handler.Auth, authToken)
	wireCard(r, handler.Card, authToken, middleware.RequireBusiness(repo.User, logger))

	r.Get("/health", healthHandler(repo, logger))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}

// healthHandler answers OK only while the store answers a ping
func healthHandler(pinger repository.Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("store unavailable"))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
