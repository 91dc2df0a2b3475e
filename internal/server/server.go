// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"mangaintel/internal/config"
	"mangaintel/internal/domain/news"
	"mangaintel/internal/server/handlers"
	"mangaintel/internal/service/aggregator"
	"mangaintel/internal/service/sentiment"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	store news.Store,
	analyzer *sentiment.Analyzer,
	ag *aggregator.Aggregator,
	natsConn *nats.Conn,
	eventsTopic string,
	logger *slog.Logger,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	articleHandler := handlers.NewArticleHandler(store)
	companyHandler := handlers.NewCompanyHandler(store)
	alertHandler := handlers.NewAlertHandler(store)
	trendHandler := handlers.NewTrendHandler(store)
	sourceHandler := handlers.NewSourceHandler(store)
	analyticsHandler := handlers.NewAnalyticsHandler(store, analyzer)
	refreshHandler := handlers.NewRefreshHandler(ag)
	exportHandler := handlers.NewExportHandler(store)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// Articles API
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articleHandler.ListArticles)
			r.Post("/", articleHandler.CreateArticle)
			r.Get("/{id}", articleHandler.GetArticle)
		})

		// Companies API
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", companyHandler.ListCompanies)
			r.Post("/", companyHandler.CreateCompany)
		})

		// Alerts API
		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", alertHandler.ListAlerts)
			r.Patch("/{id}/read", alertHandler.MarkRead)
		})

		// Trends API
		r.Get("/trends", trendHandler.ListTrends)

		// News sources API
		r.Route("/news-sources", func(r chi.Router) {
			r.Get("/", sourceHandler.ListSources)
			r.Post("/", sourceHandler.CreateSource)
		})

		// Analytics and pipeline controls
		r.Get("/analytics/stats", analyticsHandler.Stats)
		r.Post("/refresh", refreshHandler.Refresh)
		r.Get("/export", exportHandler.Export)
	})

	// WebSocket endpoint for real-time pipeline events
	router.Get("/ws/events", handlers.EventsWebSocketHandler(natsConn, eventsTopic, logger))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
