// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"mangaintel/internal/adapter/events"
	"mangaintel/internal/adapter/storage"
	"mangaintel/internal/config"
	"mangaintel/internal/domain/news"
	"mangaintel/internal/logging"
	"mangaintel/internal/scheduler"
	"mangaintel/internal/server"
	"mangaintel/internal/service/aggregator"
	"mangaintel/internal/service/alerting"
	"mangaintel/internal/service/sentiment"
	"mangaintel/internal/service/trends"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.Logging.Level)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize storage
	store := storage.NewMemoryStore()
	if cfg.SeedDemo {
		if err := storage.Seed(ctx, store); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		logger.Info("seeded demo data")
	}

	// Event bus is optional; the pipeline runs without it
	var natsConn *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err := initNATS(cfg.NATS, logger)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		natsConn = nc
		defer natsConn.Close()
	}
	publisher := events.NewPublisher(natsConn, cfg.NATS.EventsTopic, logger)

	// Fetch strategies; transports are stubbed until deployment wiring
	registry := aggregator.NewRegistry()
	registry.Register(news.SourceRSS, aggregator.NewStubFetcher("rss", logger))
	registry.Register(news.SourceScrape, aggregator.NewStubFetcher("scrape", logger))
	registry.Register(news.SourceAPI, aggregator.NewStubFetcher("api", logger))

	// Initialize pipeline services
	newsAggregator := aggregator.New(store, registry, publisher, logger)
	analyzer := sentiment.NewAnalyzer(store, logger)
	trendAggregator := trends.New(store, publisher, logger)
	alertEngine := alerting.New(store, publisher, logger)

	// Background schedule mirrors the pipeline order: fetch, score,
	// aggregate, alert.
	sched := scheduler.New([]scheduler.Job{
		{Name: "fetch-news", Interval: cfg.Scheduler.FetchInterval, Run: newsAggregator.FetchAll},
		{Name: "analyze-sentiment", Interval: cfg.Scheduler.SentimentInterval, Run: analyzer.AnalyzeAll},
		{Name: "update-trends", Interval: cfg.Scheduler.TrendsInterval, Run: trendAggregator.UpdateTrends},
		{Name: "check-alerts", Interval: cfg.Scheduler.AlertsInterval, Run: alertEngine.CheckForAlerts},
	}, logger)
	sched.Start(ctx)

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		store,
		analyzer,
		newsAggregator,
		natsConn,
		cfg.NATS.EventsTopic,
		logger,
	)

	// Start HTTP server
	go func() {
		logger.Info("starting HTTP server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	sched.Stop()

	logger.Info("shutdown complete")
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, logger *slog.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
