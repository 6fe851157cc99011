package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/tradingapp/internal/config"
	"github.com/example/tradingapp/internal/handler"
	"github.com/example/tradingapp/internal/hub"
	"github.com/example/tradingapp/internal/service"
	"github.com/example/tradingapp/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage gateway: document store when configured, in-memory otherwise.
	var tradeStore store.TradeStore
	var mongoStore *store.MongoTradeStore
	if cfg.MongoURI != "" {
		mongoStore, err = store.NewMongoTradeStore(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
		if err != nil {
			logger.Error("failed to connect to document store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		tradeStore = mongoStore
		logger.Info("using document store")
	} else {
		tradeStore = store.NewMemoryTradeStore()
		logger.Warn("MONGO_URI not set, using in-memory store; trades will not survive restarts")
	}

	// Broadcast channel.
	tradingHub := hub.New(logger)
	go tradingHub.Run(ctx)

	// Service and router.
	tradeSvc := service.NewTradeService(tradeStore, tradingHub)
	router := handler.NewRouter(tradeSvc, tradingHub.ServeWS, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops the hub),
	// then disconnect the document store.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	if mongoStore != nil {
		if err := mongoStore.Close(shutdownCtx); err != nil {
			logger.Error("document store disconnect error", slog.String("error", err.Error()))
		}
	}

	logger.Info("server stopped")
}
