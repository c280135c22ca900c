package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jmanzanog/quote-session/internal/application"
	"github.com/jmanzanog/quote-session/internal/domain"
	"github.com/jmanzanog/quote-session/internal/infrastructure/config"
	"github.com/jmanzanog/quote-session/internal/infrastructure/marketdata/yahoo"
	"github.com/jmanzanog/quote-session/internal/infrastructure/persistence/memory"
	httpHandler "github.com/jmanzanog/quote-session/internal/interfaces/http"
)

// setupLogger configures and returns a structured logger with source information
func setupLogger(level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLevel(level),
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// buildEndpoints applies configured base URL overrides to the defaults
func buildEndpoints(cfg *config.Config) yahoo.Endpoints {
	endpoints := yahoo.NewEndpoints()
	if cfg.QuoteBaseURL != "" {
		endpoints.QuoteBase = cfg.QuoteBaseURL
	}
	if cfg.HistoricalBaseURL != "" {
		endpoints.HistoricalBase = cfg.HistoricalBaseURL
	}
	if cfg.IntradayBaseURL != "" {
		endpoints.IntradayBase = cfg.IntradayBaseURL
	}
	return endpoints
}

// watchRequests turns the configured watch list into market data requests,
// numbered from 1 in list order
func watchRequests(cfg *config.Config) ([]domain.Instrument, []domain.FieldRequest, error) {
	if len(cfg.WatchSymbols) == 0 {
		return nil, nil, nil
	}

	fields := make([]domain.FieldRequest, 0, len(cfg.WatchFields))
	for _, name := range cfg.WatchFields {
		field, ok := domain.FieldByName(name)
		if !ok {
			return nil, nil, fmt.Errorf("unknown watch field %q", name)
		}
		fields = append(fields, domain.FieldRequest{Field: field, Delay: cfg.WatchInterval})
	}

	instruments := make([]domain.Instrument, 0, len(cfg.WatchSymbols))
	for _, code := range cfg.WatchSymbols {
		instruments = append(instruments, domain.ParseInstrument(code))
	}
	return instruments, fields, nil
}

func registerWatchList(ctx context.Context, cfg *config.Config, session *application.Session) error {
	instruments, fields, err := watchRequests(cfg)
	if err != nil {
		return err
	}
	for i, instrument := range instruments {
		id := domain.RequestID(i + 1)
		if err := session.RequestMarketData(ctx, id, instrument, fields); err != nil {
			return fmt.Errorf("failed to watch %s: %w", instrument.Code(), err)
		}
	}
	if len(instruments) > 0 {
		slog.Info("Watch list registered", "instruments", len(instruments), "interval", cfg.WatchInterval)
	}
	return nil
}

// buildServer creates and configures the HTTP server with all routes and handlers
func buildServer(cfg *config.Config, session httpHandler.SessionService, store httpHandler.SnapshotStore) *http.Server {
	router := gin.Default()
	handler := httpHandler.NewHandler(session, store)
	httpHandler.SetupRoutes(router, handler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server
}

// App wraps the application components for easier testing
type App struct {
	Server  *http.Server
	Session *application.Session
}

// Shutdown stops accepting requests, then cancels every scheduled fetch
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	if err := a.Session.Close(ctx); err != nil {
		return fmt.Errorf("session shutdown error: %w", err)
	}

	return nil
}

// run contains the main application logic without os.Exit calls
func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := setupLogger(cfg.LogLevel)

	store := memory.NewQuoteStore()
	session, err := application.NewSession(store,
		yahoo.NewClientWithTimeout(cfg.HTTPTimeout),
		buildEndpoints(cfg),
		application.WithPoolSize(cfg.PoolSize),
		application.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	slog.Info("Session started", "session_id", session.ID(), "pool_size", cfg.PoolSize)

	app := &App{
		Server:  buildServer(cfg, session, store),
		Session: session,
	}

	if err := registerWatchList(context.Background(), cfg, session); err != nil {
		_ = session.Close(context.Background())
		return err
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "host", cfg.ServerHost, "port", cfg.ServerPort)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		_ = session.Close(context.Background())
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		slog.Info("Received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}
