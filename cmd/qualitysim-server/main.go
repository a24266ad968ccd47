package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/qualitysim/pkg/application/services/simulation"
	"github.com/vsinha/qualitysim/pkg/infrastructure/config"
	"github.com/vsinha/qualitysim/pkg/infrastructure/events"
	"github.com/vsinha/qualitysim/pkg/infrastructure/logging"
	"github.com/vsinha/qualitysim/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/qualitysim/pkg/interfaces/http/handlers"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize services
	eventStore := events.NewInMemoryEventStore(logger)
	if err := eventStore.Subscribe(events.AllSimulationEventTypes(), events.NewLogHandler(logger)); err != nil {
		logger.Fatal().Err(err).Msg("failed to subscribe event logger")
	}
	service := simulation.NewService(memory.NewRunRepository(), eventStore, logger, cfg.Currency)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(service, cfg.Seed, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	eventStore.Wait()
	logger.Info().Msg("server stopped")
}
