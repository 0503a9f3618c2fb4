package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/catalog"
	"farmadvisor/internal/config"
	"farmadvisor/internal/dashboard"
	"farmadvisor/internal/logging"
	"farmadvisor/internal/sample"
	"farmadvisor/internal/server"
)

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal().Err(err).Str("path", config.Path()).Msg("failed to load config")
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)

	crops, err := catalog.Resolve(cfg.Crops)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid crop catalog")
	}
	log.Info().Int("crops", len(crops)).Msg("crop catalog loaded")

	advisor := advisory.NewAdvisor(cfg.AdvisorOptions())
	builder := dashboard.NewBuilder(advisor, crops)
	thresholds := cfg.Thresholds

	srv := server.NewServer(advisor, builder, func(now time.Time) dashboard.Snapshot {
		return sample.Snapshot(thresholds, now)
	})

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("HTTP server listening")
		if err := srv.Start(cfg.Server.Addr); err != nil {
			log.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("server stopped")
}
