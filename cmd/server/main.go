package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caixalivre/backend/internal/config"
	"caixalivre/backend/internal/httpapi"
	"caixalivre/backend/internal/obs"
	"caixalivre/backend/internal/report"
	"caixalivre/backend/internal/service"
	"caixalivre/backend/internal/store"
	"caixalivre/backend/internal/store/postgres"
	"caixalivre/backend/internal/store/redisstore"
	"caixalivre/backend/internal/store/sqlite"
)

func main() {
	cfg := config.Load()
	log := obs.NewLogger(cfg.LogFormat, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo store.DocumentStore
	closers := make([]func() error, 0, 1)

	switch {
	case cfg.DatabaseURL != "":
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres unavailable and DATABASE_URL is set, refusing to start")
		}
		repo = pg
		closers = append(closers, pg.Close)
		log.Info().Msg("store: postgres")
	case cfg.RedisAddr != "":
		rd := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rd.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("redis unavailable and REDIS_ADDR is set, refusing to start")
		}
		repo = rd
		closers = append(closers, rd.Close)
		log.Info().Msg("store: redis")
	default:
		sq, err := sqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("sqlite open failed")
		}
		repo = sq
		closers = append(closers, sq.Close)
		log.Info().Str("path", cfg.SQLitePath).Msg("store: sqlite")
	}

	svc, err := service.New(ctx, repo, service.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("service init failed")
	}

	sink := report.NewFileSink(cfg.ReportDir)
	api := httpapi.New(svc, sink, cfg.AllowedOrigin, log)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Address()).Msg("shop backend listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Error().Err(err).Msg("close error")
		}
	}

	log.Info().Msg("server stopped")
}
