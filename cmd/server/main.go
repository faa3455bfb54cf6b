package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/config"
	"github.com/Alias1177/Advisor/internal/api/marketdata"
	"github.com/Alias1177/Advisor/internal/database"
	"github.com/Alias1177/Advisor/internal/engine"
	"github.com/Alias1177/Advisor/internal/features"
	"github.com/Alias1177/Advisor/internal/scanner"
	"github.com/Alias1177/Advisor/internal/server"
	"github.com/Alias1177/Advisor/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config failed")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	client := marketdata.NewClient(cfg)
	eng := engine.New(features.NewNormalSampler(uint64(time.Now().UnixNano())))

	// Persistence is optional: without DB settings the API still serves
	// live analyses, only the recent-recommendations endpoint is off.
	var db *database.DB
	if cfg.DBHost != "" {
		db, err = database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		defer db.Close()
	}

	var store scanner.Store
	var recStore server.Store
	if db != nil {
		store = db
		recStore = db
	}

	scan := scanner.New(client, eng, store, cfg.ScanWorkers)

	if cfg.ScanSchedule != "" {
		c, err := scan.Schedule(cfg.ScanSchedule, cfg.ScanTickers, cfg.AccountSize,
			models.RiskLevel(cfg.RiskProfile), nil)
		if err != nil {
			log.Fatal().Err(err).Str("spec", cfg.ScanSchedule).Msg("invalid scan schedule")
		}
		defer c.Stop()
		log.Info().Str("spec", cfg.ScanSchedule).Msg("periodic scan scheduled")
	}

	srv := server.New(server.Config{
		Provider:           client,
		Engine:             eng,
		Scanner:            scan,
		Store:              recStore,
		Port:               cfg.HTTPPort,
		DefaultAccountSize: cfg.AccountSize,
		DefaultRiskProfile: models.RiskLevel(cfg.RiskProfile),
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
