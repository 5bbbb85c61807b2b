// Command purge deletes accounts that were never activated. It is meant to be
// run periodically by an external scheduler (cron, Kubernetes CronJob).
package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise/pennywise-backend/internal/config"
	"github.com/pennywise/pennywise-backend/internal/repository/postgres"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.LoadPurge()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	purgeService := service.NewPurgeService(postgres.NewUserRepository(pool))
	deleted, err := purgeService.PurgeUnactivatedUsers(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Purge failed")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int64("deleted", deleted).Msg("Purge finished")
}
