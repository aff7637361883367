package main

import (
	"context"
	"os"
	"time"

	"eventbooking/internal/config"
	"eventbooking/internal/database"
	"eventbooking/internal/pkg/logging"
	"eventbooking/internal/seed"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log, closer, err := logging.New(cfg.Log, cfg.App.Env)
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("failed to set up logging")
	}
	if closer != nil {
		defer closer.Close()
	}

	db, err := database.Connect(cfg.Database.DSN, database.Options{}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("running migrations")
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	admin := seed.Admin{
		Name:     os.Getenv("ADMIN_NAME"),
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if err := seed.Run(ctx, db, admin, cfg.Auth.BcryptCost, log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("seeding complete")
}
