package main

import (
	"log"
	"os"
	"time"

	"github.com/vbonduro/pantry/internal/config"
	"github.com/vbonduro/pantry/internal/domain"
	"github.com/vbonduro/pantry/internal/logging"
	"github.com/vbonduro/pantry/internal/repl"
	"github.com/vbonduro/pantry/internal/service"
)

func main() {
	envFile := os.Getenv("PANTRY_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	policy, err := cfg.PricePolicy()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return
	}

	pantry := service.NewPantry(
		domain.NewInventory(domain.WithPricePolicy(policy)),
		domain.NewCookbook(),
		logger,
	)

	if cfg.SeedSamples {
		if err := pantry.SeedSamples(time.Now()); err != nil {
			logger.Error("failed to load sample data", "error", err)
			return
		}
	}

	logger.Info("pantry ready", "price_policy", policy.String(), "seeded", cfg.SeedSamples)
	if err := repl.New(pantry, os.Stdin, os.Stdout, cfg.DateLayout, logger).Run(); err != nil {
		logger.Error("input error", "error", err)
	}
}
