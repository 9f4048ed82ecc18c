package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

const envFile = "configs/.env"

func main() {
	// Config is not loaded yet; bootstrap with env-derived defaults.
	boot := logging.New("trivia-api", os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if os.Getenv("APP_ENV") != "production" {
		loadEnvFile(boot, envFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	boot.Info().
		Str("http_addr", cfg.HTTPAddr).
		Int("questions_per_page", cfg.Trivia.QuestionsPerPage).
		Dur("category_cache_ttl", cfg.Trivia.CategoryCacheTTL).
		Bool("empty_search_matches_all", cfg.Trivia.EmptySearchMatchesAll).
		Msg("config loaded")

	appCtx := context.Background()
	instance, err := app.New(appCtx, cfg)
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to build app")
	}

	if err := instance.Run(appCtx); err != nil {
		boot.Fatal().Err(err).Msg("runtime error")
	}
}

// loadEnvFile loads path into the process environment; existing variables win.
func loadEnvFile(logger zerolog.Logger, path string) bool {
	if err := godotenv.Load(path); err != nil {
		logger.Warn().Err(err).Str("file", path).Msg("env file not loaded, using process environment")
		return false
	}
	logger.Debug().Str("file", path).Msg("env file loaded")
	return true
}
