package main

import (
	"certificates-backend/internal/shared/utils"

	"github.com/rs/zerolog/log"
)

// Config holds all configuration for the worker
type Config struct {
	Environment string
	RedisAddr   string
	HealthPort  string
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	cfg := &Config{
		Environment: utils.GetEnvVariable("APP_ENV", "development"),
		RedisAddr:   utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		HealthPort:  utils.GetEnvVariable("WORKER_HEALTH_PORT", "9999"),
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Str("environment", cfg.Environment).
		Msg("worker configuration loaded")

	return cfg
}
