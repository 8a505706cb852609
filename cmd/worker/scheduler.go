package main

import (
	"certificates-backend/internal/config"
	"certificates-backend/internal/infrastructure/queue"

	"github.com/rs/zerolog/log"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates and configures the scheduler
func setupScheduler(cfg *Config, jobConfig config.JobConfig) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisAddr, jobConfig)

	if err := scheduler.RegisterCleanupJobs(); err != nil {
		log.Fatal().Err(err).Msg("failed to register scheduled jobs")
	}

	go func() {
		log.Info().Msg("scheduler starting")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("scheduler shutting down")
	s.Scheduler.Shutdown()
}
