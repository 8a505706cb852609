package queue

import (
	"encoding/json"
	"time"

	"certificates-backend/internal/config"
	"certificates-backend/internal/domains/certificate/job"
	"certificates-backend/internal/shared"
	"certificates-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupBackgroundsJob()
}

// Orphaned backgrounds only accumulate through operator edits, so a nightly
// pass at a quiet hour is plenty.
func (s *Scheduler) registerCleanupBackgroundsJob() error {
	payload, err := json.Marshal(job.CleanupBackgroundsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupBackgrounds, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.CleanupCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register CleanupBackgrounds job", err)
		return err
	}

	logger.Info("Registered CleanupBackgrounds job", map[string]interface{}{
		"cron": s.jobConfig.CleanupCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
