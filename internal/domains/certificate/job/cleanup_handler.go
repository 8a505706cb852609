package job

import (
	"context"
	"encoding/json"

	"certificates-backend/internal/domains/certificate/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// CleanupBackgroundsPayload is currently empty; it exists so the task can
// grow knobs (dry-run, per-event scope) without changing its type name.
type CleanupBackgroundsPayload struct{}

type CleanupBackgroundsHandler struct {
	cleanup *service.CleanupService
}

func NewCleanupBackgroundsHandler(cleanup *service.CleanupService) *CleanupBackgroundsHandler {
	return &CleanupBackgroundsHandler{cleanup: cleanup}
}

func (h *CleanupBackgroundsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload CleanupBackgroundsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("invalid cleanup payload")
		return err
	}

	deleted, err := h.cleanup.ReconcileBackgrounds(ctx)
	if err != nil {
		log.Error().Err(err).Msg("background reconciliation failed")
		return err
	}

	log.Info().Int("deleted", deleted).Msg("background reconciliation task done")
	return nil
}
