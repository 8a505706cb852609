package shared

// Asynq task types.
const (
	TypeCleanupBackgrounds = "certificate:cleanup_backgrounds"
)

// Queue names, by worker priority.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)
