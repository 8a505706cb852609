package main

import (
	"github.com/hibiken/asynq"

	certJob "certificates-backend/internal/domains/certificate/job"
	"certificates-backend/internal/shared"
	"certificates-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	cleanupBackgrounds *certJob.CleanupBackgroundsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		cleanupBackgrounds: certJob.NewCleanupBackgroundsHandler(c.CleanupService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeCleanupBackgrounds, h.cleanupBackgrounds.ProcessTask)
}
