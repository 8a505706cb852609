package service

import (
	"context"

	"certificates-backend/internal/domains/event"

	"github.com/google/uuid"
)

type Service interface {
	CreateEvent(ctx context.Context, req event.CreateEventRequest, createdBy *uuid.UUID) (*event.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*event.Event, error)
	ListEvents(ctx context.Context) ([]event.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req event.UpdateEventRequest) (*event.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type eventService struct {
	repo event.Repository
}

func NewService(repo event.Repository) Service {
	return &eventService{repo: repo}
}

func (s *eventService) CreateEvent(ctx context.Context, req event.CreateEventRequest, createdBy *uuid.UUID) (*event.Event, error) {
	return s.repo.Create(ctx, req, createdBy)
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context) ([]event.Event, error) {
	return s.repo.List(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, req event.UpdateEventRequest) (*event.Event, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
