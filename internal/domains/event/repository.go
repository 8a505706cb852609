package event

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, req CreateEventRequest, createdBy *uuid.UUID) (*Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
