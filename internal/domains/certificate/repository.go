package certificate

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the record store for issued certificates.
type Repository interface {
	Create(ctx context.Context, cert *Certificate) (uuid.UUID, error)

	// FindByNaturalKey returns the record matching the exact dedup tuple,
	// or ErrNotFound. The lookup plus Create is deliberately not atomic;
	// see the import service for the consistency notes.
	FindByNaturalKey(ctx context.Context, key NaturalKey) (*Certificate, error)

	FindByHash(ctx context.Context, hash string) (*Certificate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Certificate, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Certificate, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error)

	// FirstBackgroundForEvent returns the background reference of the
	// event's earliest certificate, for the manual single-entry path.
	FirstBackgroundForEvent(ctx context.Context, eventID uuid.UUID) (string, error)

	// ListBackgroundRefs returns every non-empty background reference,
	// duplicates included; the asset reconciler dedups them.
	ListBackgroundRefs(ctx context.Context) ([]string, error)

	Update(ctx context.Context, id uuid.UUID, req UpdateCertificateRequest) (*Certificate, error)
	SetParticipant(ctx context.Context, id uuid.UUID, participantID uuid.UUID) error
	SetHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
