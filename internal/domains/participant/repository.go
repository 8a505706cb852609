package participant

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Participant, error)
	GetByUsername(ctx context.Context, username string) (*Participant, error)

	// SetFullName stamps the name on a participant that does not have one
	// yet. It never overwrites an already-set full name.
	SetFullName(ctx context.Context, id uuid.UUID, fullName string, modifiedBy *uuid.UUID) error

	IncrementCertificates(ctx context.Context, id uuid.UUID) error
}
