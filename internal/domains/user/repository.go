package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the operator account store.
type Repository interface {
	// Create persists a new account; ErrEmailAlreadyExists on a duplicate
	// email.
	Create(ctx context.Context, u *User) error

	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
