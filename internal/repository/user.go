package repository

import (
	"context"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the
	// (normalized) email is already registered.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListAll returns every user; used by the digest job only.
	ListAll(ctx context.Context) ([]*domain.User, error)
}
