package repository

import (
	"context"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

// TaskRepository methods all take the resolved owner ID. Ownership check
// and mutation happen in one statement, so a task that exists but belongs
// to someone else is indistinguishable from a missing one: both return
// domain.ErrTaskNotFound.
//
// Storage failures are returned wrapping domain.ErrUnavailable.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// List returns tasks ordered by created_at, id.
	List(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}
