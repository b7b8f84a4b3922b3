package usecase_test

import (
	"context"
	"errors"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

var errConnRefused = errors.New("dial tcp: connection refused")

// downTaskRepo fails every call the way a lost database connection would.
type downTaskRepo struct{}

func (downTaskRepo) Create(context.Context, *domain.Task) (*domain.Task, error) {
	return nil, errConnRefused
}

func (downTaskRepo) List(context.Context, string) ([]*domain.Task, error) {
	return nil, errConnRefused
}

func (downTaskRepo) Get(context.Context, string, string) (*domain.Task, error) {
	return nil, errConnRefused
}

func (downTaskRepo) Update(context.Context, string, string, domain.TaskPatch) (*domain.Task, error) {
	return nil, errConnRefused
}

func (downTaskRepo) Delete(context.Context, string, string) error {
	return errConnRefused
}

// staticTaskRepo lists a fixed set of tasks for any owner.
type staticTaskRepo struct {
	downTaskRepo
	tasks []*domain.Task
}

func (r staticTaskRepo) List(context.Context, string) ([]*domain.Task, error) {
	return r.tasks, nil
}
