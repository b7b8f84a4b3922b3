package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/repository"
)

const maxTitleLength = 200

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	OwnerID string
	Title   string
	DueDate *domain.Date
}

func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		OwnerID: input.OwnerID,
		Title:   title,
		Status:  domain.StatusPending,
		DueDate: input.DueDate,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, wrap("create task", err)
	}
	return created, nil
}

func (u *TaskUsecase) ListTasks(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	tasks, err := u.repo.List(ctx, ownerID)
	if err != nil {
		return nil, wrap("list tasks", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := u.repo.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, wrap("get task", err)
	}
	return task, nil
}

func (u *TaskUsecase) UpdateTask(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("update task: nothing to update: %w", domain.ErrValidation)
	}
	if patch.Title != nil {
		title, err := normalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("update task: status %q: %w", *patch.Status, domain.ErrValidation)
	}

	task, err := u.repo.Update(ctx, ownerID, taskID, patch)
	if err != nil {
		return nil, wrap("update task", err)
	}
	return task, nil
}

// DeleteTask is not idempotent: a second delete returns ErrTaskNotFound.
func (u *TaskUsecase) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := u.repo.Delete(ctx, ownerID, taskID); err != nil {
		return wrap("delete task", err)
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLength {
		return "", fmt.Errorf("title must be 1-%d characters: %w", maxTitleLength, domain.ErrValidation)
	}
	return title, nil
}
