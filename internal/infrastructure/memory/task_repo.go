package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/google/uuid"
)

type taskEntry struct {
	task domain.Task
	seq  int64 // insertion order, breaks created_at ties
}

// TaskRepository is a mutex-guarded map of tasks. Every mutation checks
// ownership and writes under the same lock.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*taskEntry
	seq   int64
	now   func() time.Time
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]*taskEntry),
		now:   time.Now,
	}
}

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	t := *task
	t.ID = uuid.NewString()
	t.DueDate = copyDate(task.DueDate)
	t.CreatedAt = now
	t.UpdatedAt = now

	r.seq++
	r.tasks[t.ID] = &taskEntry{task: t, seq: r.seq}

	return clone(t), nil
}

func (r *TaskRepository) List(_ context.Context, ownerID string) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*taskEntry, 0)
	for _, e := range r.tasks {
		if e.task.OwnerID == ownerID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	tasks := make([]*domain.Task, len(entries))
	for i, e := range entries {
		tasks[i] = clone(e.task)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(_ context.Context, ownerID, taskID string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.tasks[taskID]
	if !ok || e.task.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	return clone(e.task), nil
}

func (r *TaskRepository) Update(_ context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.tasks[taskID]
	if !ok || e.task.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	e.task = patch.Apply(e.task)
	e.task.UpdatedAt = r.now().UTC()
	return clone(e.task), nil
}

func (r *TaskRepository) Delete(_ context.Context, ownerID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.tasks[taskID]
	if !ok || e.task.OwnerID != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func clone(t domain.Task) *domain.Task {
	t.DueDate = copyDate(t.DueDate)
	return &t
}

func copyDate(d *domain.Date) *domain.Date {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}
