package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, owner_id, title, status, due_date, created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (owner_id, title, status, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+taskColumns,
		task.OwnerID, task.Title, string(task.Status), dueDateArg(task.DueDate),
	)
	created, err := scanTask(row)
	if err != nil {
		return nil, mapErr("create task", err, nil, nil)
	}
	return created, nil
}

func (r *TaskRepository) List(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	if !validUUID(ownerID) {
		return []*domain.Task{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC`, ownerID)
	if err != nil {
		return nil, mapErr("list tasks", err, nil, nil)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, mapErr("scan task", err, nil, nil)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("iterate tasks", err, nil, nil)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	if !validUUID(taskID) || !validUUID(ownerID) {
		return nil, domain.ErrTaskNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND owner_id = $2`, taskID, ownerID)
	t, err := scanTask(row)
	if err != nil {
		return nil, mapErr("get task", err, domain.ErrTaskNotFound, nil)
	}
	return t, nil
}

// Update checks ownership and applies the patch in one statement.
func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if !validUUID(taskID) || !validUUID(ownerID) {
		return nil, domain.ErrTaskNotFound
	}

	query, args := buildTaskUpdate(ownerID, taskID, patch)
	t, err := scanTask(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapErr("update task", err, domain.ErrTaskNotFound, nil)
	}
	return t, nil
}

// buildTaskUpdate renders the UPDATE for patch. $1 and $2 are always the
// task and owner ids; patch values follow in field order.
func buildTaskUpdate(ownerID, taskID string, patch domain.TaskPatch) (string, []any) {
	args := []any{taskID, ownerID}
	sets := []string{"updated_at = NOW()"}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Status != nil {
		args = append(args, string(*patch.Status))
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if patch.ClearDueDate {
		sets = append(sets, "due_date = NULL")
	} else if patch.DueDate != nil {
		args = append(args, patch.DueDate.Midnight())
		sets = append(sets, fmt.Sprintf("due_date = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET    %s
		WHERE  id = $1 AND owner_id = $2
		RETURNING `+taskColumns,
		strings.Join(sets, ", "))
	return query, args
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	if !validUUID(taskID) || !validUUID(ownerID) {
		return domain.ErrTaskNotFound
	}
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		taskID, ownerID)
	if err != nil {
		return mapErr("delete task", err, nil, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
		due    *time.Time
	)
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &status, &due, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = domain.Status(status)
	if due != nil {
		d := domain.DateOf(due.UTC())
		t.DueDate = &d
	}
	return &t, nil
}

func dueDateArg(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Midnight()
	return &t
}

// Non-UUID ids can never match a row; rejecting them up front avoids a
// driver cast error that would otherwise read as a storage failure.
func validUUID(id string) bool {
	return uuid.Validate(id) == nil
}
