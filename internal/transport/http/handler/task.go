package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]*domain.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

type TaskHandler struct {
	uc     taskUsecaser
	logger *slog.Logger
}

func NewTaskHandler(uc taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{uc: uc, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title   string       `json:"title"   binding:"required,max=200"`
	DueDate *domain.Date `json:"dueDate"`
}

// nullableDate tells "dueDate": null (clear) apart from an absent key.
type nullableDate struct {
	Set   bool
	Value *domain.Date
}

func (n *nullableDate) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Value = nil
		return nil
	}
	var d domain.Date
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	n.Value = &d
	return nil
}

type updateTaskRequest struct {
	Title   *string        `json:"title"   binding:"omitempty,min=1,max=200"`
	Status  *domain.Status `json:"status"  binding:"omitempty,oneof=pending in-progress completed"`
	DueDate nullableDate   `json:"dueDate"`
}

func (r updateTaskRequest) patch() domain.TaskPatch {
	p := domain.TaskPatch{Title: r.Title, Status: r.Status}
	if r.DueDate.Set {
		if r.DueDate.Value == nil {
			p.ClearDueDate = true
		} else {
			p.DueDate = r.DueDate.Value
		}
	}
	return p
}

type taskResponse struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"ownerId"`
	Title     string        `json:"title"`
	Status    domain.Status `json:"status"`
	DueDate   *domain.Date  `json:"dueDate,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Title:     t.Title,
		Status:    t.Status,
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	var req createTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	task, err := h.uc.CreateTask(ctx.Request.Context(), usecase.CreateTaskInput{
		OwnerID: ctx.GetString("userID"),
		Title:   req.Title,
		DueDate: req.DueDate,
	})
	if err != nil {
		respondError(ctx, h.logger, "create task", err)
		return
	}

	ctx.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) List(ctx *gin.Context) {
	tasks, err := h.uc.ListTasks(ctx.Request.Context(), ctx.GetString("userID"))
	if err != nil {
		respondError(ctx, h.logger, "list tasks", err)
		return
	}

	items := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskResponse(t)
	}
	ctx.JSON(http.StatusOK, gin.H{"tasks": items})
}

func (h *TaskHandler) GetByID(ctx *gin.Context) {
	task, err := h.uc.GetTask(ctx.Request.Context(), ctx.GetString("userID"), ctx.Param("id"))
	if err != nil {
		respondError(ctx, h.logger, "get task", err)
		return
	}

	ctx.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	var req updateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	task, err := h.uc.UpdateTask(ctx.Request.Context(), ctx.GetString("userID"), ctx.Param("id"), req.patch())
	if err != nil {
		respondError(ctx, h.logger, "update task", err)
		return
	}

	ctx.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	if err := h.uc.DeleteTask(ctx.Request.Context(), ctx.GetString("userID"), ctx.Param("id")); err != nil {
		respondError(ctx, h.logger, "delete task", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
