package domain

import (
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID      string
	OwnerID string
	Title   string
	Status  Status
	DueDate *Date // nil means no due date

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskPatch carries the optional fields of an update. A nil field is left
// untouched; ClearDueDate removes the due date and wins over DueDate.
type TaskPatch struct {
	Title        *string
	Status       *Status
	DueDate      *Date
	ClearDueDate bool
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Status == nil && p.DueDate == nil && !p.ClearDueDate
}

// Apply returns a copy of t with the patch applied.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	return t
}
