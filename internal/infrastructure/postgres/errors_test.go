package postgres

import (
	"errors"
	"testing"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapErr(t *testing.T) {
	driverErr := errors.New("connection refused")

	tests := []struct {
		name     string
		err      error
		notFound error
		conflict error
		want     error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrTaskNotFound, nil, domain.ErrTaskNotFound},
		{"no rows without notFound", pgx.ErrNoRows, nil, nil, domain.ErrUnavailable},
		{"unique violation", &pgconn.PgError{Code: "23505"}, nil, domain.ErrEmailTaken, domain.ErrConflict},
		{"other pg error", &pgconn.PgError{Code: "57P01"}, nil, domain.ErrEmailTaken, domain.ErrUnavailable},
		{"driver error", driverErr, domain.ErrTaskNotFound, nil, domain.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErr("op", tt.err, tt.notFound, tt.conflict)
			if !errors.Is(got, tt.want) {
				t.Errorf("mapErr = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapErr_KeepsCause(t *testing.T) {
	driverErr := errors.New("connection refused")
	if got := mapErr("op", driverErr, nil, nil); !errors.Is(got, driverErr) {
		t.Errorf("cause lost: %v", got)
	}
}

func TestValidUUID(t *testing.T) {
	if !validUUID("3f8b7a2e-9c1d-4e5f-8a6b-7c8d9e0f1a2b") {
		t.Error("valid uuid rejected")
	}
	for _, id := range []string{"", "42", "not-a-uuid"} {
		if validUUID(id) {
			t.Errorf("validUUID(%q) = true", id)
		}
	}
}

func TestScanTask_ConvertsDueDate(t *testing.T) {
	task, err := scanTask(fakeRow{status: "in-progress", due: "2026-10-17"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.StatusInProgress {
		t.Errorf("status = %q", task.Status)
	}
	if task.DueDate == nil || task.DueDate.String() != "2026-10-17" {
		t.Errorf("due date = %v", task.DueDate)
	}

	task, err = scanTask(fakeRow{status: "pending"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("due date = %v, want nil", task.DueDate)
	}
}
