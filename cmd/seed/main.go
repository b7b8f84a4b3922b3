// seed creates a demo user with a spread of tasks in the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ErlanBelekov/task-tracker/config"
	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/task-tracker/internal/usecase"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

type taskSpec struct {
	title  string
	status domain.Status
	dueIn  *int // days from today; nil means no due date
}

func days(n int) *int { return &n }

var tasks = []taskSpec{
	{"Write weekly report", domain.StatusPending, days(0)},
	{"Review pull requests", domain.StatusInProgress, days(0)},
	{"Book dentist appointment", domain.StatusPending, days(1)},
	{"Renew passport", domain.StatusPending, days(3)},
	{"Plan team offsite", domain.StatusInProgress, days(9)},
	{"Pay electricity bill", domain.StatusCompleted, days(-2)},
	{"Clean up inbox", domain.StatusCompleted, nil},
	{"Read a book", domain.StatusPending, nil},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set, run: direnv allow")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	taskRepo := postgres.NewTaskRepository(pool)
	authUsecase := usecase.NewAuthUsecase(postgres.NewUserRepository(pool), []byte(cfg.JWTSecret), cfg.TokenTTL)
	taskUsecase := usecase.NewTaskUsecase(taskRepo)
	statsUsecase := usecase.NewStatsUsecase(taskRepo, loc)

	if _, err := authUsecase.Register(ctx, seedEmail, seedPassword); err != nil && !errors.Is(err, domain.ErrEmailTaken) {
		log.Fatalf("register seed user: %v", err)
	}
	session, err := authUsecase.Login(ctx, seedEmail, seedPassword)
	if err != nil {
		log.Fatalf("login seed user: %v", err)
	}
	userID, err := authUsecase.ResolveToken(session.Token)
	if err != nil {
		log.Fatalf("resolve seed token: %v", err)
	}

	existing, err := taskUsecase.ListTasks(ctx, userID)
	if err != nil {
		log.Fatalf("list tasks: %v", err)
	}

	// Re-runs leave an already seeded user alone.
	inserted := 0
	if len(existing) == 0 {
		today := domain.DateOf(time.Now().In(loc))
		for _, spec := range tasks {
			var due *domain.Date
			if spec.dueIn != nil {
				d := today.AddDays(*spec.dueIn)
				due = &d
			}
			task, err := taskUsecase.CreateTask(ctx, usecase.CreateTaskInput{
				OwnerID: userID,
				Title:   spec.title,
				DueDate: due,
			})
			if err != nil {
				log.Fatalf("create task %q: %v", spec.title, err)
			}
			if spec.status != domain.StatusPending {
				status := spec.status
				if _, err := taskUsecase.UpdateTask(ctx, userID, task.ID, domain.TaskPatch{Status: &status}); err != nil {
					log.Fatalf("update task %q: %v", spec.title, err)
				}
			}
			inserted++
		}
	}

	summary, err := statsUsecase.Summary(ctx, userID)
	if err != nil {
		log.Fatalf("stats: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:       %s\n", userID)
	fmt.Printf("  Tasks created: %d  (existing %d)\n", inserted, len(existing))
	fmt.Printf("  Stats:         pending=%d in-progress=%d completed=%d dueToday=%d dueThisWeek=%d\n",
		summary.StatusCounts.Pending, summary.StatusCounts.InProgress, summary.StatusCounts.Completed,
		summary.DueToday, summary.DueThisWeek)
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Println()
	fmt.Println("    export TOKEN=" + session.Token)
	fmt.Println("    curl -s http://localhost:8080/api/tasks -H \"Authorization: Bearer $TOKEN\"")
	fmt.Println("    curl -s http://localhost:8080/api/tasks/stats -H \"Authorization: Bearer $TOKEN\"")
}
