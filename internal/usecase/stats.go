package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/repository"
)

// StatsUsecase derives the dashboard summary from an owner's tasks. Nothing
// is cached; every call rescans.
type StatsUsecase struct {
	tasks repository.TaskRepository
	loc   *time.Location
	now   func() time.Time
}

func NewStatsUsecase(tasks repository.TaskRepository, loc *time.Location) *StatsUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsUsecase{tasks: tasks, loc: loc, now: time.Now}
}

// WithClock replaces the time source used as the reference instant.
func (u *StatsUsecase) WithClock(now func() time.Time) *StatsUsecase {
	u.now = now
	return u
}

func (u *StatsUsecase) Summary(ctx context.Context, ownerID string) (domain.StatsSummary, error) {
	return u.SummaryAt(ctx, ownerID, u.now())
}

// SummaryAt computes the summary as of ref, so a caller that also prints
// the date can use the same instant.
func (u *StatsUsecase) SummaryAt(ctx context.Context, ownerID string, at time.Time) (domain.StatsSummary, error) {
	// One reference instant per call so a call straddling midnight stays
	// consistent.
	ref := at.In(u.loc)

	tasks, err := u.tasks.List(ctx, ownerID)
	if err != nil {
		return domain.StatsSummary{}, wrap("list tasks", err)
	}

	summary, err := Summarize(tasks, domain.DateOf(ref))
	if err != nil {
		return domain.StatsSummary{}, fmt.Errorf("summarize owner %s: %w", ownerID, err)
	}
	return summary, nil
}

// Summarize buckets tasks by status and counts due dates falling on today
// and within today's Monday-Sunday week. A status outside the known set is
// an integrity violation and fails the whole summary.
func Summarize(tasks []*domain.Task, today domain.Date) (domain.StatsSummary, error) {
	var s domain.StatsSummary
	weekStart, weekEnd := WeekBounds(today)

	for _, t := range tasks {
		switch t.Status {
		case domain.StatusPending:
			s.StatusCounts.Pending++
		case domain.StatusInProgress:
			s.StatusCounts.InProgress++
		case domain.StatusCompleted:
			s.StatusCounts.Completed++
		default:
			return domain.StatsSummary{}, fmt.Errorf("task %s has status %q: %w", t.ID, t.Status, domain.ErrUnknownStatus)
		}

		if t.DueDate == nil {
			continue
		}
		due := *t.DueDate
		if due.Compare(today) == 0 {
			s.DueToday++
		}
		if due.Compare(weekStart) >= 0 && due.Compare(weekEnd) <= 0 {
			s.DueThisWeek++
		}
	}
	return s, nil
}

// WeekBounds returns the Monday and Sunday of d's ISO week, both inclusive.
func WeekBounds(d domain.Date) (start, end domain.Date) {
	offset := (int(d.Weekday()) + 6) % 7 // days since Monday
	start = d.AddDays(-offset)
	return start, start.AddDays(6)
}
