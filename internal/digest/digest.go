package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/email"
	"github.com/ErlanBelekov/task-tracker/internal/metrics"
	"github.com/robfig/cron/v3"
)

type userLister interface {
	ListAll(ctx context.Context) ([]*domain.User, error)
}

type summarizer interface {
	SummaryAt(ctx context.Context, ownerID string, at time.Time) (domain.StatsSummary, error)
}

// Runner mails every user their stats summary on a cron schedule.
type Runner struct {
	users    userLister
	stats    summarizer
	sender   email.Sender
	schedule cron.Schedule
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

func NewRunner(users userLister, stats summarizer, sender email.Sender, cronExpr string, loc *time.Location, logger *slog.Logger) (*Runner, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse digest cron %q: %w", cronExpr, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Runner{
		users:    users,
		stats:    stats,
		sender:   sender,
		schedule: sched,
		loc:      loc,
		logger:   logger.With("component", "digest"),
		now:      time.Now,
	}, nil
}

// Next returns the first fire time strictly after t, evaluated in the
// runner's timezone.
func (r *Runner) Next(t time.Time) time.Time {
	return r.schedule.Next(t.In(r.loc))
}

// Start blocks until ctx is cancelled, running a digest at every fire time.
func (r *Runner) Start(ctx context.Context) {
	next := r.Next(r.now())
	r.logger.Info("digest runner started", "next_run", next)

	for {
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("digest runner shut down")
			return
		case <-timer.C:
			if err := r.RunOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "digest run", "error", err)
			}
			// Missed fire times are skipped, not replayed.
			next = r.Next(r.now())
		}
	}
}

// RunOnce sends one digest per user with at least one task. A failure for
// a single user is logged and counted; only failing to list users aborts.
func (r *Runner) RunOnce(ctx context.Context) error {
	users, err := r.users.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	// One instant per run: the date in the email and the counts agree even
	// if the run crosses midnight.
	ref := r.now().In(r.loc)
	today := domain.DateOf(ref)
	var sent, skipped, failed int

	for _, u := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		summary, err := r.stats.SummaryAt(ctx, u.ID, ref)
		if err != nil {
			failed++
			metrics.DigestsSentTotal.WithLabelValues("error").Inc()
			r.logger.ErrorContext(ctx, "digest summary", "user_id", u.ID, "error", err)
			continue
		}
		if summary.StatusCounts.Total() == 0 {
			skipped++
			metrics.DigestsSentTotal.WithLabelValues("skipped").Inc()
			continue
		}

		if err := r.send(ctx, u, today, summary); err != nil {
			failed++
			metrics.DigestsSentTotal.WithLabelValues("error").Inc()
			r.logger.ErrorContext(ctx, "digest send", "user_id", u.ID, "error", err)
			continue
		}
		sent++
		metrics.DigestsSentTotal.WithLabelValues("sent").Inc()
	}

	r.logger.InfoContext(ctx, "digest run finished", "sent", sent, "skipped", skipped, "failed", failed)
	if failed > 0 && sent == 0 && skipped == 0 {
		return errors.New("every digest failed")
	}
	return nil
}

func (r *Runner) send(ctx context.Context, u *domain.User, today domain.Date, summary domain.StatsSummary) error {
	subject, body, err := email.RenderDigest(today, summary)
	if err != nil {
		return err
	}
	return r.sender.Send(ctx, u.Email, subject, body)
}
