package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them. Used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails via the Resend API. Used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

var digestTmpl = template.Must(template.New("digest").Parse(`<p>Your tasks for {{.Date}}</p>
<ul>
<li>Pending: {{.Summary.StatusCounts.Pending}}</li>
<li>In progress: {{.Summary.StatusCounts.InProgress}}</li>
<li>Completed: {{.Summary.StatusCounts.Completed}}</li>
</ul>
<p>Due today: {{.Summary.DueToday}}. Due this week: {{.Summary.DueThisWeek}}.</p>
`))

// RenderDigest builds the subject and HTML body of the daily digest.
func RenderDigest(date domain.Date, summary domain.StatsSummary) (subject, body string, err error) {
	var buf bytes.Buffer
	err = digestTmpl.Execute(&buf, struct {
		Date    string
		Summary domain.StatsSummary
	}{date.String(), summary})
	if err != nil {
		return "", "", fmt.Errorf("render digest: %w", err)
	}
	subject = fmt.Sprintf("%d due today, %d due this week", summary.DueToday, summary.DueThisWeek)
	return subject, buf.String(), nil
}
