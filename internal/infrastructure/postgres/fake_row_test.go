package postgres

import (
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

// fakeRow mimics a tasks row for scanTask.
type fakeRow struct {
	status string
	due    string // empty = NULL
}

func (r fakeRow) Scan(dest ...any) error {
	*dest[0].(*string) = "3f8b7a2e-9c1d-4e5f-8a6b-7c8d9e0f1a2b"
	*dest[1].(*string) = "5a1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d4e"
	*dest[2].(*string) = "title"
	*dest[3].(*string) = r.status
	if r.due != "" {
		d, err := domain.ParseDate(r.due)
		if err != nil {
			return err
		}
		t := d.Midnight()
		*dest[4].(**time.Time) = &t
	}
	now := time.Now()
	*dest[5].(*time.Time) = now
	*dest[6].(*time.Time) = now
	return nil
}
