package postgres

import (
	"errors"
	"fmt"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

// mapErr translates driver errors into domain kinds: no rows becomes
// notFound, a unique violation becomes conflict, anything else is treated
// as the store being unavailable.
func mapErr(op string, err error, notFound, conflict error) error {
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && conflict != nil {
		return conflict
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
}
