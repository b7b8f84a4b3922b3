package usecase

import (
	"fmt"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
)

// wrap annotates err with op. Errors that carry no kind are treated as
// storage failures so callers always see exactly one kind.
func wrap(op string, err error) error {
	if domain.HasKind(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
}
