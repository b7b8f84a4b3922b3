package requestid

import (
	"context"

	"github.com/google/uuid"
)

const maxLength = 128

type ctxKey struct{}

func New() string {
	return uuid.NewString()
}

// Sanitize returns id if it is safe to echo into logs and headers, or a
// fresh ID otherwise.
func Sanitize(id string) string {
	if id == "" || len(id) > maxLength {
		return New()
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return New()
		}
	}
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns "" when ctx carries no request ID.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
