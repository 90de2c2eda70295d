package util

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithRequestID tags ctx so every log line of one lookup shares an id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id set by WithRequestID. Library callers that never
// tag their context still get a per-request id for log correlation.
func RequestID(ctx context.Context) string {
	if id, _ := ctx.Value(ctxKey{}).(string); id != "" {
		return id
	}
	return NewRequestID()
}

func NewRequestID() string {
	return uuid.NewString()
}
