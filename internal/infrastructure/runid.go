package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// LogKeyRunID is the log attribute carrying the run ID
const LogKeyRunID = "run_id"

type runIDKey struct{}

// NewRunID returns a fresh run identifier
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID tags ctx with a run ID. Records logged through a logger from
// NewJSONLogger with this context carry it as run_id.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFrom returns the run ID of ctx, or "" when it has none
func RunIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// EnsureRunID returns ctx and its run ID, tagging ctx with a new ID first
// when it has none
func EnsureRunID(ctx context.Context) (context.Context, string) {
	if id := RunIDFrom(ctx); id != "" {
		return ctx, id
	}
	id := NewRunID()
	return WithRunID(ctx, id), id
}
