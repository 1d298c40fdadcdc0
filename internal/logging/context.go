package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID identifies one CLI invocation.
	FieldSessionID = "session_id"
	// FieldRecipeID is the standardized key for recipe identifiers.
	FieldRecipeID = "recipe_id"
	// FieldItemID is the standardized key for grocery item identifiers.
	FieldItemID = "item_id"
	// FieldCount carries the size of a result set or batch.
	FieldCount = "count"
)

type contextKey string

const sessionKey contextKey = "session_id"

// WithSession annotates ctx with the CLI session identifier.
func WithSession(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, id)
}

// SessionFromContext extracts the session identifier if present.
func SessionFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := SessionFromContext(ctx); ok {
		return logger.With(String(FieldSessionID, id))
	}
	return logger
}
