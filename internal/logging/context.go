package logging

import (
	"context"

	"go.uber.org/zap"
)

type contextKey int

const (
	documentKey contextKey = iota
	attemptKey
)

// WithDocument attaches the source document name to the context.
func WithDocument(ctx context.Context, filename string) context.Context {
	return context.WithValue(ctx, documentKey, filename)
}

// WithAttemptID attaches the extraction attempt id to the context.
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptKey, id)
}

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if doc, ok := ctx.Value(documentKey).(string); ok && doc != "" {
		fields = append(fields, zap.String("document", doc))
	}
	if id, ok := ctx.Value(attemptKey).(string); ok && id != "" {
		fields = append(fields, zap.String("attempt_id", id))
	}
	return fields
}
