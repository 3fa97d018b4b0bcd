package logging

import (
	"context"
	"log"
)

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID returns the request ID stored on ctx, or "" when there is none.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger prefixes every line with a component tag and the request ID
type Logger struct {
	tag       string
	requestID string
}

// New creates a logger for component bound to the request carried by ctx
func New(ctx context.Context, component string) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "-"
	}
	return &Logger{tag: "[" + component + "]", requestID: requestID}
}

// Errorf logs a failed operation
func (l *Logger) Errorf(operation string, format string, args ...any) {
	l.printf("error", operation, format, args...)
}

// Warnf logs a recoverable condition
func (l *Logger) Warnf(operation string, format string, args ...any) {
	l.printf("warn", operation, format, args...)
}

// Infof logs a formatted info message
func (l *Logger) Infof(operation string, format string, args ...any) {
	l.printf("info", operation, format, args...)
}

func (l *Logger) printf(level, operation, format string, args ...any) {
	log.Printf("%s %s request_id=%s op=%s "+format, append([]any{l.tag, level, l.requestID, operation}, args...)...)
}
