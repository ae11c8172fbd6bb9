package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldEndpoint is the field name for the serving endpoint.
	LogFieldEndpoint = "endpoint"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldMessageLen is the field name for message length.
	LogFieldMessageLen = "message_length"
	// LogFieldOutcome is the field name for the resolution outcome.
	LogFieldOutcome = "outcome"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
	// LogFieldCacheHit is the field name for cache hits.
	LogFieldCacheHit = "cache_hit"
)

// RequestContext carries the request id and start time of one resolution
// request so every log line of the request can be correlated.
type RequestContext struct {
	RequestID string
	Endpoint  string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewRequestContext creates a new request context with a generated request ID.
func NewRequestContext(logger *slog.Logger, endpoint string) *RequestContext {
	return NewRequestContextWithID(logger, uuid.New().String(), endpoint)
}

// NewRequestContextWithID creates a new request context with a specific request ID.
// An empty id is replaced by a generated one.
func NewRequestContextWithID(logger *slog.Logger, requestID, endpoint string) *RequestContext {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestContext{
		RequestID: requestID,
		Endpoint:  endpoint,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// WithFields returns a logger carrying the request attributes plus attrs.
func (r *RequestContext) WithFields(attrs ...slog.Attr) *slog.Logger {
	all := r.attrs(attrs...)
	args := make([]any, len(all))
	for i, a := range all {
		args[i] = a
	}
	return r.Logger.With(args...)
}

// Info logs an info message.
func (r *RequestContext) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(ctx, slog.LevelInfo, msg, r.attrs(attrs...)...)
}

// Debug logs a debug message.
func (r *RequestContext) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(ctx, slog.LevelDebug, msg, r.attrs(attrs...)...)
}

// Warn logs a warning message.
func (r *RequestContext) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(ctx, slog.LevelWarn, msg, r.attrs(attrs...)...)
}

// Error logs an error message with the error.
func (r *RequestContext) Error(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	r.Logger.LogAttrs(ctx, slog.LevelError, msg, r.attrs(attrs...)...)
}

// Duration returns the elapsed time since the request started.
func (r *RequestContext) Duration() time.Duration {
	return time.Since(r.StartTime)
}

// DurationMs returns the elapsed time in milliseconds.
func (r *RequestContext) DurationMs() int64 {
	return r.Duration().Milliseconds()
}

func (r *RequestContext) attrs(extra ...slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, 2+len(extra))
	out = append(out,
		slog.String(LogFieldRequestID, r.RequestID),
		slog.String(LogFieldEndpoint, r.Endpoint),
	)
	return append(out, extra...)
}

type ctxKey struct{}

// WithRequestContext adds the request context to the context.
func WithRequestContext(ctx context.Context, reqCtx *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, reqCtx)
}

// FromContext extracts the request context from the context.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	reqCtx, ok := ctx.Value(ctxKey{}).(*RequestContext)
	return reqCtx, ok
}
