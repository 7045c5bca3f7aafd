package utils

import (
	"context"
	"log"
	"strings"
)

type requestIDKey struct{}

// WithRequestID attaches the inbound request id so downstream log lines can carry it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

// LogError writes a failure line to the diagnostic stream.
func LogError(ctx context.Context, module, action string, err error) {
	if err == nil {
		return
	}
	log.Printf("[%s] action=%s request_id=%s error=%q", strings.ToUpper(module), action, RequestID(ctx), err.Error())
}
