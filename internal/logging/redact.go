package logging

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Redacted replaces the value of every sensitive attribute.
const Redacted = "[REDACTED]"

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
}

// IsSensitive reports whether values logged under key must never be written out.
func IsSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// NewHandler returns a JSON handler that redacts sensitive attributes at any
// nesting level.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	})
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindGroup && IsSensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	return a
}

// Headers renders request headers as a log group, redacting credentials.
func Headers(h http.Header) slog.Attr {
	attrs := make([]any, 0, len(h))
	for k, v := range h {
		value := strings.Join(v, ", ")
		if IsSensitive(k) {
			value = Redacted
		}
		attrs = append(attrs, slog.String(strings.ToLower(k), value))
	}
	return slog.Group("headers", attrs...)
}
