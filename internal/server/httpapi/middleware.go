package httpapi

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// statusWriter records the status and body size of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += int64(n)
	return n, err
}

// code is the status sent, 200 when the handler wrote nothing.
func (sw *statusWriter) code() int {
	if sw.status == 0 {
		return http.StatusOK
	}
	return sw.status
}

// RequestLogger tags every request with an id (taken from X-Request-Id or
// generated), echoes it in the response, stores a child logger carrying it
// in the request context and logs the outcome once the request completes:
// 5xx at error, 4xx at warn, anything else at info.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			l := logger.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)
			r = r.WithContext(logging.WithLogger(r.Context(), l))

			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			status := sw.code()
			args := []any{
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes_written", sw.bytes,
			}
			switch {
			case status >= http.StatusInternalServerError:
				l.Error(r.Context(), "Request completed", args...)
			case status >= http.StatusBadRequest:
				l.Warn(r.Context(), "Request completed", args...)
			default:
				l.Info(r.Context(), "Request completed", args...)
			}
		})
	}
}

// Recoverer turns a panic into a 500 with the generic body and logs the stack.
func Recoverer(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logging.FromContext(r.Context(), logger).Error(r.Context(), "Panic recovered",
						"error", err,
						"stack", string(debug.Stack()),
					)
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(MsgInternal))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
