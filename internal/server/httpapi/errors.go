package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/logging"
)

// Response bodies for the known error kinds.
const (
	MsgAlreadyExists   = "Username or email already taken"
	MsgInvalidPayload  = "Invalid payload"
	MsgUnauthenticated = "User is not authenticated"
	MsgFlightNotFound  = "Flight not found"
	MsgInternal        = "Something went wrong"
)

// ErrorTranslator maps an error kind to a status code and a plain-text body.
// One translator exists per route group; resource names the group in logs
// and in the body of unrecognized errors.
type ErrorTranslator struct {
	resource string
	logger   logging.Logger
	observer ErrorObserver
}

// ErrorObserver is notified of every error response.
type ErrorObserver interface {
	ObserveError(resource string, status int)
}

// NewErrorTranslator returns a translator for the route group named resource.
func NewErrorTranslator(resource string, l logging.Logger) *ErrorTranslator {
	return &ErrorTranslator{resource: resource, logger: l}
}

// WithObserver sets o to be notified of every error response written by t.
func (t *ErrorTranslator) WithObserver(o ErrorObserver) *ErrorTranslator {
	t.observer = o
	return t
}

// Translate returns the status code and body for err. Details of err never
// reach the body.
func (t *ErrorTranslator) Translate(err error) (int, string, bool) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, MsgAlreadyExists, true
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, MsgInvalidPayload, true
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, MsgUnauthenticated, true
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, MsgFlightNotFound, true
	case errors.Is(err, common.ErrorInternal):
		return http.StatusInternalServerError, MsgInternal, true
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Unhandled %s error", t.resource), false
	}
}

// Write logs err and writes the translated response.
func (t *ErrorTranslator) Write(w http.ResponseWriter, r *http.Request, err error) {
	status, body, known := t.Translate(err)

	l := logging.FromContext(r.Context(), t.logger).With("resource", t.resource)
	switch {
	case !known:
		l.Error(r.Context(), "Unhandled error",
			"error", err, "method", r.Method, "path", r.URL.Path, "status", status, logging.Headers(r.Header))
	case status >= http.StatusInternalServerError:
		l.Error(r.Context(), "Request failed", "error", err, "status", status)
	default:
		l.Warn(r.Context(), "Request rejected", "error", err, "status", status)
	}

	if t.observer != nil {
		t.observer.ObserveError(t.resource, status)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
