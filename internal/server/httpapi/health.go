package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/logging"
	"github.com/dmitrijs2005/flightbooking/internal/server/db"
)

const healthTimeout = 2 * time.Second

// healthHandler reports whether the database is reachable.
func healthHandler(cm db.ConnectionManager, logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := cm.Ping(ctx); err != nil {
			logging.FromContext(r.Context(), logger).Warn(r.Context(), "Health check failed", "error", err)
			_ = writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
