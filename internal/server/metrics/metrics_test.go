package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, m *Metrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func labels(metric *dto.Metric) map[string]string {
	out := map[string]string{}
	for _, l := range metric.GetLabel() {
		out[l.GetName()] = l.GetValue()
	}
	return out
}

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.InstrumentHandler)
	r.Get("/flights/{flightId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flights/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	f := findMetric(t, m, "flightbooking_http_requests_total")
	require.NotNil(t, f)
	require.Len(t, f.GetMetric(), 1)
	assert.Equal(t, map[string]string{"method": "GET", "path": "/flights/{flightId}", "status": "404"}, labels(f.GetMetric()[0]))
	assert.Equal(t, float64(2), f.GetMetric()[0].GetCounter().GetValue())
}

func TestObserveError(t *testing.T) {
	m := New()
	m.ObserveError("flights", http.StatusNotFound)
	m.ObserveError("flights", http.StatusNotFound)
	m.ObserveError("auth", http.StatusUnauthorized)

	f := findMetric(t, m, "flightbooking_api_errors_total")
	require.NotNil(t, f)
	assert.Len(t, f.GetMetric(), 2)
}

func TestHandler_ServesRegistry(t *testing.T) {
	m := New()
	m.ObserveError("auth", http.StatusBadRequest)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "flightbooking_api_errors_total")
}
