package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch("ollama", "ok", 3, 20*time.Millisecond)
	m.ObserveFetch("ollama", "ok", 5, 10*time.Millisecond)
	m.ObserveFetch("ollama", "transport_failure", 0, time.Second)
	m.ObserveFetch("openrouter", "malformed_response", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SourceFetchTotal.WithLabelValues("ollama", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SourceFetchTotal.WithLabelValues("ollama", "transport_failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SourceFetchTotal.WithLabelValues("openrouter", "malformed_response")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.SourceModels.WithLabelValues("ollama")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.SourceFetchDuration))
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/keys", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/keys", "200")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("keys", "ok", 0, time.Millisecond)
		m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveFetch("keys", "server_unavailable", 0, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `chatmodels_source_fetch_total{outcome="server_unavailable",source="keys"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveFetch("ollama", "ok", 1, time.Millisecond)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.SourceFetchTotal.WithLabelValues("ollama", "ok")))
	assert.NotSame(t, a.Registry(), b.Registry())
}
