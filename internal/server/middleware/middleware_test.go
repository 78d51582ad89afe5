package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels/pkg/logging"
	"github.com/agentstation/chatmodels/pkg/metrics"
)

// TestChain_ExecutionOrder verifies first added is outermost middleware.
func TestChain_ExecutionOrder(t *testing.T) {
	var executionLog []string

	track := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				executionLog = append(executionLog, "start-"+name)
				next.ServeHTTP(w, r)
				executionLog = append(executionLog, "end-"+name)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		executionLog = append(executionLog, "handler")
		w.WriteHeader(http.StatusOK)
	})

	Chain(track("1"), track("2"))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/test", nil))

	expected := []string{"start-1", "start-2", "handler", "end-2", "end-1"}
	if strings.Join(executionLog, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v", expected, executionLog)
	}
}

// TestChain_Empty verifies an empty chain returns the handler itself.
func TestChain_Empty(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	Chain()(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if !called {
		t.Error("handler was not called")
	}
}

// TestRequestID tests generated and propagated request IDs.
func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/keys", nil))

		if len(seen) != 36 {
			t.Errorf("expected a UUID request ID, got %q", seen)
		}
		if got := w.Header().Get("X-Request-ID"); got != seen {
			t.Errorf("response header %q does not match context ID %q", got, seen)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/keys", nil)
		req.Header.Set("X-Request-ID", "upstream-42")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if seen != "upstream-42" {
			t.Errorf("expected propagated ID, got %q", seen)
		}
		if got := w.Header().Get("X-Request-ID"); got != "upstream-42" {
			t.Errorf("expected echoed ID, got %q", got)
		}
	})
}

// TestLogger tests request logging middleware.
func TestLogger(t *testing.T) {
	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/keys", http.StatusOK},
		{"POST", "/api/catalog", http.StatusBadRequest},
		{"GET", "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.168.1.1:12345"
			w := httptest.NewRecorder()
			Logger(&logger)(handler).ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log is not valid JSON: %v", err)
			}
			if entry["method"] != tt.method || entry["path"] != tt.path {
				t.Errorf("unexpected method/path in log: %v", entry)
			}
			if status, ok := entry["status"].(float64); !ok || int(status) != tt.status {
				t.Errorf("log status: expected %d, got %v", tt.status, entry["status"])
			}
			if entry["remote_addr"] != "192.168.1.1:12345" {
				t.Errorf("log missing remote_addr: %v", entry)
			}
			if _, ok := entry["duration_ms"]; !ok {
				t.Error("log missing duration_ms field")
			}
		})
	}
}

// TestLogger_ContextLogger verifies handlers receive a request-scoped logger.
func TestLogger_ContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Warn().Msg("inside handler")
	})

	Chain(RequestID(), Logger(&logger))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/keys", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	if entry["message"] != "inside handler" || entry["path"] != "/api/keys" {
		t.Errorf("handler log missing request fields: %v", entry)
	}
	if id, _ := entry["request_id"].(string); id == "" {
		t.Errorf("handler log missing request_id: %v", entry)
	}
}

// TestRecovery tests panic recovery middleware.
func TestRecovery(t *testing.T) {
	tests := []struct {
		name         string
		panicValue   interface{}
		expectStatus int
	}{
		{"no panic", nil, http.StatusOK},
		{"panic with string", "something went wrong", http.StatusInternalServerError},
		{"panic with error", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.panicValue != nil {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			Recovery(&logger)(handler).ServeHTTP(w, httptest.NewRequest("GET", "/api/catalog", nil))

			if w.Code != tt.expectStatus {
				t.Errorf("expected status %d, got %d", tt.expectStatus, w.Code)
			}
			if tt.panicValue == nil {
				if buf.Len() != 0 {
					t.Errorf("expected no log output, got %s", buf.String())
				}
				return
			}
			if !strings.Contains(buf.String(), "Panic recovered") {
				t.Errorf("expected panic log, got %s", buf.String())
			}
			if !strings.Contains(w.Body.String(), `"INTERNAL_ERROR"`) {
				t.Errorf("expected error envelope, got %s", w.Body.String())
			}
		})
	}
}

// TestMetrics verifies requests are counted by route.
func TestMetrics(t *testing.T) {
	m := metrics.New()
	route := func(*http.Request) string { return "/api/models/{source}" }

	handler := Metrics(m, route)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/models/ollama", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/models/openrouter", nil))

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/models/{source}", "503"))
	if got != 2 {
		t.Errorf("expected 2 requests counted, got %v", got)
	}
}

// TestMetrics_Disabled verifies a nil Metrics leaves the handler untouched.
func TestMetrics_Disabled(t *testing.T) {
	w := httptest.NewRecorder()
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	Metrics(nil, nil)(handler).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", w.Code)
	}
}
