package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/errors"
)

// newTagsServer serves body at /api/tags and counts requests.
func newTagsServer(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &calls
}

func TestListModels(t *testing.T) {
	server, calls := newTagsServer(t, http.StatusOK,
		`{"models":[{"name":"llama3:8b","size":123},{"name":""},{"name":"mistral:latest"}]}`)

	got, err := NewClient(server.URL+"/").ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	want := []catalogs.LLM{
		{
			ModelID:      "llama3:8b",
			ModelName:    "llama3:8b",
			Provider:     catalogs.ProviderOllama,
			HostedID:     "llama3:8b",
			PlatformLink: "https://ollama.ai/library",
		},
		{
			ModelID:      "mistral:latest",
			ModelName:    "mistral:latest",
			Provider:     catalogs.ProviderOllama,
			HostedID:     "mistral:latest",
			PlatformLink: "https://ollama.ai/library",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListModels() mismatch (-want +got):\n%s", diff)
	}
}

func TestListModelsEmpty(t *testing.T) {
	server, _ := newTagsServer(t, http.StatusOK, `{"models":[]}`)

	got, err := NewClient(server.URL).ListModels(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListModelsIsRepeatable(t *testing.T) {
	server, calls := newTagsServer(t, http.StatusOK, `{"models":[{"name":"phi3"}]}`)
	client := NewClient(server.URL)

	first, err := client.ListModels(context.Background())
	require.NoError(t, err)
	second, err := client.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, *calls)
	assert.Empty(t, cmp.Diff(first, second))
}

func TestListModelsFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"server error", http.StatusBadGateway, `bad gateway`, errors.IsServerUnavailable},
		{"missing models", http.StatusOK, `{"tags":[]}`, errors.IsMalformedResponse},
		{"models not a list", http.StatusOK, `{"models":"llama3"}`, errors.IsMalformedResponse},
		{"not json", http.StatusOK, `<html></html>`, errors.IsMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTagsServer(t, tt.status, tt.body)
			got, err := NewClient(server.URL).ListModels(context.Background())
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}
}

func TestListModelsNotConfigured(t *testing.T) {
	client := NewClient("")
	assert.False(t, client.Configured())

	_, err := client.ListModels(context.Background())
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Source, cfgErr.Component)
}

func TestListModelsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	_, err := NewClient(base).ListModels(context.Background())
	assert.True(t, errors.IsTransportFailure(err))
}
