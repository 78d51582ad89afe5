package openrouter

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

func TestListModels(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"openai/gpt-4o","name":"GPT-4o","context_length":128000},
			{"id":""},
			{"id":"meta-llama/llama-3-70b-instruct"}
		]}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL, "").ListModels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auth)

	want := []catalogs.LLM{
		{
			ModelID:      "openai/gpt-4o",
			ModelName:    "openai/gpt-4o",
			Provider:     catalogs.ProviderOpenRouter,
			HostedID:     "openai/gpt-4o",
			PlatformLink: "https://openrouter.ai/docs#models",
			MaxContext:   128000,
		},
		{
			ModelID:      "meta-llama/llama-3-70b-instruct",
			ModelName:    "meta-llama/llama-3-70b-instruct",
			Provider:     catalogs.ProviderOpenRouter,
			HostedID:     "meta-llama/llama-3-70b-instruct",
			PlatformLink: "https://openrouter.ai/docs#models",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListModels() mismatch (-want +got):\n%s", diff)
	}
}

func TestListModelsBearerKey(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL, "sk-or-1").ListModels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "Bearer sk-or-1", auth)
}

func TestListModelsFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"rate limited", http.StatusTooManyRequests, `slow down`, errors.IsRateLimited},
		{"server error", http.StatusInternalServerError, `{}`, errors.IsServerUnavailable},
		{"missing data", http.StatusOK, `{"models":[]}`, errors.IsMalformedResponse},
		{"truncated", http.StatusOK, `{"data":[{"id":"a"`, errors.IsMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got, err := NewClient(server.URL, "").ListModels(context.Background())
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}
}

func TestNewClientDefaultURL(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, "https://openrouter.ai/api/v1/models", c.url)
}
