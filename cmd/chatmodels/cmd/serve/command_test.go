package serve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/chatmodels"
	"github.com/agentstation/chatmodels/cmd/application"
	"github.com/agentstation/chatmodels/internal/server"
)

func parse(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestConfigKeepsBaseWhenFlagsUnset(t *testing.T) {
	base := server.DefaultConfig()
	base.Port = 9000
	base.APIKey = "secret"
	base.AuthEnabled = true

	cfg, err := Config(parse(t), base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestConfigAppliesFlags(t *testing.T) {
	cfg, err := Config(parse(t,
		"--port", "3000",
		"--host", "0.0.0.0",
		"--cors-origins", "https://a.example.com,https://b.example.com",
		"--rate-limit", "0",
		"--trust-proxy",
		"--read-timeout", "2s",
		"--metrics=false",
	), server.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.RateLimit)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
	assert.False(t, cfg.MetricsEnabled)
}

func TestConfigRejectsInvalidPort(t *testing.T) {
	_, err := Config(parse(t, "--port", "70000"), server.DefaultConfig())
	assert.Error(t, err)
}

func TestNewServer(t *testing.T) {
	_, err := NewServer(&application.Mock{
		ClientFunc: func() (chatmodels.Client, error) { return nil, errors.New("boom") },
	}, server.DefaultConfig())
	assert.ErrorContains(t, err, "boom")

	client, err := chatmodels.New()
	require.NoError(t, err)
	srv, err := NewServer(&application.Mock{
		ClientFunc: func() (chatmodels.Client, error) { return client, nil },
	}, server.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", srv.Addr())
}

func TestNewServerUsesServerClient(t *testing.T) {
	client, err := chatmodels.New()
	require.NoError(t, err)

	_, err = NewServer(&application.Mock{
		ClientFunc:       func() (chatmodels.Client, error) { return nil, errors.New("cli client") },
		ServerClientFunc: func() (chatmodels.Client, error) { return client, nil },
	}, server.DefaultConfig())
	assert.NoError(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	client, err := chatmodels.New()
	require.NoError(t, err)

	cmd := NewCommand(&application.Mock{
		ClientFunc: func() (chatmodels.Client, error) { return client, nil },
	})
	cmd.SetArgs([]string{"--host", "127.0.0.1", "--port", "18181"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
