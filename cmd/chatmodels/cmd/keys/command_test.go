package keys

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/chatmodels"
	"github.com/agentstation/chatmodels/cmd/application"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/profile"
)

type fakeClient struct {
	chatmodels.Client
	envKeys catalogs.EnvKeyMap
	ok      bool
	calls   int
}

func (f *fakeClient) HostedModels(context.Context, *profile.Profile) (chatmodels.HostedModels, bool) {
	f.calls++
	if !f.ok {
		return chatmodels.HostedModels{}, false
	}
	return chatmodels.HostedModels{EnvKeyMap: f.envKeys, Models: []catalogs.LLM{}}, true
}

func execute(t *testing.T, client *fakeClient, local catalogs.EnvKeyMap, format string, args ...string) (string, error) {
	t.Helper()
	app := &application.Mock{
		ClientFunc:       func() (chatmodels.Client, error) { return client, nil },
		EnvKeysFunc:      func() catalogs.EnvKeyMap { return local },
		OutputFormatFunc: func() string { return format },
	}
	cmd := NewCommand(app)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRemoteKeys(t *testing.T) {
	client := &fakeClient{ok: true, envKeys: catalogs.EnvKeyMap{catalogs.ProviderAzure: true}}

	out, err := execute(t, client, nil, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"isUsingEnvKeyMap":{"azure":true}}`, out)
	assert.Equal(t, 1, client.calls)
}

func TestRemoteKeysUnavailable(t *testing.T) {
	_, err := execute(t, &fakeClient{}, nil, "json")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLocalKeys(t *testing.T) {
	client := &fakeClient{}
	local := catalogs.EnvKeyMap{catalogs.ProviderOpenAI: true, catalogs.ProviderGroq: false}

	out, err := execute(t, client, local, "table", "--local")
	require.NoError(t, err)
	assert.Contains(t, out, "openai")
	assert.Contains(t, out, "groq")
	assert.Zero(t, client.calls)

	out, err = execute(t, client, nil, "json", "--local")
	require.NoError(t, err)
	assert.JSONEq(t, `{"isUsingEnvKeyMap":{}}`, out)
}
