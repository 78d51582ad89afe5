package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("CHATMODELS_TEST_ONLY_ENV", "from-env")
	assert.Equal(t, "from-env", GetString("CHATMODELS_TEST_ONLY_ENV"))

	viper.Set("chatmodels_test_key", "from-viper")
	t.Setenv("chatmodels_test_key", "from-env")
	assert.Equal(t, "from-viper", GetString("chatmodels_test_key"))

	assert.Empty(t, GetString("CHATMODELS_TEST_UNSET"))
}

func TestGetFirst(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("NEXT_PUBLIC_OLLAMA_URL", "http://localhost:11434")
	assert.Equal(t, "http://localhost:11434", GetFirst("ollama_url", "NEXT_PUBLIC_OLLAMA_URL"))

	viper.Set("ollama_url", "http://ollama:11434")
	assert.Equal(t, "http://ollama:11434", GetFirst("ollama_url", "NEXT_PUBLIC_OLLAMA_URL"))
}

func TestGetDuration(t *testing.T) {
	t.Cleanup(viper.Reset)

	assert.Equal(t, 3*time.Second, GetDuration("fetch_timeout", 3*time.Second))

	viper.Set("fetch_timeout", "250ms")
	assert.Equal(t, 250*time.Millisecond, GetDuration("fetch_timeout", time.Second))

	viper.Set("fetch_timeout", "soon")
	assert.Equal(t, time.Second, GetDuration("fetch_timeout", time.Second))

	viper.Set("fetch_timeout", "-1s")
	assert.Equal(t, time.Second, GetDuration("fetch_timeout", time.Second))
}

func TestLookup(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("GROQ_API_KEY", "gsk")
	v, ok := Lookup("GROQ_API_KEY")
	assert.True(t, ok)
	assert.Equal(t, "gsk", v)

	t.Setenv("MISTRAL_API_KEY", "")
	_, ok = Lookup("MISTRAL_API_KEY")
	assert.False(t, ok)
}
