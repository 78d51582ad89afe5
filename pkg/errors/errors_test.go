package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/chatmodels/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "provider",
			ID:       "cohere",
		}
		assert.Equal(t, "provider with ID cohere not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("model", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("provider", "cohere", "unknown model provider")
		assert.Equal(t, "validation failed for field provider: unknown model provider", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty registry"}
		assert.Equal(t, "validation failed: empty registry", err.Error())
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapValidation("field", nil))
	})
}

func TestAPIError(t *testing.T) {
	t.Run("any non-success status is server unavailable", func(t *testing.T) {
		for _, status := range []int{400, 401, 404, 500, 503} {
			err := pkgerrors.NewAPIError("ollama", status, "nope")
			assert.True(t, pkgerrors.IsServerUnavailable(err), "status %d", status)
			assert.False(t, pkgerrors.IsMalformedResponse(err))
			assert.False(t, pkgerrors.IsTransportFailure(err))
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		err := pkgerrors.NewAPIError("openrouter", 429, "slow down")
		assert.True(t, pkgerrors.IsRateLimited(err))
		assert.True(t, pkgerrors.IsServerUnavailable(err))
	})

	t.Run("message", func(t *testing.T) {
		err := pkgerrors.NewAPIError("keys", 502, "Bad Gateway")
		assert.Equal(t, "keys server is not responding (status 502): Bad Gateway", err.Error())
	})
}

func TestParseError(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := pkgerrors.WrapParse("json", "response", cause)

	assert.True(t, pkgerrors.IsMalformedResponse(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "parse error in json response: unexpected EOF", err.Error())
	assert.NoError(t, pkgerrors.WrapParse("json", "response", nil))
}

func TestTransportError(t *testing.T) {
	t.Run("plain failure", func(t *testing.T) {
		err := pkgerrors.WrapTransport("ollama", "http://localhost:11434/api/tags", errors.New("connection refused"))
		assert.True(t, pkgerrors.IsTransportFailure(err))
		assert.False(t, pkgerrors.IsTimeout(err))
		assert.Equal(t, "transport_failure", pkgerrors.Kind(err))
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		err := pkgerrors.WrapTransport("ollama", "x", fmt.Errorf("get: %w", context.DeadlineExceeded))
		assert.True(t, pkgerrors.IsTransportFailure(err))
		assert.True(t, pkgerrors.IsTimeout(err))
		assert.Equal(t, "timeout", pkgerrors.Kind(err))
	})

	t.Run("canceled", func(t *testing.T) {
		err := pkgerrors.WrapTransport("ollama", "x", context.Canceled)
		assert.True(t, pkgerrors.IsCanceled(err))
		assert.Equal(t, "canceled", pkgerrors.Kind(err))
	})
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"api", pkgerrors.NewAPIError("keys", 500, ""), "server_unavailable"},
		{"parse", pkgerrors.NewParseError("json", "", "bad", nil), "malformed_response"},
		{"validation", pkgerrors.NewValidationError("f", nil, "bad"), "invalid_input"},
		{"wrapped api", fmt.Errorf("hosted: %w", pkgerrors.NewAPIError("keys", 500, "")), "server_unavailable"},
		{"other", errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkgerrors.Kind(tt.err))
		})
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("missing")
	err := pkgerrors.NewConfigError("registry", "cannot load", cause)
	assert.Equal(t, "configuration error in registry: cannot load", err.Error())
	assert.ErrorIs(t, err, cause)
}
