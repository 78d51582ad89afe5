package chatmodels

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels/pkg/errors"
	"github.com/agentstation/chatmodels/pkg/logging"
)

// fetch runs fn under the per-source timeout and converts any failure,
// including a panic, into a logged and counted absence.
func (c *client) fetch(ctx context.Context, source string, fn func(context.Context) (int, error)) bool {
	ctx, cancel := context.WithTimeout(ctx, c.config.fetchTimeout)
	defer cancel()

	start := time.Now()
	count, err := guard(ctx, fn)
	elapsed := time.Since(start)

	kind := errors.Kind(err)
	c.config.metrics.ObserveFetch(source, kind, count, elapsed)

	logger := c.logger(ctx)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("source", source).
			Str("kind", kind).
			Dur("elapsed", elapsed).
			Msgf("Error fetching %s models", source)
		return false
	}

	logger.Debug().
		Str("source", source).
		Int("models", count).
		Dur("elapsed", elapsed).
		Msg("Fetched models")
	return true
}

func guard(ctx context.Context, fn func(context.Context) (int, error)) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

func (c *client) logger(ctx context.Context) *zerolog.Logger {
	if c.config.logger != nil {
		return c.config.logger
	}
	return logging.FromContext(ctx)
}
