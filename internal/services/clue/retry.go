package clue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/mcoot/codenames/internal/model"
)

// Retrying retries a provider with exponential backoff until it succeeds,
// attempts run out, or the request context ends. Errors marked with
// retry.Unrecoverable fail straight away.
type Retrying struct {
	next     Provider
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

// NewRetrying wraps next. attempts includes the first try.
func NewRetrying(next Provider, attempts uint, delay time.Duration, logger *slog.Logger) *Retrying {
	if attempts == 0 {
		attempts = 1
	}
	return &Retrying{
		next:     next,
		attempts: attempts,
		delay:    delay,
		logger:   logger.With(slog.String("component", "clue-retry")),
	}
}

var _ Provider = (*Retrying)(nil)

// RequestClue calls the wrapped provider, retrying failures
func (r *Retrying) RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error) {
	clue, err := retry.DoWithData(
		func() (model.Clue, error) {
			return r.next.RequestClue(ctx, view)
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && retry.IsRecoverable(err)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			r.logger.Warn("clue request failed, retrying",
				slog.String("game_id", string(view.GameID)),
				slog.Uint64("attempt", uint64(n+1)),
				slog.String("error", err.Error()),
			)
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		if !errors.Is(err, model.ErrClueUnavailable) {
			err = unavailable("retry", err)
		}
		return model.Clue{}, err
	}
	return clue, nil
}
