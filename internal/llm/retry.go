package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

// RetryProvider retries transient failures with jittered exponential
// backoff. Schema mismatches get a single second chance.
type RetryProvider struct {
	inner  Provider
	cfg    RetryConfig
	logger *log.Logger
}

// WithRetry wraps p with retries. logger may be nil.
func WithRetry(p Provider, cfg RetryConfig, logger *log.Logger) Provider {
	if logger == nil {
		logger = log.Default()
	}
	return &RetryProvider{inner: p, cfg: cfg, logger: logger.WithPrefix("llm")}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	invalidSeen := false

	for attempt := 0; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt+1 >= attempts || !retryable(err, &invalidSeen) {
			return nil, err
		}

		wait := r.backoff(attempt, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			// Sleeping would only end in DeadlineExceeded.
			return nil, err
		}
		r.logger.Debug("retrying request", "purpose", PurposeFrom(ctx),
			"attempt", attempt+2, "of", attempts, "wait", wait, "err", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var (
		maxTok *ErrMaxTokensExceeded
		auth   *ErrAuth
		inv    *ErrInvalidResponse
	)
	switch {
	case errors.As(err, &maxTok), errors.As(err, &auth):
		return false
	case errors.As(err, &inv):
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
	}
	return true
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
