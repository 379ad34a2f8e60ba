package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryConfig{
	MaxAttempts: 3,
	InitialWait: time.Millisecond,
	MaxWait:     5 * time.Millisecond,
	Multiplier:  2,
}

var okResponse = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}}
}

func TestRetry(t *testing.T) {
	invalid := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okResponse}, false, 1},
		{"transient then success", []MockResponse{down(), okResponse}, false, 2},
		{"gives up after max attempts", []MockResponse{down(), down(), down(), okResponse}, true, 3},
		{"invalid response retried once", []MockResponse{invalid, invalid, okResponse}, true, 2},
		{"invalid then success", []MockResponse{invalid, okResponse}, false, 2},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okResponse}, true, 1},
		{"auth not retried", []MockResponse{{Err: &ErrAuth{Err: errors.New("401")}}, okResponse}, true, 1},
		{"rate limit honours retry-after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okResponse}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, fastRetry, nil)

			resp, err := p.Generate(context.Background(), Request{})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_CanceledContext(t *testing.T) {
	mock := NewMockProvider(down(), okResponse)
	p := WithRetry(mock, fastRetry, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_StopsWhenDeadlineTooClose(t *testing.T) {
	mock := NewMockProvider(down(), okResponse)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	_, err := p.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(okResponse)
	p := WithRetry(mock, RetryConfig{}, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestBackoffBounds(t *testing.T) {
	r := &RetryProvider{cfg: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}
	err := &ErrProviderUnavailable{}

	for attempt := range 6 {
		wait := r.backoff(attempt, err)
		base := min(100*time.Millisecond<<attempt, time.Second)
		assert.GreaterOrEqual(t, wait, base*8/10, "attempt %d", attempt)
		assert.LessOrEqual(t, wait, base*12/10, "attempt %d", attempt)
	}

	assert.Equal(t, 3*time.Second, r.backoff(0, &ErrRateLimit{RetryAfter: 3 * time.Second}))
}
