package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyiz/internal/store"
)

type recordingEvents struct {
	events []store.LLMRequestEventData
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return nil
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	events := &recordingEvents{}
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	p := WithLogging(mock, "anthropic", events, logger)
	ctx := WithPurpose(context.Background(), "syllabus")

	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	require.Len(t, events.events, 2)
	assert.True(t, events.events[0].Success)
	assert.Equal(t, "syllabus", events.events[0].Purpose)
	assert.Equal(t, "anthropic", events.events[0].Provider)
	assert.Equal(t, "mock", events.events[0].Model)
	assert.Equal(t, 7, events.events[0].InputTokens)
	assert.False(t, events.events[1].Success)
	assert.NotEmpty(t, events.events[1].ErrorMessage)

	assert.Contains(t, buf.String(), "purpose=syllabus")
	assert.Contains(t, buf.String(), "request failed")
}

func TestLoggingProvider_NilEvents(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.15+0.6, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.Nil(t, LookupCost("no-such-model"))
}
