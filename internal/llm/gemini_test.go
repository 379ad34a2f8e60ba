package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(questionSchema.Definition)

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, []string{"question", "options", "correctAnswer"}, s.Required)
	assert.Nil(t, s.PropertyOrdering, "ordering needs every property to be required")

	opts := s.Properties["options"]
	assert.Equal(t, genai.TypeArray, opts.Type)
	assert.Equal(t, genai.TypeString, opts.Items.Type)
	require.NotNil(t, opts.MinItems)
	require.NotNil(t, opts.MaxItems)
	assert.EqualValues(t, 4, *opts.MinItems)
	assert.EqualValues(t, 4, *opts.MaxItems)

	answer := s.Properties["correctAnswer"]
	assert.Equal(t, genai.TypeInteger, answer.Type)
	require.NotNil(t, answer.Maximum)
	assert.Equal(t, 3.0, *answer.Maximum)

	assert.Equal(t, []string{"easy", "hard"}, s.Properties["difficulty"].Enum)
}

func TestGeminiSchema_PropertyOrdering(t *testing.T) {
	s := geminiSchema(topicsSchema.Definition)
	assert.Equal(t, []string{"topics"}, s.PropertyOrdering)
	assert.EqualValues(t, 1, *s.Properties["topics"].MinItems)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err)
}
