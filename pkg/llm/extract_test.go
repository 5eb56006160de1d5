package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-screening-backend/pkg/llm"
)

func TestExtractJSON(t *testing.T) {
	t.Run("Should unwrap a fenced block", func(t *testing.T) {
		got, err := llm.ExtractJSON("```json\n{\"questions\": []}\n```")
		assert.NoError(t, err)
		assert.Equal(t, `{"questions": []}`, got)
	})

	t.Run("Should find an object inside prose", func(t *testing.T) {
		got, err := llm.ExtractJSON(`Sure, here it is: {"score": 80, "verdict": "pass"} - good luck!`)
		assert.NoError(t, err)
		assert.Equal(t, `{"score": 80, "verdict": "pass"}`, got)
	})

	t.Run("Should handle a bare array", func(t *testing.T) {
		got, err := llm.ExtractJSON(`[{"question": "What is a slice?"}]`)
		assert.NoError(t, err)
		assert.Equal(t, `[{"question": "What is a slice?"}]`, got)
	})

	t.Run("Should ignore braces inside strings", func(t *testing.T) {
		got, err := llm.ExtractJSON(`{"feedback": "use } and \" carefully"} trailing`)
		assert.NoError(t, err)
		assert.Equal(t, `{"feedback": "use } and \" carefully"}`, got)
	})

	t.Run("Should report truncated payloads", func(t *testing.T) {
		_, err := llm.ExtractJSON(`{"questions": [1, 2`)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "truncated")
	})

	t.Run("Should report replies without JSON", func(t *testing.T) {
		_, err := llm.ExtractJSON("I cannot answer that.")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no JSON")
	})
}
