package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOverloaded(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("The model is overloaded. Please try again later."), true},
		{errors.New("googleapi: Error 429: Resource exhausted"), true},
		{fmt.Errorf("wrapped: %w", errors.New("Rate limit exceeded")), true},
		{errors.New("models/gemini-x: model not found"), true},
		{errors.New("invalid argument"), false},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverloaded(tt.err))
		})
	}
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("503 Service Unavailable")
	err := &GenerationError{Message: "all models failed", Models: []string{"a", "b"}, Cause: cause}

	assert.Equal(t, "generation error: all models failed (models: a, b): 503 Service Unavailable", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.Overloaded())
}
