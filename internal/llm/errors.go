package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoModels is returned when a configuration resolves to an empty model chain.
var ErrNoModels = errors.New("no models configured")

// overloadPatterns mark provider errors worth retrying on the same model.
var overloadPatterns = []string{
	"model is overloaded",
	"503 service unavailable",
	"quota exceeded",
	"rate limit exceeded",
	"resource exhausted",
	"too many requests",
	"service temporarily unavailable",
	"model not found",
	"model unavailable",
	"invalid model",
	"model does not exist",
	"unsupported model",
	"model is not available",
}

// IsOverloaded reports whether err looks like a capacity or availability failure.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range overloadPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// GenerationError represents a failed generation across the whole model chain
type GenerationError struct {
	Message string
	Models  []string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error: %s (models: %s): %v", e.Message, strings.Join(e.Models, ", "), e.Cause)
	}
	return fmt.Sprintf("generation error: %s (models: %s)", e.Message, strings.Join(e.Models, ", "))
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Overloaded reports whether the last failure was an overload-class error.
func (e *GenerationError) Overloaded() bool {
	return IsOverloaded(e.Cause)
}
