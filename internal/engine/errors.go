package engine

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("engine closed")

// EngineError represents a failure of the headless browser.
type EngineError struct {
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("engine error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("engine error: %s", e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}
