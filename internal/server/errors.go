package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/onepager/internal/pipeline"
)

// ErrValidation indicates a malformed request that never reached the pipeline.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		serverErr   *ErrValidation
		pipelineErr *pipeline.ValidationError
	)
	switch {
	case errors.Is(err, pipeline.ErrMissingData):
		return http.StatusBadRequest
	case errors.As(err, &serverErr), errors.As(err, &pipelineErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
