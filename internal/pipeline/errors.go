package pipeline

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrMissingData is returned when a request carries no résumé payload.
var ErrMissingData = errors.New("No data provided")

// ValidationError reports the first request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts a validator failure into a ValidationError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Namespace(), Message: fmt.Sprintf("failed %q validation", fe.Tag())}
	}
	return &ValidationError{Field: "request", Message: err.Error()}
}
