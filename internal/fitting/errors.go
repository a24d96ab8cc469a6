package fitting

import "fmt"

// FitError is returned when not even the forced render could produce a PDF.
type FitError struct {
	Message  string
	Attempts []Attempt
	Cause    error
}

func (e *FitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fit error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("fit error: %s", e.Message)
}

func (e *FitError) Unwrap() error {
	return e.Cause
}
