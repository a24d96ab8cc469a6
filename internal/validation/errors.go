// Package validation checks exported documents and screens résumé text before
// it is sent to a text-generation model.
package validation

import "fmt"

// PDFError is returned when an exported document cannot be inspected.
// Size is the length of the offending document in bytes.
type PDFError struct {
	Message string
	Size    int
	Cause   error
}

func (e *PDFError) Error() string {
	msg := fmt.Sprintf("pdf error: %s (%d bytes)", e.Message, e.Size)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *PDFError) Unwrap() error {
	return e.Cause
}
