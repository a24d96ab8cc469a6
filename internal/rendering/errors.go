// Package rendering turns an optimized résumé record into the one-page HTML
// document that the headless browser measures and prints.
package rendering

import "fmt"

// TemplateError is returned when the template catalogue or the page template
// cannot be loaded or executed. Template names the catalogue entry when known.
type TemplateError struct {
	Message  string
	Template string
	Cause    error
}

func (e *TemplateError) Error() string {
	msg := "template error: " + e.Message
	if e.Template != "" {
		msg += fmt.Sprintf(" (template %q)", e.Template)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TemplateError) Unwrap() error { return e.Cause }

// RenderError is returned when rendered output cannot be post-processed.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return "render error: " + e.Message
	}
	return "render error: " + e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error { return e.Cause }
