package validation

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// CountPages returns the number of pages in an in-memory PDF document.
func CountPages(data []byte) (n int, err error) {
	if len(data) == 0 {
		return 0, &PDFError{Message: "empty PDF document", Size: len(data)}
	}
	// The reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, &PDFError{Message: "failed to read PDF", Size: len(data), Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, &PDFError{Message: "failed to open PDF", Size: len(data), Cause: err}
	}
	return reader.NumPage(), nil
}
