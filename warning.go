package pdf2html

import (
	"errors"
	"strings"

	"github.com/tsawler/pdf2html/layout"
)

// Warning is a non-fatal problem met during conversion
type Warning struct {
	// Message describes the problem
	Message string

	// Page is the page the problem was found on, or 0
	Page int

	// Err is the underlying typed warning, usable with errors.As
	Err error
}

func (w Warning) String() string {
	return w.Message
}

// Error makes a Warning usable as an error
func (w Warning) Error() string {
	return w.String()
}

// Unwrap returns the underlying typed warning
func (w Warning) Unwrap() error {
	return w.Err
}

// FormatWarnings joins warnings into a single line-per-warning string
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

func newWarnings(errs []error) []Warning {
	if len(errs) == 0 {
		return nil
	}
	warnings := make([]Warning, 0, len(errs))
	for _, err := range errs {
		w := Warning{Message: err.Error(), Err: err}
		var malformed *layout.MalformedInputError
		if errors.As(err, &malformed) {
			w.Page = malformed.Page
		}
		warnings = append(warnings, w)
	}
	return warnings
}
