package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/toyz/fielder/internal/errors"
)

// DiagnosticReporter renders rich error output for round-level failures
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose}
}

// ReportError writes a structured rendering of an error to stderr
func (r *DiagnosticReporter) ReportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(os.Stderr, "ERROR: ")
	fmt.Fprintf(os.Stderr, "Generation failed\n\n")

	switch e := err.(type) {
	case *errors.MultipleErrors:
		r.reportMultipleErrors(e)
	case errors.FielderError:
		r.reportFielderError(e)
	default:
		fmt.Fprintf(os.Stderr, "Message: %s\n", err.Error())
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// reportMultipleErrors renders each collected failure in turn
func (r *DiagnosticReporter) reportMultipleErrors(multi *errors.MultipleErrors) {
	fmt.Fprintf(os.Stderr, "%d failures:\n", multi.Count())
	for i, sub := range multi.Errors {
		fmt.Fprintf(os.Stderr, "\n[%d] ", i+1)
		r.reportFielderError(sub)
	}

	if multi.HasCode(errors.FileSystemErrorCode) {
		yellow := color.New(color.FgYellow)
		yellow.Fprintf(os.Stderr, "\nCheck permissions on the listed paths\n")
	}
}

// reportFielderError renders a FielderError with location, context and
// suggestions
func (r *DiagnosticReporter) reportFielderError(err errors.FielderError) {
	fmt.Fprintf(os.Stderr, "Type: %s\n", err.ErrorCode())
	fmt.Fprintf(os.Stderr, "Message: %s\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(os.Stderr, "Location: %s\n", loc)
	}

	if r.verbose {
		if cause := err.Unwrap(); cause != nil {
			fmt.Fprintf(os.Stderr, "Cause: %s\n", cause.Error())
		}
		if ctx := err.Context(); len(ctx) > 0 {
			fmt.Fprintf(os.Stderr, "\nContext:\n")
			for key, value := range ctx {
				fmt.Fprintf(os.Stderr, "  %s: %v\n", key, value)
			}
		}
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		yellow := color.New(color.FgYellow)
		yellow.Fprintf(os.Stderr, "\nSuggestions:\n")
		for _, suggestion := range suggestions {
			fmt.Fprintf(os.Stderr, "  - %s\n", suggestion)
		}
	}
}
