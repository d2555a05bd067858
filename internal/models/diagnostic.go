package models

import "fmt"

// Severity represents the level of a structured diagnostic
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a structured message attached to a processing round. It is
// collected into the CollectionResult rather than printed immediately, so
// diagnostic output is deterministic and testable. SourceType is the
// qualified name of the offending type, or "" for round-level messages.
type Diagnostic struct {
	Severity   Severity `json:"severity"`
	SourceType string   `json:"source_type,omitempty"`
	Message    string   `json:"message"`
}

// String returns a readable single-line form
func (d Diagnostic) String() string {
	if d.SourceType == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.SourceType, d.Message)
}

// NoteDiag creates a note-level diagnostic
func NoteDiag(sourceType, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: SeverityNote, SourceType: sourceType, Message: fmt.Sprintf(format, args...)}
}

// WarningDiag creates a warning-level diagnostic
func WarningDiag(sourceType, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, SourceType: sourceType, Message: fmt.Sprintf(format, args...)}
}

// ErrorDiag creates an error-level diagnostic
func ErrorDiag(sourceType, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: SeverityError, SourceType: sourceType, Message: fmt.Sprintf(format, args...)}
}
