package annotations

import (
	"github.com/toyz/fielder/internal/errors"
)

// Prefix is the comment prefix that marks a fielder annotation
const Prefix = "//fielder::"

// AnnotationType represents the kind of annotation found in source code
type AnnotationType int

const (
	FieldableAnnotation AnnotationType = iota
)

// String returns the annotation keyword as written in source
func (t AnnotationType) String() string {
	switch t {
	case FieldableAnnotation:
		return "fieldable"
	default:
		return "unknown"
	}
}

// ParsedAnnotation is the result of parsing one //fielder:: marker
type ParsedAnnotation struct {
	Type       AnnotationType
	Parameters map[string]string
	Flags      map[string]bool
	Location   errors.SourceLocation
	Raw        string
}

// BoolParam returns the named parameter interpreted the way option strings
// are: the exact value "false" means false, anything else (including an
// absent parameter) means the provided default. A bare flag form means true.
func (a *ParsedAnnotation) BoolParam(name string, def bool) bool {
	if a.Flags[name] {
		return true
	}
	value, ok := a.Parameters[name]
	if !ok {
		return def
	}
	return value != "false"
}

// HasParam reports whether the named parameter was written on the
// annotation, in either the -Name or -Name=value form
func (a *ParsedAnnotation) HasParam(name string) bool {
	if a.Flags[name] {
		return true
	}
	_, ok := a.Parameters[name]
	return ok
}
