package models

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GeneratedSuffix is the fixed suffix appended to every generated type name
const GeneratedSuffix = "_Fielder"

// GeneratedArtifact is the abstract description of one generated companion
// type, ready for hand-off to the emission backend. It is immutable after
// construction and consumed exactly once.
type GeneratedArtifact struct {
	// TargetPackage is the package the generated file belongs to
	TargetPackage string `json:"target_package"`

	// TargetDir is the directory the generated file is written to
	TargetDir string `json:"target_dir"`

	// GeneratedTypeName is the companion type name, <Type>_Fielder
	GeneratedTypeName string `json:"generated_type_name"`

	// FieldNames is the frozen ordered field-name set
	FieldNames *FieldNameSet `json:"-"`

	// Debuggable controls whether debug scaffolding (a Stringer) is emitted
	Debuggable bool `json:"debuggable"`
}

// FileName returns the generated file name for this artifact. Two artifacts
// with the same file name in the same directory occupy the same output slot,
// which is the collision the round must reject before emission.
func (a *GeneratedArtifact) FileName() string {
	base := strings.TrimSuffix(a.GeneratedTypeName, GeneratedSuffix)
	return strings.ToLower(base) + "_fielder_gen.go"
}

// OutputSlot returns the path the artifact will be written to, relative to
// its target directory.
func (a *GeneratedArtifact) OutputSlot() string {
	return filepath.Join(a.TargetDir, a.FileName())
}

// OutputPath returns the effective path the artifact will be written to.
// When outputRoot is empty the file lands next to its source package;
// otherwise every artifact of the round shares outputRoot, so artifacts from
// different packages can occupy the same slot there.
func (a *GeneratedArtifact) OutputPath(outputRoot string) string {
	if outputRoot != "" {
		return filepath.Join(outputRoot, a.FileName())
	}
	return a.OutputSlot()
}

// CollectionEntry pairs one input descriptor with its artifact. Entries for
// types that failed collection carry a nil Artifact.
type CollectionEntry struct {
	Type     *TypeDescriptor
	Artifact *GeneratedArtifact
}

// CollectionResult is the sole output of one processing round: the artifacts
// in discovery order, the structured diagnostics accumulated along the way,
// and the files that were written. A round always starts from an empty
// result; nothing is carried across rounds.
type CollectionResult struct {
	// RoundID identifies this round in verbose output
	RoundID uuid.UUID

	// Entries holds one entry per discovered annotated type, in discovery order
	Entries []CollectionEntry

	// Diagnostics are the structured notes, warnings and errors for the round
	Diagnostics []Diagnostic

	// GeneratedFiles lists the paths written by the emission backend
	GeneratedFiles []string
}

// Failed reports whether any error-level diagnostic was emitted. The host
// build decides whether that fails the overall build.
func (r *CollectionResult) Failed() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ArtifactFor returns the artifact built for the given descriptor, or nil
// when the type failed collection or was rejected from emission.
func (r *CollectionResult) ArtifactFor(desc *TypeDescriptor) *GeneratedArtifact {
	for _, entry := range r.Entries {
		if entry.Type == desc {
			return entry.Artifact
		}
	}
	return nil
}
