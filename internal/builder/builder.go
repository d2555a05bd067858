// Package builder turns a collected (type, field-name set, debuggable)
// triple into an abstract generated artifact. It performs no I/O; emission
// is the backend's job.
package builder

import (
	"strings"

	"github.com/toyz/fielder/internal/errors"
	"github.com/toyz/fielder/internal/models"
)

// ArtifactBuilder derives generated-artifact descriptions from descriptors.
// It is a stateless pure transform.
type ArtifactBuilder struct{}

// NewArtifactBuilder creates a new artifact builder
func NewArtifactBuilder() *ArtifactBuilder {
	return &ArtifactBuilder{}
}

// Build produces the artifact for one annotated type. The generated type
// name is the simple name plus the fixed "_Fielder" suffix. A type without a
// package takes a synthetic flat name derived from its qualified name with
// '.' replaced by '_', so default-package inputs never produce an invalid
// identifier. The debuggable flag passes through untouched; it never affects
// the field-name content or order.
func (b *ArtifactBuilder) Build(sourceType *models.TypeDescriptor, fieldNames *models.FieldNameSet, debuggable bool) (*models.GeneratedArtifact, error) {
	if sourceType == nil {
		return nil, errors.New(errors.UnknownErrorCode, "source type cannot be nil")
	}
	if fieldNames == nil {
		return nil, errors.New(errors.UnknownErrorCode, "field name set cannot be nil")
	}
	if !fieldNames.Frozen() {
		fieldNames.Freeze()
	}

	baseName := sourceType.Name
	targetPackage := sourceType.PackageName
	if targetPackage == "" {
		flat := strings.ReplaceAll(sourceType.QualifiedName(), ".", "_")
		baseName = flat
		targetPackage = flat
	}

	// Per-type annotation override wins over the round-level option
	if sourceType.Debuggable != nil {
		debuggable = *sourceType.Debuggable
	}

	return &models.GeneratedArtifact{
		TargetPackage:     targetPackage,
		TargetDir:         sourceType.PackageDir,
		GeneratedTypeName: baseName + models.GeneratedSuffix,
		FieldNames:        fieldNames,
		Debuggable:        debuggable,
	}, nil
}

// DetectCollisions scans a completed round for two artifacts that occupy the
// same output slot. The slot is the effective output path: with an output
// root configured every artifact of the round shares one directory, so types
// from different packages collide on file name alone. Detection runs after
// every artifact exists and before any emission, so the outcome is
// deterministic regardless of how the per-type work was ordered. Every
// colliding artifact is rejected; the returned errors name both source types
// of each collision.
func DetectCollisions(entries []models.CollectionEntry, outputRoot string) (rejected map[*models.GeneratedArtifact]bool, errs []*errors.BaseError) {
	rejected = make(map[*models.GeneratedArtifact]bool)
	bySlot := make(map[string]models.CollectionEntry)

	for _, entry := range entries {
		if entry.Artifact == nil {
			continue
		}
		slot := entry.Artifact.OutputPath(outputRoot)
		first, exists := bySlot[slot]
		if !exists {
			bySlot[slot] = entry
			continue
		}

		if !rejected[first.Artifact] {
			rejected[first.Artifact] = true
		}
		rejected[entry.Artifact] = true
		errs = append(errs, errors.NewNameCollisionError(
			slot, first.Type.QualifiedName(), entry.Type.QualifiedName()))
	}

	return rejected, errs
}
