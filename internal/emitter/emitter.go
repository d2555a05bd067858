// Package emitter is the emission backend: it turns an abstract generated
// artifact into formatted Go source and writes it to its output slot.
package emitter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/toyz/fielder/internal/errors"
	"github.com/toyz/fielder/internal/models"
	"github.com/toyz/fielder/internal/utils"
)

// Backend accepts one artifact per call and materializes it. Emission is a
// blocking, fallible external step from the round's point of view; a failure
// surfaces as a per-artifact WriteError without aborting the round.
type Backend interface {
	Emit(artifact *models.GeneratedArtifact, outputRoot string) (string, error)
}

// FileEmitter renders artifacts with text/template, formats the result with
// goimports, and writes it to disk.
type FileEmitter struct {
	tmpl *template.Template
}

// NewFileEmitter creates a new file emitter
func NewFileEmitter() *FileEmitter {
	tmpl := template.Must(template.New("fielder").Parse(fielderTemplate))
	return &FileEmitter{tmpl: tmpl}
}

// Emit renders and writes one artifact. When outputRoot is empty the file
// lands next to the source package; otherwise it lands under outputRoot.
// Returns the written path.
func (e *FileEmitter) Emit(artifact *models.GeneratedArtifact, outputRoot string) (string, error) {
	source, err := e.Render(artifact)
	if err != nil {
		return "", errors.NewWriteError(artifact.GeneratedTypeName, artifact.OutputSlot(), err)
	}

	path := artifact.OutputPath(outputRoot)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errors.NewWriteError(artifact.GeneratedTypeName, path, err)
		}
	}

	if err := os.WriteFile(path, source, 0644); err != nil {
		return "", errors.NewWriteError(artifact.GeneratedTypeName, path, err)
	}

	return path, nil
}

// Render produces the formatted source for one artifact without writing it
func (e *FileEmitter) Render(artifact *models.GeneratedArtifact) ([]byte, error) {
	if artifact == nil {
		return nil, fmt.Errorf("artifact cannot be nil")
	}
	if artifact.FieldNames == nil {
		return nil, fmt.Errorf("artifact for %s has no field name set", artifact.GeneratedTypeName)
	}

	names := artifact.FieldNames.Names()
	data := fielderTemplateData{
		Package:     artifact.TargetPackage,
		TypeName:    artifact.GeneratedTypeName,
		SourceName:  strings.TrimSuffix(artifact.GeneratedTypeName, models.GeneratedSuffix),
		BackingVar:  backingVarName(artifact.GeneratedTypeName),
		FieldNames:  names,
		Debuggable:  artifact.Debuggable,
		DebugString: fmt.Sprintf("%s(fields: %s)", artifact.GeneratedTypeName, strings.Join(names, ", ")),
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute fielder template: %w", err)
	}

	formatted, err := utils.GoImportsAndFormat(buf.Bytes(), artifact.FileName())
	if err != nil {
		return nil, err
	}

	return formatted, nil
}

// backingVarName derives the unexported package-level slice name for a
// generated type, e.g. Dog_Fielder -> dog_FielderNames.
func backingVarName(typeName string) string {
	runes := []rune(typeName)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes) + "Names"
}
