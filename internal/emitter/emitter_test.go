package emitter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/fielder/internal/errors"
	"github.com/toyz/fielder/internal/models"
	"github.com/toyz/fielder/internal/utils"
)

func artifactFor(pkg, typeName string, debuggable bool, names ...string) *models.GeneratedArtifact {
	set := models.NewFieldNameSet()
	for _, name := range names {
		set.Add(name)
	}
	return &models.GeneratedArtifact{
		TargetPackage:     pkg,
		GeneratedTypeName: typeName,
		FieldNames:        set.Freeze(),
		Debuggable:        debuggable,
	}
}

func TestRender_Debuggable(t *testing.T) {
	artifact := artifactFor("animals", "Dog_Fielder", true, "breed", "name", "age")

	source, err := NewFileEmitter().Render(artifact)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "dog_debuggable", source)
}

func TestRender_NonDebuggable(t *testing.T) {
	artifact := artifactFor("animals", "Dog_Fielder", false, "breed", "name", "age")

	source, err := NewFileEmitter().Render(artifact)
	require.NoError(t, err)

	assert.NotContains(t, string(source), "String()")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "dog_plain", source)
}

func TestRender_DebuggableDoesNotChangeNames(t *testing.T) {
	on := artifactFor("animals", "Dog_Fielder", true, "breed", "name", "age")
	off := artifactFor("animals", "Dog_Fielder", false, "breed", "name", "age")

	e := NewFileEmitter()
	onSource, err := e.Render(on)
	require.NoError(t, err)
	offSource, err := e.Render(off)
	require.NoError(t, err)

	for _, name := range []string{`"breed"`, `"name"`, `"age"`} {
		assert.Contains(t, string(onSource), name)
		assert.Contains(t, string(offSource), name)
	}
}

func TestRender_Deterministic(t *testing.T) {
	artifact := artifactFor("animals", "Cat_Fielder", true, "name", "claws", "age")

	e := NewFileEmitter()
	first, err := e.Render(artifact)
	require.NoError(t, err)
	second, err := e.Render(artifact)
	require.NoError(t, err)

	// Byte-identical output across regenerations on unchanged input
	assert.True(t, bytes.Equal(first, second))
}

func TestRender_EmptyFieldSet(t *testing.T) {
	artifact := artifactFor("animals", "Ghost_Fielder", false)

	source, err := NewFileEmitter().Render(artifact)
	require.NoError(t, err)

	assert.Contains(t, string(source), "var ghost_FielderNames = []string{}")
	require.NoError(t, utils.ValidateGoCode(string(source)))
}

func TestRender_GeneratedHeader(t *testing.T) {
	artifact := artifactFor("animals", "Dog_Fielder", true, "breed")

	source, err := NewFileEmitter().Render(artifact)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(source), "// Code generated by fielder. DO NOT EDIT."))
}

func TestRender_NilArtifact(t *testing.T) {
	_, err := NewFileEmitter().Render(nil)
	assert.Error(t, err)
}

func TestEmit_WritesToSourceDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "fielder_emit_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	artifact := artifactFor("animals", "Dog_Fielder", true, "breed")
	artifact.TargetDir = tempDir

	path, err := NewFileEmitter().Emit(artifact, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "dog_fielder_gen.go"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, utils.ValidateGoCode(string(content)))
}

func TestEmit_OutputRoot(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "fielder_emit_root_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	artifact := artifactFor("animals", "Dog_Fielder", true, "breed")
	artifact.TargetDir = "somewhere/else"

	outputRoot := filepath.Join(tempDir, "gen")
	path, err := NewFileEmitter().Emit(artifact, outputRoot)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputRoot, "dog_fielder_gen.go"), path)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestEmit_WriteError(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "fielder_emit_err_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// A regular file where a directory is needed makes MkdirAll fail
	blocker := filepath.Join(tempDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	artifact := artifactFor("animals", "Dog_Fielder", true, "breed")
	outputRoot := filepath.Join(blocker, "nested")

	_, err = NewFileEmitter().Emit(artifact, outputRoot)
	require.Error(t, err)

	fielderErr, ok := err.(errors.FielderError)
	require.True(t, ok)
	assert.Equal(t, errors.WriteErrorCode, fielderErr.ErrorCode())
}
