package builder

import (
	"reflect"
	"testing"

	"github.com/toyz/fielder/internal/errors"
	"github.com/toyz/fielder/internal/models"
)

func frozenSet(names ...string) *models.FieldNameSet {
	set := models.NewFieldNameSet()
	for _, name := range names {
		set.Add(name)
	}
	return set.Freeze()
}

func TestBuild_GeneratedTypeName(t *testing.T) {
	desc := &models.TypeDescriptor{
		PackageName: "animals",
		PackageDir:  "internal/animals",
		Name:        "Dog",
	}

	artifact, err := NewArtifactBuilder().Build(desc, frozenSet("breed", "name", "age"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if artifact.GeneratedTypeName != "Dog_Fielder" {
		t.Errorf("expected Dog_Fielder, got %s", artifact.GeneratedTypeName)
	}
	if artifact.TargetPackage != "animals" {
		t.Errorf("expected package animals, got %s", artifact.TargetPackage)
	}
	if artifact.TargetDir != "internal/animals" {
		t.Errorf("expected dir internal/animals, got %s", artifact.TargetDir)
	}
	if !artifact.Debuggable {
		t.Error("expected debuggable artifact")
	}

	want := []string{"breed", "name", "age"}
	if !reflect.DeepEqual(artifact.FieldNames.Names(), want) {
		t.Errorf("expected %v, got %v", want, artifact.FieldNames.Names())
	}
}

func TestBuild_EmptyPackageTakesFlatName(t *testing.T) {
	desc := &models.TypeDescriptor{Name: "Foo"}

	artifact, err := NewArtifactBuilder().Build(desc, frozenSet("x"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if artifact.GeneratedTypeName != "Foo_Fielder" {
		t.Errorf("expected Foo_Fielder, got %s", artifact.GeneratedTypeName)
	}
	if artifact.TargetPackage != "Foo" {
		t.Errorf("expected synthetic flat package, got %s", artifact.TargetPackage)
	}
}

func TestBuild_DebuggablePassThrough(t *testing.T) {
	desc := &models.TypeDescriptor{PackageName: "animals", Name: "Dog"}
	names := frozenSet("breed")

	b := NewArtifactBuilder()

	on, err := b.Build(desc, names, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	off, err := b.Build(desc, names, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !on.Debuggable || off.Debuggable {
		t.Error("debuggable flag did not pass through")
	}

	// The toggle never changes the field-name content or order
	if !reflect.DeepEqual(on.FieldNames.Names(), off.FieldNames.Names()) {
		t.Error("debuggable toggle changed field names")
	}
}

func TestBuild_PerTypeDebuggableOverride(t *testing.T) {
	override := false
	desc := &models.TypeDescriptor{
		PackageName: "animals",
		Name:        "Dog",
		Debuggable:  &override,
	}

	artifact, err := NewArtifactBuilder().Build(desc, frozenSet("breed"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if artifact.Debuggable {
		t.Error("annotation override should win over the round option")
	}
}

func TestBuild_NilInputs(t *testing.T) {
	b := NewArtifactBuilder()

	if _, err := b.Build(nil, frozenSet("x"), true); err == nil {
		t.Error("expected error for nil descriptor")
	}
	if _, err := b.Build(&models.TypeDescriptor{Name: "T"}, nil, true); err == nil {
		t.Error("expected error for nil field name set")
	}
}

func TestDetectCollisions_None(t *testing.T) {
	entries := []models.CollectionEntry{
		entryFor("animals", "dir", "Dog"),
		entryFor("animals", "dir", "Cat"),
	}

	rejected, errs := DetectCollisions(entries, "")
	if len(rejected) != 0 || len(errs) != 0 {
		t.Errorf("expected no collisions, got %d rejected, %d errors", len(rejected), len(errs))
	}
}

func TestDetectCollisions_CaseOnlyNames(t *testing.T) {
	// Two types whose names differ only by case occupy the same output slot
	first := entryFor("animals", "dir", "Foo")
	second := entryFor("animals", "dir", "FOo")

	rejected, errs := DetectCollisions([]models.CollectionEntry{first, second}, "")

	if len(errs) != 1 {
		t.Fatalf("expected one collision error, got %d", len(errs))
	}
	if !rejected[first.Artifact] || !rejected[second.Artifact] {
		t.Error("both colliding artifacts must be rejected")
	}

	// Both source identities are reported
	err := errs[0]
	if err.ErrorCode() != errors.NameCollisionErrorCode {
		t.Errorf("expected NameCollisionError, got %s", err.ErrorCode())
	}
	ctx := err.Context()
	if ctx["first_type"] != "animals.Foo" || ctx["second_type"] != "animals.FOo" {
		t.Errorf("expected both identities in context, got %v", ctx)
	}
}

func TestDetectCollisions_SharedOutputRoot(t *testing.T) {
	// Same type name in different packages: distinct slots next to their
	// sources, but one slot when the round shares an output root
	first := entryFor("a", "dir/a", "Dog")
	second := entryFor("b", "dir/b", "Dog")
	entries := []models.CollectionEntry{first, second}

	rejected, errs := DetectCollisions(entries, "")
	if len(rejected) != 0 || len(errs) != 0 {
		t.Errorf("expected no collisions without an output root, got %d errors", len(errs))
	}

	rejected, errs = DetectCollisions(entries, "gen")
	if len(errs) != 1 {
		t.Fatalf("expected one collision under the shared root, got %d", len(errs))
	}
	if !rejected[first.Artifact] || !rejected[second.Artifact] {
		t.Error("both colliding artifacts must be rejected")
	}
	ctx := errs[0].Context()
	if ctx["first_type"] != "a.Dog" || ctx["second_type"] != "b.Dog" {
		t.Errorf("expected both identities in context, got %v", ctx)
	}
}

func TestDetectCollisions_SkipsFailedEntries(t *testing.T) {
	failed := models.CollectionEntry{Type: &models.TypeDescriptor{Name: "Broken"}}
	ok := entryFor("animals", "dir", "Dog")

	rejected, errs := DetectCollisions([]models.CollectionEntry{failed, ok}, "")
	if len(rejected) != 0 || len(errs) != 0 {
		t.Error("entries without artifacts must not participate in collision detection")
	}
}

func entryFor(pkg, dir, name string) models.CollectionEntry {
	desc := &models.TypeDescriptor{PackageName: pkg, PackageDir: dir, Name: name}
	artifact, err := NewArtifactBuilder().Build(desc, frozenSet("f"), true)
	if err != nil {
		panic(err)
	}
	return models.CollectionEntry{Type: desc, Artifact: artifact}
}
