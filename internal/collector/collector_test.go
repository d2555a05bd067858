package collector

import (
	"reflect"
	"testing"

	"github.com/toyz/fielder/internal/errors"
	"github.com/toyz/fielder/internal/models"
)

func descriptor(name string, ancestor *models.TypeDescriptor, fields ...string) *models.TypeDescriptor {
	desc := &models.TypeDescriptor{
		PackageName: "animals",
		Name:        name,
		Ancestor:    ancestor,
	}
	for _, field := range fields {
		desc.Fields = append(desc.Fields, models.FieldDescriptor{Name: field})
	}
	return desc
}

func TestCollect_RootType(t *testing.T) {
	animal := descriptor("Animal", nil, "name", "age")

	names, err := NewFieldCollector().Collect(animal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"name", "age"}
	if !reflect.DeepEqual(names.Names(), want) {
		t.Errorf("expected %v, got %v", want, names.Names())
	}
	if !names.Frozen() {
		t.Error("expected collected set to be frozen")
	}
}

func TestCollect_InheritedFields(t *testing.T) {
	animal := descriptor("Animal", nil, "name", "age")
	dog := descriptor("Dog", animal, "breed")

	names, err := NewFieldCollector().Collect(dog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Most-derived declarations come first
	want := []string{"breed", "name", "age"}
	if !reflect.DeepEqual(names.Names(), want) {
		t.Errorf("expected %v, got %v", want, names.Names())
	}
}

func TestCollect_ShadowedFieldKeepsDerivedPosition(t *testing.T) {
	animal := descriptor("Animal", nil, "name", "age")
	cat := descriptor("Cat", animal, "name", "claws")

	names, err := NewFieldCollector().Collect(cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"name", "claws", "age"}
	if !reflect.DeepEqual(names.Names(), want) {
		t.Errorf("expected %v, got %v", want, names.Names())
	}
}

func TestCollect_Deterministic(t *testing.T) {
	animal := descriptor("Animal", nil, "name", "age")
	dog := descriptor("Dog", animal, "breed", "name")

	c := NewFieldCollector()
	first, err := c.Collect(dog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Collect(dog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Names(), second.Names()) {
		t.Errorf("two runs differ: %v vs %v", first.Names(), second.Names())
	}
}

func TestCollect_DeepChain(t *testing.T) {
	// A five-deep chain terminates and visits every level
	root := descriptor("L0", nil, "f0")
	current := root
	for i, name := range []string{"f1", "f2", "f3", "f4"} {
		current = descriptor("L"+string(rune('1'+i)), current, name)
	}

	names, err := NewFieldCollector().Collect(current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"f4", "f3", "f2", "f1", "f0"}
	if !reflect.DeepEqual(names.Names(), want) {
		t.Errorf("expected %v, got %v", want, names.Names())
	}
}

func TestCollect_CyclicChain(t *testing.T) {
	a := descriptor("A", nil, "x")
	b := descriptor("B", a, "y")
	a.Ancestor = b // close the cycle

	_, err := NewFieldCollector().Collect(a)
	if err == nil {
		t.Fatal("expected CyclicHierarchyError")
	}

	fielderErr, ok := err.(errors.FielderError)
	if !ok {
		t.Fatalf("expected FielderError, got %T", err)
	}
	if fielderErr.ErrorCode() != errors.CyclicHierarchyErrorCode {
		t.Errorf("expected CyclicHierarchyError, got %s", fielderErr.ErrorCode())
	}
}

func TestCollect_MalformedField(t *testing.T) {
	desc := descriptor("Broken", nil, "good")
	desc.Fields = append(desc.Fields, models.FieldDescriptor{Name: "", FileName: "broken.go", Line: 7})

	_, err := NewFieldCollector().Collect(desc)
	if err == nil {
		t.Fatal("expected MalformedFieldError")
	}

	fielderErr, ok := err.(errors.FielderError)
	if !ok {
		t.Fatalf("expected FielderError, got %T", err)
	}
	if fielderErr.ErrorCode() != errors.MalformedFieldErrorCode {
		t.Errorf("expected MalformedFieldError, got %s", fielderErr.ErrorCode())
	}
	if fielderErr.Location().File != "broken.go" {
		t.Errorf("expected location broken.go, got %s", fielderErr.Location().File)
	}
}

func TestCollect_NilDescriptor(t *testing.T) {
	_, err := NewFieldCollector().Collect(nil)
	if err == nil {
		t.Fatal("expected error for nil descriptor")
	}
}

func TestCollect_DoesNotMutateDescriptor(t *testing.T) {
	animal := descriptor("Animal", nil, "name")
	dog := descriptor("Dog", animal, "breed")

	if _, err := NewFieldCollector().Collect(dog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dog.Fields) != 1 || dog.Fields[0].Name != "breed" {
		t.Errorf("descriptor fields were mutated: %v", dog.Fields)
	}
	if dog.Ancestor != animal {
		t.Error("descriptor ancestor was mutated")
	}
}
