package annotations

import (
	"testing"

	"github.com/toyz/fielder/internal/errors"
)

func TestIsAnnotation(t *testing.T) {
	tests := []struct {
		comment string
		want    bool
	}{
		{"//fielder::fieldable", true},
		{"  //fielder::fieldable", true},
		{"//fielder::fieldable -Debuggable=false", true},
		{"// fielder::fieldable", false},
		{"//axon::core", false},
		{"// plain comment", false},
	}

	for _, tt := range tests {
		if got := IsAnnotation(tt.comment); got != tt.want {
			t.Errorf("IsAnnotation(%q): expected %v, got %v", tt.comment, tt.want, got)
		}
	}
}

func TestParse_Fieldable(t *testing.T) {
	parser := NewParser()

	parsed, err := parser.Parse("//fielder::fieldable", errors.SourceLocation{File: "dog.go", Line: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Type != FieldableAnnotation {
		t.Errorf("expected fieldable, got %s", parsed.Type)
	}
	if len(parsed.Parameters) != 0 {
		t.Errorf("expected no parameters, got %v", parsed.Parameters)
	}
	if parsed.Location.File != "dog.go" || parsed.Location.Line != 3 {
		t.Errorf("location not carried through: %v", parsed.Location)
	}
}

func TestParse_DebuggableParameter(t *testing.T) {
	parser := NewParser()

	parsed, err := parser.Parse("//fielder::fieldable -Debuggable=false", errors.SourceLocation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !parsed.HasParam("Debuggable") {
		t.Fatal("expected Debuggable parameter")
	}
	if parsed.BoolParam("Debuggable", true) {
		t.Error("Debuggable=false should disable")
	}
}

func TestParse_OptionStringSemantics(t *testing.T) {
	// Only the exact value "false" disables; anything else keeps the default
	parser := NewParser()

	tests := []struct {
		annotation string
		want       bool
	}{
		{"//fielder::fieldable -Debuggable=false", false},
		{"//fielder::fieldable -Debuggable=False", true},
		{"//fielder::fieldable -Debuggable=FALSE", true},
		{"//fielder::fieldable -Debuggable=no", true},
		{"//fielder::fieldable -Debuggable=true", true},
		{"//fielder::fieldable", true},
	}

	for _, tt := range tests {
		parsed, err := parser.Parse(tt.annotation, errors.SourceLocation{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.annotation, err)
		}
		if got := parsed.BoolParam("Debuggable", true); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.annotation, tt.want, got)
		}
	}
}

func TestParse_BareFlagMeansTrue(t *testing.T) {
	parser := NewParser()

	parsed, err := parser.Parse("//fielder::fieldable -Debuggable", errors.SourceLocation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.HasParam("Debuggable") {
		t.Error("bare flag should count as written")
	}
	if !parsed.BoolParam("Debuggable", false) {
		t.Error("bare flag should mean true")
	}
}

func TestParse_UnknownParameter(t *testing.T) {
	parser := NewParser()

	_, err := parser.Parse("//fielder::fieldable -Bogus=1", errors.SourceLocation{File: "dog.go"})
	if err == nil {
		t.Fatal("expected syntax error for unknown parameter")
	}

	fielderErr, ok := err.(errors.FielderError)
	if !ok {
		t.Fatalf("expected FielderError, got %T", err)
	}
	if fielderErr.ErrorCode() != errors.SyntaxErrorCode {
		t.Errorf("expected SyntaxError, got %s", fielderErr.ErrorCode())
	}
}

func TestParse_UnknownAnnotationType(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Parse("//fielder::gettable", errors.SourceLocation{}); err == nil {
		t.Fatal("expected syntax error for unknown annotation type")
	}
}

func TestParse_Malformed(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Parse("//fielder::", errors.SourceLocation{}); err == nil {
		t.Fatal("expected syntax error for missing annotation type")
	}
}

func TestParse_QuotedParameterValue(t *testing.T) {
	parser := NewParser()

	parsed, err := parser.Parse(`//fielder::fieldable -Debuggable="false"`, errors.SourceLocation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.BoolParam("Debuggable", true) {
		t.Error("quoted false should still disable")
	}
}
