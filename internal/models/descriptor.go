package models

// FieldDescriptor represents a single field declared directly on a type
type FieldDescriptor struct {
	Name string `json:"name"`

	// Source location for error reporting
	FileName string `json:"file_name"`
	Line     int    `json:"line"`
}

// TypeDescriptor is a read-only description of one struct in the scanned
// type universe. It is built by the discovery layer and never mutated by the
// collector or the builder. Fields holds only the directly-declared fields;
// inherited fields are reached through Ancestor.
type TypeDescriptor struct {
	// PackageName is the declared package name ("" for a descriptor built
	// without package context, e.g. in tests)
	PackageName string `json:"package_name"`

	// PackageDir is the directory the type was discovered in
	PackageDir string `json:"package_dir"`

	// Name is the simple type name
	Name string `json:"name"`

	// Fields are the directly-declared fields in declaration order
	Fields []FieldDescriptor `json:"fields"`

	// Ancestor is the direct ancestor descriptor, nil at the root of the
	// embedding chain
	Ancestor *TypeDescriptor `json:"-"`

	// Debuggable overrides the round-level debuggable option for this one
	// type when set via the annotation (-Debuggable=false)
	Debuggable *bool `json:"debuggable,omitempty"`

	// Source location of the type declaration
	FileName string `json:"file_name"`
	Line     int    `json:"line"`
}

// QualifiedName returns the package-qualified type name, or the simple name
// when the descriptor has no package.
func (d *TypeDescriptor) QualifiedName() string {
	if d.PackageName == "" {
		return d.Name
	}
	return d.PackageName + "." + d.Name
}
