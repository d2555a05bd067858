package emitter

// fielderTemplate renders one generated companion type. The output runs
// through goimports before being written, so layout here only needs to be
// valid Go, not pretty.
const fielderTemplate = `// Code generated by fielder. DO NOT EDIT.

package {{.Package}}

// {{.TypeName}} enumerates the field names declared across {{.SourceName}}
// and its embedded chain.
type {{.TypeName}} struct{}

var {{.BackingVar}} = []string{
{{- range .FieldNames}}
	{{printf "%q" .}},
{{- end}}
}

// FieldNames returns the ordered field names. The returned slice is a copy.
func ({{.TypeName}}) FieldNames() []string {
	out := make([]string, len({{.BackingVar}}))
	copy(out, {{.BackingVar}})
	return out
}
{{- if .Debuggable}}

// String returns a human-readable description of the generated set.
func ({{.TypeName}}) String() string {
	return {{printf "%q" .DebugString}}
}
{{- end}}
`

// fielderTemplateData is the data handed to fielderTemplate
type fielderTemplateData struct {
	Package     string
	TypeName    string
	SourceName  string
	BackingVar  string
	FieldNames  []string
	Debuggable  bool
	DebugString string
}
