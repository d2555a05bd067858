package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"sort"
	"strings"

	"github.com/toyz/fielder/internal/annotations"
	"github.com/toyz/fielder/internal/errors"
	"github.com/toyz/fielder/internal/models"
)

// Discoverer supplies the annotated types for one processing round. The
// round orchestrator depends on this interface only, so a host build tool
// can inject its own discovery mechanism.
type Discoverer interface {
	Discover(dirs []string) (*Discovery, error)
}

// Discovery is the output of one discovery pass: the annotated type
// descriptors in discovery order, plus any diagnostics raised while linking
// the descriptor graph.
type Discovery struct {
	Types       []*models.TypeDescriptor
	Diagnostics []models.Diagnostic
}

// Parser discovers annotated structs by walking Go source files. It builds
// the full struct index for the scanned directories so embedding chains can
// be linked across packages, then returns descriptors for the annotated
// subset.
type Parser struct {
	fileSet     *token.FileSet
	annotations *annotations.Parser
}

// NewParser creates a new source discoverer
func NewParser() *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParser(),
	}
}

// rawStruct holds one struct declaration before ancestor linking
type rawStruct struct {
	packageName string
	packageDir  string
	name        string
	fields      []models.FieldDescriptor
	embedded    []embeddedRef
	annotation  *annotations.ParsedAnnotation
	fileName    string
	line        int
}

// embeddedRef is an embedded field before resolution
type embeddedRef struct {
	packageName string // "" for a same-package reference
	typeName    string
	line        int
}

// Discover scans the given directories and returns descriptors for every
// annotated struct, in discovery order.
func (p *Parser) Discover(dirs []string) (*Discovery, error) {
	var structs []*rawStruct
	var diags []models.Diagnostic

	for _, dir := range dirs {
		dirStructs, dirDiags, err := p.parseDirectory(dir)
		if err != nil {
			return nil, err
		}
		structs = append(structs, dirStructs...)
		diags = append(diags, dirDiags...)
	}

	return p.link(structs, diags), nil
}

// ParseSource parses source code from a string, for testing and for hosts
// that hold sources in memory.
func (p *Parser) ParseSource(filename, source string) (*Discovery, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(fmt.Sprintf("source %s", filename), err)
	}

	structs, diags := p.extractStructs(file, filename, "")
	return p.link(structs, diags), nil
}

// parseDirectory parses one package directory into raw struct declarations
func (p *Parser) parseDirectory(dir string) ([]*rawStruct, []models.Diagnostic, error) {
	pkgs, err := parser.ParseDir(p.fileSet, dir, sourceFileFilter, parser.ParseComments)
	if err != nil {
		return nil, nil, errors.WrapParseError(fmt.Sprintf("directory %s", dir), err)
	}

	if len(pkgs) == 0 {
		return nil, nil, nil
	}
	if len(pkgs) > 1 {
		return nil, nil, errors.Newf(errors.SyntaxErrorCode, "multiple packages found in directory %s", dir)
	}

	var structs []*rawStruct
	var diags []models.Diagnostic
	for _, pkg := range pkgs {
		// Deterministic file order regardless of map iteration
		fileNames := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			fileNames = append(fileNames, name)
		}
		sort.Strings(fileNames)

		for _, fileName := range fileNames {
			fileStructs, fileDiags := p.extractStructs(pkg.Files[fileName], fileName, dir)
			structs = append(structs, fileStructs...)
			diags = append(diags, fileDiags...)
		}
	}

	return structs, diags, nil
}

// sourceFileFilter excludes test files and previously generated output
func sourceFileFilter(info fs.FileInfo) bool {
	name := info.Name()
	return !strings.HasSuffix(name, "_test.go") &&
		!strings.HasSuffix(name, "_fielder_gen.go")
}

// extractStructs collects every struct declaration in a file, parsing the
// fielder annotation from the declaration doc comment when present. A bad
// annotation is reported as an error diagnostic against that type and the
// type is treated as unannotated.
func (p *Parser) extractStructs(file *ast.File, fileName, dir string) ([]*rawStruct, []models.Diagnostic) {
	var structs []*rawStruct
	var diags []models.Diagnostic

	packageName := file.Name.Name

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}

			raw := &rawStruct{
				packageName: packageName,
				packageDir:  dir,
				name:        typeSpec.Name.Name,
				fileName:    fileName,
				line:        p.fileSet.Position(typeSpec.Pos()).Line,
			}

			p.collectFields(raw, structType)

			annotation, annDiag := p.parseDocAnnotation(genDecl, typeSpec, fileName, packageName)
			if annDiag != nil {
				diags = append(diags, *annDiag)
			} else {
				raw.annotation = annotation
			}

			structs = append(structs, raw)
		}
	}

	return structs, diags
}

// collectFields fills in the declared fields and embedded references of a
// struct, in declaration order. Named fields become declared fields; an
// embedded struct field is an ancestor candidate, not a field.
func (p *Parser) collectFields(raw *rawStruct, structType *ast.StructType) {
	for _, field := range structType.Fields.List {
		line := p.fileSet.Position(field.Pos()).Line

		if len(field.Names) == 0 {
			if ref, ok := embeddedTypeRef(field.Type); ok {
				ref.line = line
				raw.embedded = append(raw.embedded, ref)
			}
			continue
		}

		for _, name := range field.Names {
			raw.fields = append(raw.fields, models.FieldDescriptor{
				Name:     name.Name,
				FileName: raw.fileName,
				Line:     line,
			})
		}
	}
}

// embeddedTypeRef resolves the type expression of an embedded field to a
// package/name reference. Pointers are followed; anything else (interfaces,
// instantiated generics) is ignored as an ancestor candidate.
func embeddedTypeRef(expr ast.Expr) (embeddedRef, bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		return embeddedRef{typeName: t.Name}, true
	case *ast.StarExpr:
		return embeddedTypeRef(t.X)
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return embeddedRef{packageName: pkg.Name, typeName: t.Sel.Name}, true
		}
	}
	return embeddedRef{}, false
}

// parseDocAnnotation extracts the //fielder:: annotation from a type
// declaration doc comment. Returns a diagnostic when the marker is present
// but malformed.
func (p *Parser) parseDocAnnotation(genDecl *ast.GenDecl, typeSpec *ast.TypeSpec, fileName, packageName string) (*annotations.ParsedAnnotation, *models.Diagnostic) {
	doc := typeSpec.Doc
	if doc == nil {
		doc = genDecl.Doc
	}
	if doc == nil {
		return nil, nil
	}

	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}

		loc := errors.SourceLocation{
			File: fileName,
			Line: p.fileSet.Position(comment.Pos()).Line,
		}
		parsed, err := p.annotations.Parse(comment.Text, loc)
		if err != nil {
			diag := models.ErrorDiag(packageName+"."+typeSpec.Name.Name, "%v", err)
			return nil, &diag
		}
		return parsed, nil
	}

	return nil, nil
}

// dirKey addresses a struct inside one package directory
type dirKey struct {
	dir  string
	name string
}

// link resolves embedded references into ancestor pointers and returns the
// annotated descriptors in discovery order.
func (p *Parser) link(structs []*rawStruct, diags []models.Diagnostic) *Discovery {
	// Two indexes: same-package references must resolve inside the declaring
	// directory (two scanned directories may share a package name), selector
	// references resolve by package name across the scanned set.
	descriptors := make(map[*rawStruct]*models.TypeDescriptor, len(structs))
	byDir := make(map[dirKey]*rawStruct)
	byName := make(map[string]*rawStruct)
	for _, raw := range structs {
		descriptors[raw] = &models.TypeDescriptor{
			PackageName: raw.packageName,
			PackageDir:  raw.packageDir,
			Name:        raw.name,
			Fields:      raw.fields,
			FileName:    raw.fileName,
			Line:        raw.line,
		}
		local := dirKey{dir: raw.packageDir, name: raw.name}
		if _, exists := byDir[local]; !exists {
			byDir[local] = raw
		}
		key := raw.packageName + "." + raw.name
		if _, exists := byName[key]; !exists {
			byName[key] = raw
		}
	}

	for _, raw := range structs {
		desc := descriptors[raw]

		if len(raw.embedded) > 1 {
			diags = append(diags, models.WarningDiag(desc.QualifiedName(),
				"struct embeds %d types; only the first (%s) is treated as the ancestor",
				len(raw.embedded), raw.embedded[0].typeName))
		}

		if len(raw.embedded) == 0 {
			continue
		}

		ref := raw.embedded[0]
		var ancestor *rawStruct
		var ok bool
		pkg := ref.packageName
		if pkg == "" {
			pkg = raw.packageName
			ancestor, ok = byDir[dirKey{dir: raw.packageDir, name: ref.typeName}]
		} else {
			ancestor, ok = byName[pkg+"."+ref.typeName]
		}
		if !ok {
			diags = append(diags, models.NoteDiag(desc.QualifiedName(),
				"ancestor type %s.%s is outside the scanned set; treating %s as the chain root",
				pkg, ref.typeName, raw.name))
			continue
		}
		desc.Ancestor = descriptors[ancestor]
	}

	discovery := &Discovery{Diagnostics: diags}
	for _, raw := range structs {
		if raw.annotation == nil {
			continue
		}
		desc := descriptors[raw]
		if raw.annotation.HasParam("Debuggable") {
			debuggable := raw.annotation.BoolParam("Debuggable", true)
			desc.Debuggable = &debuggable
		}
		discovery.Types = append(discovery.Types, desc)
	}

	return discovery
}
