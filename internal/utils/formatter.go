package utils

import (
	"fmt"
	"go/parser"
	"go/token"

	"golang.org/x/tools/imports"
)

// GoImportsAndFormat formats Go source and fixes its import block using the
// goimports machinery. Generated files go through this before being written.
func GoImportsAndFormat(source []byte, filename string) ([]byte, error) {
	options := &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	}

	formatted, err := imports.Process(filename, source, options)
	if err != nil {
		// Distinguish a syntax problem in the rendered code from a pure
		// formatting failure, to make template bugs easier to spot
		fset := token.NewFileSet()
		if _, parseErr := parser.ParseFile(fset, filename, source, parser.ParseComments); parseErr != nil {
			return nil, fmt.Errorf("generated code is not valid Go: %w", parseErr)
		}
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}

	return formatted, nil
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
