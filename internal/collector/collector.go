// Package collector computes the deterministic, de-duplicated set of field
// names reachable from a type through its embedding chain.
package collector

import (
	"github.com/toyz/fielder/internal/errors"
	"github.com/toyz/fielder/internal/models"
)

// FieldCollector walks a descriptor's embedding chain and accumulates the
// declared field names, most-derived type first. It holds no state between
// calls; every Collect starts from an empty set.
type FieldCollector struct{}

// NewFieldCollector creates a new field collector
func NewFieldCollector() *FieldCollector {
	return &FieldCollector{}
}

// Collect returns the ordered, de-duplicated field names declared anywhere
// on the chain starting at desc. The returned set is frozen. Names are
// inserted in declaration order, most-derived type first; a name re-declared
// by an ancestor keeps its most-derived position and is not duplicated.
//
// A cyclic chain fails with CyclicHierarchyError; a field with no name fails
// with MalformedFieldError. Neither mutates desc.
func (c *FieldCollector) Collect(desc *models.TypeDescriptor) (*models.FieldNameSet, error) {
	if desc == nil {
		return nil, errors.New(errors.UnknownErrorCode, "type descriptor cannot be nil")
	}

	names := models.NewFieldNameSet()
	visited := make(map[*models.TypeDescriptor]struct{})
	var chain []string

	for current := desc; current != nil; current = current.Ancestor {
		if _, seen := visited[current]; seen {
			chain = append(chain, current.QualifiedName())
			return nil, errors.NewCyclicHierarchyError(desc.QualifiedName(), chain)
		}
		visited[current] = struct{}{}
		chain = append(chain, current.QualifiedName())

		for i, field := range current.Fields {
			if field.Name == "" {
				loc := errors.SourceLocation{File: field.FileName, Line: field.Line}
				return nil, errors.NewMalformedFieldError(current.QualifiedName(), i, loc)
			}
			names.Add(field.Name)
		}
	}

	return names.Freeze(), nil
}
