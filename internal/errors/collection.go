package errors

import (
	"fmt"
	"strings"
)

// Collection-specific error constructors. These cover the per-type failures
// that can occur while walking an embedding chain and building artifacts.

// NewCyclicHierarchyError creates an error for an embedding chain that loops
// back on itself. The chain slice holds the qualified type names in the order
// they were visited, ending with the type that closed the cycle.
func NewCyclicHierarchyError(typeName string, chain []string) *BaseError {
	message := fmt.Sprintf("embedding chain for type '%s' is cyclic: %s", typeName, strings.Join(chain, " -> "))
	return New(CyclicHierarchyErrorCode, message).
		WithContext("type_name", typeName).
		WithContext("chain", chain).
		WithSuggestions(
			"Remove the embedded field that closes the cycle",
			"A struct cannot transitively embed itself",
		)
}

// NewMalformedFieldError creates an error for a field descriptor with no name.
func NewMalformedFieldError(typeName string, fieldIndex int, loc SourceLocation) *BaseError {
	message := fmt.Sprintf("type '%s' declares a field with no name (index %d)", typeName, fieldIndex)
	return New(MalformedFieldErrorCode, message).
		WithLocation(loc).
		WithContext("type_name", typeName).
		WithContext("field_index", fieldIndex).
		WithSuggestions(
			"Check the struct declaration for a field that could not be named",
			"This type is skipped; other annotated types are still generated",
		)
}

// NewNameCollisionError creates an error for two distinct input types that
// resolve to the same generated output slot. Both identities are reported.
func NewNameCollisionError(slot, firstType, secondType string) *BaseError {
	message := fmt.Sprintf("types '%s' and '%s' both generate '%s'", firstType, secondType, slot)
	return New(NameCollisionErrorCode, message).
		WithContext("output_slot", slot).
		WithContext("first_type", firstType).
		WithContext("second_type", secondType).
		WithSuggestions(
			"Rename one of the colliding types",
			"Neither type was emitted",
		)
}

// NewWriteError creates an error for a failed artifact emission.
func NewWriteError(typeName, path string, cause error) *BaseError {
	message := fmt.Sprintf("unable to write fielder for type '%s': %v", typeName, cause)
	return Wrap(WriteErrorCode, message, cause).
		WithContext("type_name", typeName).
		WithContext("path", path).
		WithSuggestions(
			"Check write permissions for the target directory",
			"Verify there is enough disk space",
		)
}

// NewSyntaxError creates an error for a malformed //fielder:: annotation.
func NewSyntaxError(message string, loc SourceLocation) *BaseError {
	return New(SyntaxErrorCode, message).WithLocation(loc)
}

// NewConfigurationError creates an error for invalid generator configuration.
func NewConfigurationError(option, reason string) *BaseError {
	message := fmt.Sprintf("invalid configuration for '%s': %s", option, reason)
	return New(ConfigurationErrorCode, message).
		WithContext("option", option)
}
