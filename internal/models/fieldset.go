package models

import "strings"

// FieldNameSet is an insertion-ordered set of field names. Each name appears
// at most once; the first insertion wins the ordering position, so a name
// re-declared by an ancestor keeps the slot of its most-derived declaration.
type FieldNameSet struct {
	names  []string
	seen   map[string]struct{}
	frozen bool
}

// NewFieldNameSet creates an empty field name set
func NewFieldNameSet() *FieldNameSet {
	return &FieldNameSet{
		names: make([]string, 0),
		seen:  make(map[string]struct{}),
	}
}

// Add inserts a name if it is not already present. It returns true when the
// name was inserted. Adding to a frozen set is a no-op.
func (s *FieldNameSet) Add(name string) bool {
	if s.frozen {
		return false
	}
	if _, ok := s.seen[name]; ok {
		return false
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Contains reports whether the set holds the given name
func (s *FieldNameSet) Contains(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Freeze marks the set read-only. The collector freezes the set before
// handing it to the artifact builder.
func (s *FieldNameSet) Freeze() *FieldNameSet {
	s.frozen = true
	return s
}

// Frozen reports whether the set has been frozen
func (s *FieldNameSet) Frozen() bool {
	return s.frozen
}

// Len returns the number of names in the set
func (s *FieldNameSet) Len() int {
	return len(s.names)
}

// Names returns the names in insertion order. The returned slice is a copy.
func (s *FieldNameSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// String returns a readable form like [name, age]
func (s *FieldNameSet) String() string {
	return "[" + strings.Join(s.names, ", ") + "]"
}
