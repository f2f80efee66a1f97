package lattice

import (
	"github.com/google/uuid"

	"github.com/matzehuels/cgraph/pkg/poset"
)

// Type is an opaque type identity with an optional unique label and an
// optional structural definition. The definition is never inspected by the
// lattice.
//
// A Type belongs to at most one [Lattice] at a time. It outlives removal
// from its lattice and can be added to another one afterwards.
type Type struct {
	id         uuid.UUID
	label      string
	definition any

	lattice *Lattice
	node    poset.ID
}

// NewType creates a detached type. An empty label means unlabeled.
func NewType(label string) *Type {
	return &Type{id: uuid.New(), label: label}
}

// NewDefinedType creates a detached type carrying a structural definition.
func NewDefinedType(label string, definition any) *Type {
	t := NewType(label)
	t.definition = definition
	return t
}

// ID returns the type's stable identity.
func (t *Type) ID() uuid.UUID { return t.id }

// Label returns the type's label, or "" if unlabeled.
func (t *Type) Label() string { return t.label }

// Definition returns the structural definition, or nil.
func (t *Type) Definition() any { return t.definition }

// Lattice returns the lattice the type currently belongs to, or nil.
func (t *Type) Lattice() *Lattice { return t.lattice }

// String returns the label, or a short form of the ID for unlabeled types.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.label != "" {
		return t.label
	}
	return "#" + t.id.String()[:8]
}
