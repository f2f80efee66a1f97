package cg

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/cgraph/pkg/errors"
)

// Quantifier is the quantifier of a referent.
type Quantifier int

const (
	// Existential is the default "some" quantifier.
	Existential Quantifier = iota
	// Universal reads as "every".
	Universal
	// Collective denotes a set taken as a whole.
	Collective
	// Distributive denotes a set taken member by member.
	Distributive
)

var quantifierNames = [...]string{"existential", "universal", "collective", "distributive"}

// Valid reports whether q is a known quantifier.
func (q Quantifier) Valid() bool { return q >= 0 && int(q) < len(quantifierNames) }

func (q Quantifier) String() string {
	if !q.Valid() {
		return "quantifier(" + strconv.Itoa(int(q)) + ")"
	}
	return quantifierNames[q]
}

// ParseQuantifier returns the quantifier named s. The empty string is
// Existential.
func ParseQuantifier(s string) (Quantifier, error) {
	if s == "" {
		return Existential, nil
	}
	for i, name := range quantifierNames {
		if name == s {
			return Quantifier(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown quantifier %q", s)
}

// Designator identifies what a referent denotes.
type Designator interface {
	// Equal reports whether two designators denote the same thing.
	Equal(other Designator) bool
	String() string
}

// Marker is an individual marker: a numeric handle for one individual.
type Marker struct {
	ID int
}

// Equal implements Designator.
func (m *Marker) Equal(other Designator) bool {
	o, ok := other.(*Marker)
	return ok && m != nil && o != nil && m.ID == o.ID
}

func (m *Marker) String() string { return "#" + strconv.Itoa(m.ID) }

// Literal is a literal value such as a number or a quoted string.
type Literal struct {
	Value string
}

// Equal implements Designator.
func (l Literal) Equal(other Designator) bool {
	o, ok := other.(Literal)
	return ok && l.Value == o.Value
}

func (l Literal) String() string { return strconv.Quote(l.Value) }

// Name is a proper name.
type Name struct {
	Value string
}

// Equal implements Designator.
func (n Name) Equal(other Designator) bool {
	o, ok := other.(Name)
	return ok && n.Value == o.Value
}

func (n Name) String() string { return "'" + n.Value + "'" }

// Referent is the referent field of a concept.
type Referent struct {
	Quantifier Quantifier
	Designator Designator
	// Descriptor is a nested graph describing the referent, or nil.
	Descriptor *Graph
}

// Individual returns an existential referent designated by marker id.
func Individual(id int) *Referent {
	return &Referent{Designator: &Marker{ID: id}}
}

// Marker returns the referent's individual marker, or nil.
func (r *Referent) Marker() *Marker {
	if r == nil {
		return nil
	}
	m, _ := r.Designator.(*Marker)
	return m
}

// IsGeneric reports whether r has no designator and no descriptor.
func (r *Referent) IsGeneric() bool {
	return r == nil || (r.Designator == nil && r.Descriptor == nil)
}

func (r *Referent) String() string {
	if r == nil {
		return ""
	}
	s := ""
	if r.Quantifier != Existential {
		s = r.Quantifier.String()
	}
	if r.Designator != nil {
		if s != "" {
			s += " "
		}
		s += r.Designator.String()
	}
	if r.Descriptor != nil {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("{%d concepts, %d relations}", len(r.Descriptor.concepts), len(r.Descriptor.relations))
	}
	return s
}
