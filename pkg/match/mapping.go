package match

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cgraph/pkg/cg"
)

// ConceptPair is one concept correspondence. Nested holds the descriptor
// match found while comparing the two concepts, if any.
type ConceptPair struct {
	First, Second *cg.Concept
	Nested        *Result
}

// RelationPair is one relation correspondence.
type RelationPair struct {
	First, Second *cg.Relation
}

// Mapping is one correspondence between the elements of two graphs. It is
// a snapshot and does not change when the generator advances.
type Mapping struct {
	First, Second Graph
	Concepts      []ConceptPair
	Relations     []RelationPair
}

// ConceptImage returns the second-graph concepts c is mapped to.
func (m *Mapping) ConceptImage(c *cg.Concept) []*cg.Concept {
	var out []*cg.Concept
	for _, p := range m.Concepts {
		if p.First == c {
			out = append(out, p.Second)
		}
	}
	return out
}

// RelationImage returns the second-graph relations r is mapped to.
func (m *Mapping) RelationImage(r *cg.Relation) []*cg.Relation {
	var out []*cg.Relation
	for _, p := range m.Relations {
		if p.First == r {
			out = append(out, p.Second)
		}
	}
	return out
}

// Connected reports whether the relation pairs agree with the concept
// pairs: for every mapped relation, its n-th argument must be mapped to the
// n-th argument of its image.
func (m *Mapping) Connected() bool {
	pairs := make(map[[2]*cg.Concept]bool, len(m.Concepts))
	for _, p := range m.Concepts {
		pairs[[2]*cg.Concept{p.First, p.Second}] = true
	}
	for _, rp := range m.Relations {
		if len(rp.First.Args) != len(rp.Second.Args) {
			return false
		}
		for i, a := range rp.First.Args {
			if !pairs[[2]*cg.Concept{a, rp.Second.Args[i]}] {
				return false
			}
		}
	}
	return true
}

// String lists the pairs by element handle, concepts first.
func (m *Mapping) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, p := range m.Concepts {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "c%d->c%d", p.First.ID(), p.Second.ID())
	}
	b.WriteString(";")
	for i, p := range m.Relations {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, " r%d->r%d", p.First.ID(), p.Second.ID())
	}
	b.WriteString("}")
	return b.String()
}

// Result is the outcome of a match.
type Result struct {
	matched  bool
	mappings []*Mapping
}

// Matched reports whether the match succeeded. A nil Result did not match.
func (r *Result) Matched() bool { return r != nil && r.matched }

// Mappings returns the mappings found, if the match enumerated any.
func (r *Result) Mappings() []*Mapping {
	if r == nil {
		return nil
	}
	return r.mappings
}
