package match

import (
	"github.com/matzehuels/cgraph/pkg/cg"
	"github.com/matzehuels/cgraph/pkg/lattice"
)

// matchConcept compares two concepts, applying the coreference modes on top
// of the concept mode.
func (m *Matcher) matchConcept(a, b *cg.Concept, cfg *Config) (bool, *Result) {
	if cfg.CorefAutoMatch() && m.coref.AreCoreferent(a, b) {
		return true, nil
	}
	ok, nested := m.matchConceptBase(a, b, cfg)
	if !ok {
		return false, nil
	}
	if cfg.CorefAgreement() && !m.corefAgree(a, b, cfg) {
		return false, nil
	}
	return true, nested
}

func (m *Matcher) matchConceptBase(a, b *cg.Concept, cfg *Config) (bool, *Result) {
	switch cfg.Concept() {
	case ConceptInstance:
		return a == b || (a.Type == b.Type && a.Referent == b.Referent), nil
	case ConceptAnything:
		return true, nil
	case ConceptTypes:
		return matchTypes(a.Type, b.Type, cfg.ConceptType()), nil
	case ConceptReferents:
		return m.referents.CompareReferents(a.Referent, b.Referent, cfg)
	case ConceptAll:
		if !matchTypes(a.Type, b.Type, cfg.ConceptType()) {
			return false, nil
		}
		return m.referents.CompareReferents(a.Referent, b.Referent, cfg)
	case ConceptCoreferents:
		return m.coref.AreCoreferent(a, b), nil
	}
	return false, nil
}

// corefAgree reports whether every concept coreferent with a matches some
// concept coreferent with b.
func (m *Matcher) corefAgree(a, b *cg.Concept, cfg *Config) bool {
	others := m.coref.Closure(b)
	for _, x := range m.coref.Closure(a) {
		found := false
		for _, y := range others {
			if ok, _ := m.matchConceptBase(x, y, cfg); ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *Matcher) matchRelation(a, b *cg.Relation, cfg *Config) bool {
	switch cfg.Relation() {
	case RelationInstance:
		return a == b || (a.Type == b.Type && identicalArgs(a, b))
	case RelationAnything:
		return true
	case RelationTypes:
		return matchTypes(a.Type, b.Type, cfg.RelationType())
	case RelationArcs:
		return m.matchArcs(a, b, cfg)
	case RelationAll:
		return matchTypes(a.Type, b.Type, cfg.RelationType()) && m.matchArcs(a, b, cfg)
	}
	return false
}

func (m *Matcher) matchArcs(a, b *cg.Relation, cfg *Config) bool {
	switch cfg.Arc() {
	case ArcAnything:
		return true
	case ArcValence:
		return len(a.Args) == len(b.Args)
	case ArcInstance:
		return identicalArgs(a, b)
	case ArcConcept:
		if len(a.Args) != len(b.Args) || a.OutputStart != b.OutputStart {
			return false
		}
		for i := range a.Args {
			if ok, _ := m.matchConcept(a.Args[i], b.Args[i], cfg); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func identicalArgs(a, b *cg.Relation) bool {
	if len(a.Args) != len(b.Args) || a.OutputStart != b.OutputStart {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	return true
}

func matchTypes(a, b *lattice.Type, mode TypeMode) bool {
	switch mode {
	case TypeInstance:
		return a == b
	case TypeAnything:
		return true
	case TypeLabel:
		if a == b {
			return true
		}
		if a == nil || b == nil || a.Label() == "" || b.Label() == "" {
			return false
		}
		if l := a.Lattice(); l != nil && l == b.Lattice() {
			return l.SameLabel(a.Label(), b.Label())
		}
		return a.Label() == b.Label()
	case TypeSubtype:
		return subtypeOf(a, b)
	case TypeSupertype:
		return subtypeOf(b, a)
	case TypeComparable:
		return subtypeOf(a, b) || subtypeOf(b, a)
	}
	return false
}

// subtypeOf reports whether a is b or lies below it in their shared lattice.
func subtypeOf(a, b *lattice.Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	l := a.Lattice()
	if l == nil || l != b.Lattice() {
		return false
	}
	ok, _ := l.IsSubTypeOf(a, b)
	return ok
}
