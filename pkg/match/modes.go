package match

import (
	"strconv"

	"github.com/matzehuels/cgraph/pkg/errors"
)

// GraphMode selects how whole graphs are compared.
type GraphMode int

const (
	// GraphInstance matches a graph only with itself.
	GraphInstance GraphMode = iota
	// GraphAnything matches any two graphs.
	GraphAnything
	// GraphComplete requires every element of both graphs to be mapped.
	GraphComplete
	// GraphSubgraph requires every element of the first graph to be mapped.
	GraphSubgraph
	// GraphProperSubgraph is GraphSubgraph where the image leaves at least
	// one element of the second graph unmapped.
	GraphProperSubgraph
)

// ConceptMode selects how two concepts are compared.
type ConceptMode int

const (
	// ConceptInstance matches concepts sharing the same type and referent
	// instances.
	ConceptInstance ConceptMode = iota
	ConceptAnything
	// ConceptTypes compares types only, using the concept type mode.
	ConceptTypes
	// ConceptReferents compares referents only.
	ConceptReferents
	// ConceptAll compares types and referents.
	ConceptAll
	// ConceptCoreferents matches coreferent concepts.
	ConceptCoreferents
)

// RelationMode selects how two relations are compared.
type RelationMode int

const (
	// RelationInstance matches relations sharing the same type instance and
	// identical arguments.
	RelationInstance RelationMode = iota
	RelationAnything
	// RelationTypes compares types only, using the relation type mode.
	RelationTypes
	// RelationArcs compares arguments only, using the arc mode.
	RelationArcs
	// RelationAll compares types and arguments.
	RelationAll
)

// TypeMode selects how the types of two elements are compared. Subtype
// tests consult the lattice both types belong to. Types from different
// lattices only match under TypeInstance semantics.
type TypeMode int

const (
	TypeInstance TypeMode = iota
	TypeAnything
	// TypeLabel matches types with equal labels under the lattice's case
	// rule.
	TypeLabel
	// TypeSubtype matches when the first type is a subtype of the second.
	TypeSubtype
	// TypeSupertype matches when the first type is a supertype of the
	// second.
	TypeSupertype
	// TypeComparable matches when either type is a subtype of the other.
	TypeComparable
)

// QuantifierMode selects how referent quantifiers are compared.
type QuantifierMode int

const (
	QuantifierEqual QuantifierMode = iota
	QuantifierAnything
)

// DesignatorMode selects how referent designators are compared.
type DesignatorMode int

const (
	// DesignatorEqual requires both designators to be absent or equal.
	// Individual markers are compared with the marker mode.
	DesignatorEqual DesignatorMode = iota
	DesignatorAnything
	// DesignatorGeneralizes is DesignatorEqual except that an absent first
	// designator matches anything.
	DesignatorGeneralizes
)

// MarkerMode selects how two individual markers are compared.
type MarkerMode int

const (
	// MarkerInstance matches the same marker instance.
	MarkerInstance MarkerMode = iota
	MarkerAnything
	// MarkerID matches markers with equal ids.
	MarkerID
	// MarkerComparator delegates to the configured comparator.
	MarkerComparator
)

// ArcMode selects how relation arguments are compared.
type ArcMode int

const (
	// ArcInstance requires identical argument concepts.
	ArcInstance ArcMode = iota
	// ArcConcept matches arguments position by position with the concept
	// matcher.
	ArcConcept
	// ArcValence only requires the same number of arguments.
	ArcValence
	ArcAnything
)

// Fold selects which side of a match may reuse nodes.
type Fold int

const (
	FoldNone Fold = iota
	// FoldFirst lets one first-graph node map to several second-graph nodes.
	// It only takes effect under GraphComplete.
	FoldFirst
	// FoldSecond lets several first-graph nodes map to one second-graph node.
	FoldSecond
	FoldBoth
)

func (f Fold) first() bool  { return f == FoldFirst || f == FoldBoth }
func (f Fold) second() bool { return f == FoldSecond || f == FoldBoth }

var (
	graphModeNames      = []string{"instance", "anything", "complete", "subgraph", "proper-subgraph"}
	conceptModeNames    = []string{"instance", "anything", "types", "referents", "all", "coreferents"}
	relationModeNames   = []string{"instance", "anything", "types", "arcs", "all"}
	typeModeNames       = []string{"instance", "anything", "label", "subtype", "supertype", "comparable"}
	quantifierModeNames = []string{"equal", "anything"}
	designatorModeNames = []string{"equal", "anything", "generalizes"}
	markerModeNames     = []string{"instance", "anything", "id", "comparator"}
	arcModeNames        = []string{"instance", "concept", "valence", "anything"}
	foldNames           = []string{"none", "first", "second", "both"}
)

func (m GraphMode) Valid() bool      { return valid(int(m), graphModeNames) }
func (m ConceptMode) Valid() bool    { return valid(int(m), conceptModeNames) }
func (m RelationMode) Valid() bool   { return valid(int(m), relationModeNames) }
func (m TypeMode) Valid() bool       { return valid(int(m), typeModeNames) }
func (m QuantifierMode) Valid() bool { return valid(int(m), quantifierModeNames) }
func (m DesignatorMode) Valid() bool { return valid(int(m), designatorModeNames) }
func (m MarkerMode) Valid() bool     { return valid(int(m), markerModeNames) }
func (m ArcMode) Valid() bool        { return valid(int(m), arcModeNames) }
func (f Fold) Valid() bool           { return valid(int(f), foldNames) }

func (m GraphMode) String() string      { return name(int(m), graphModeNames) }
func (m ConceptMode) String() string    { return name(int(m), conceptModeNames) }
func (m RelationMode) String() string   { return name(int(m), relationModeNames) }
func (m TypeMode) String() string       { return name(int(m), typeModeNames) }
func (m QuantifierMode) String() string { return name(int(m), quantifierModeNames) }
func (m DesignatorMode) String() string { return name(int(m), designatorModeNames) }
func (m MarkerMode) String() string     { return name(int(m), markerModeNames) }
func (m ArcMode) String() string        { return name(int(m), arcModeNames) }
func (f Fold) String() string           { return name(int(f), foldNames) }

// ParseGraphMode returns the graph mode with the given name.
func ParseGraphMode(s string) (GraphMode, error) { return parse[GraphMode]("graph", graphModeNames, s) }

// ParseConceptMode returns the concept mode with the given name.
func ParseConceptMode(s string) (ConceptMode, error) {
	return parse[ConceptMode]("concept", conceptModeNames, s)
}

// ParseRelationMode returns the relation mode with the given name.
func ParseRelationMode(s string) (RelationMode, error) {
	return parse[RelationMode]("relation", relationModeNames, s)
}

// ParseTypeMode returns the type mode with the given name.
func ParseTypeMode(s string) (TypeMode, error) { return parse[TypeMode]("type", typeModeNames, s) }

// ParseQuantifierMode returns the quantifier mode with the given name.
func ParseQuantifierMode(s string) (QuantifierMode, error) {
	return parse[QuantifierMode]("quantifier", quantifierModeNames, s)
}

// ParseDesignatorMode returns the designator mode with the given name.
func ParseDesignatorMode(s string) (DesignatorMode, error) {
	return parse[DesignatorMode]("designator", designatorModeNames, s)
}

// ParseMarkerMode returns the marker mode with the given name.
func ParseMarkerMode(s string) (MarkerMode, error) {
	return parse[MarkerMode]("marker", markerModeNames, s)
}

// ParseArcMode returns the arc mode with the given name.
func ParseArcMode(s string) (ArcMode, error) { return parse[ArcMode]("arc", arcModeNames, s) }

// ParseFold returns the fold setting with the given name.
func ParseFold(s string) (Fold, error) { return parse[Fold]("fold", foldNames, s) }

func valid(v int, names []string) bool { return v >= 0 && v < len(names) }

func name(v int, names []string) string {
	if !valid(v, names) {
		return "invalid(" + strconv.Itoa(v) + ")"
	}
	return names[v]
}

func parse[M ~int](kind string, names []string, s string) (M, error) {
	for i, n := range names {
		if n == s {
			return M(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidConfiguration, "unknown %s mode %q", kind, s)
}
