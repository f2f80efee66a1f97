package match

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cgraph/pkg/cg"
	"github.com/matzehuels/cgraph/pkg/errors"
)

// MarkerComparatorFunc decides whether two individual markers denote the same
// individual.
type MarkerComparatorFunc func(a, b *cg.Marker) bool

// Config is a validated, immutable bundle of matching modes.
//
// Build one with [NewConfig] or start from a preset ([Isomorphism],
// [Projection], [Subgraph]) and derive variants with [Config.With]. A Config
// is never modified by matching and may be shared freely.
type Config struct {
	graph          GraphMode
	concept        ConceptMode
	relation       RelationMode
	conceptType    TypeMode
	relationType   TypeMode
	quantifier     QuantifierMode
	designator     DesignatorMode
	marker         MarkerMode
	arc            ArcMode
	corefAutoMatch bool
	corefAgreement bool
	fold           Fold
	connected      bool
	maxResults     int

	markerCmp MarkerComparatorFunc
	nested    *Config
}

// Option sets one field of a Config under construction.
type Option func(*Config)

func WithGraph(m GraphMode) Option           { return func(c *Config) { c.graph = m } }
func WithConcept(m ConceptMode) Option       { return func(c *Config) { c.concept = m } }
func WithRelation(m RelationMode) Option     { return func(c *Config) { c.relation = m } }
func WithConceptType(m TypeMode) Option      { return func(c *Config) { c.conceptType = m } }
func WithRelationType(m TypeMode) Option     { return func(c *Config) { c.relationType = m } }
func WithQuantifier(m QuantifierMode) Option { return func(c *Config) { c.quantifier = m } }
func WithDesignator(m DesignatorMode) Option { return func(c *Config) { c.designator = m } }
func WithArc(m ArcMode) Option               { return func(c *Config) { c.arc = m } }
func WithCorefAutoMatch(on bool) Option      { return func(c *Config) { c.corefAutoMatch = on } }
func WithCorefAgreement(on bool) Option      { return func(c *Config) { c.corefAgreement = on } }
func WithFold(f Fold) Option                 { return func(c *Config) { c.fold = f } }
func WithConnected(on bool) Option           { return func(c *Config) { c.connected = on } }
func WithMaxResults(n int) Option            { return func(c *Config) { c.maxResults = n } }
func WithMarker(m MarkerMode) Option         { return func(c *Config) { c.marker = m } }
func WithNested(nested *Config) Option       { return func(c *Config) { c.nested = nested } }

// WithMarkerComparator selects MarkerComparator and installs fn.
func WithMarkerComparator(fn MarkerComparatorFunc) Option {
	return func(c *Config) {
		c.marker = MarkerComparator
		c.markerCmp = fn
	}
}

// NewConfig builds a Config from the defaults of [Isomorphism] overridden by
// opts.
//
// Returns INVALID_CONFIGURATION if a mode is out of range, maxResults is
// negative, or a marker comparator is present without MarkerComparator (or
// missing with it).
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		graph:        GraphComplete,
		concept:      ConceptAll,
		relation:     RelationAll,
		conceptType:  TypeInstance,
		relationType: TypeInstance,
		quantifier:   QuantifierEqual,
		designator:   DesignatorEqual,
		marker:       MarkerID,
		arc:          ArcConcept,
		fold:         FoldNone,
		connected:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// With returns a copy of c with opts applied. c itself is unchanged. A copy
// of a config whose nested config is itself stays self-nested.
func (c *Config) With(opts ...Option) (*Config, error) {
	cp := *c
	for _, opt := range opts {
		opt(&cp)
	}
	if cp.marker != MarkerComparator && c.marker == MarkerComparator && cp.markerCmp != nil {
		// Leaving comparator mode drops the inherited comparator.
		cp.markerCmp = nil
	}
	if err := cp.validate(); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (c *Config) validate() error {
	checks := []struct {
		ok   bool
		name string
		val  fmt.Stringer
	}{
		{c.graph.Valid(), "graph", c.graph},
		{c.concept.Valid(), "concept", c.concept},
		{c.relation.Valid(), "relation", c.relation},
		{c.conceptType.Valid(), "concept type", c.conceptType},
		{c.relationType.Valid(), "relation type", c.relationType},
		{c.quantifier.Valid(), "quantifier", c.quantifier},
		{c.designator.Valid(), "designator", c.designator},
		{c.marker.Valid(), "marker", c.marker},
		{c.arc.Valid(), "arc", c.arc},
		{c.fold.Valid(), "fold", c.fold},
	}
	for _, ch := range checks {
		if !ch.ok {
			return errors.New(errors.ErrCodeInvalidConfiguration, "%s mode out of range: %s", ch.name, ch.val)
		}
	}
	if c.maxResults < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "max results must not be negative, got %d", c.maxResults)
	}
	if c.marker == MarkerComparator && c.markerCmp == nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "marker mode %s requires a comparator", c.marker)
	}
	if c.marker != MarkerComparator && c.markerCmp != nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "marker comparator given for marker mode %s", c.marker)
	}
	return nil
}

func (c *Config) Graph() GraphMode                       { return c.graph }
func (c *Config) Concept() ConceptMode                   { return c.concept }
func (c *Config) Relation() RelationMode                 { return c.relation }
func (c *Config) ConceptType() TypeMode                  { return c.conceptType }
func (c *Config) RelationType() TypeMode                 { return c.relationType }
func (c *Config) Quantifier() QuantifierMode             { return c.quantifier }
func (c *Config) Designator() DesignatorMode             { return c.designator }
func (c *Config) Marker() MarkerMode                     { return c.marker }
func (c *Config) Arc() ArcMode                           { return c.arc }
func (c *Config) CorefAutoMatch() bool                   { return c.corefAutoMatch }
func (c *Config) CorefAgreement() bool                   { return c.corefAgreement }
func (c *Config) Fold() Fold                             { return c.fold }
func (c *Config) Connected() bool                        { return c.connected }
func (c *Config) MarkerComparator() MarkerComparatorFunc { return c.markerCmp }

// MaxResults returns the result bound. Zero means unbounded.
func (c *Config) MaxResults() int { return c.maxResults }

// Nested returns the config used for descriptor graphs. It defaults to c.
func (c *Config) Nested() *Config {
	if c.nested == nil {
		return c
	}
	return c.nested
}

// String lists every mode as name=value pairs.
func (c *Config) String() string {
	parts := []string{
		"graph=" + c.graph.String(),
		"concept=" + c.concept.String(),
		"relation=" + c.relation.String(),
		"concept-type=" + c.conceptType.String(),
		"relation-type=" + c.relationType.String(),
		"quantifier=" + c.quantifier.String(),
		"designator=" + c.designator.String(),
		"marker=" + c.marker.String(),
		"arc=" + c.arc.String(),
		"fold=" + c.fold.String(),
		fmt.Sprintf("coref-automatch=%t", c.corefAutoMatch),
		fmt.Sprintf("coref-agreement=%t", c.corefAgreement),
		fmt.Sprintf("connected=%t", c.connected),
		fmt.Sprintf("max-results=%d", c.maxResults),
	}
	if c.nested != nil {
		parts = append(parts, "nested=custom")
	}
	return strings.Join(parts, " ")
}

// Isomorphism returns the config under which two graphs match when they are
// structurally identical: complete, injective and connected, with equal
// types and referents.
func Isomorphism() *Config { return mustConfig() }

// Projection returns the config for conceptual graph projection: every
// element of the first graph maps to a specialization in the second graph.
// Several first-graph elements may share an image.
func Projection() *Config {
	return mustConfig(
		WithGraph(GraphSubgraph),
		WithConceptType(TypeSupertype),
		WithRelationType(TypeSupertype),
		WithQuantifier(QuantifierAnything),
		WithDesignator(DesignatorGeneralizes),
		WithFold(FoldSecond),
	)
}

// Subgraph returns the config for plain structural subgraph search, which
// compares types by identity and ignores referents.
func Subgraph() *Config {
	return mustConfig(
		WithGraph(GraphSubgraph),
		WithConcept(ConceptTypes),
	)
}

// Preset returns the preset with the given name: "isomorphism",
// "projection" or "subgraph".
func Preset(name string) (*Config, error) {
	switch name {
	case "isomorphism", "":
		return Isomorphism(), nil
	case "projection":
		return Projection(), nil
	case "subgraph":
		return Subgraph(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfiguration, "unknown preset %q", name)
}

func mustConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
