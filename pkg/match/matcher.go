package match

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph/pkg/cg"
)

// Graph is the read-only view of a conceptual graph the matcher needs.
// *cg.Graph implements it.
type Graph interface {
	Concepts() []*cg.Concept
	Relations() []*cg.Relation
}

// CorefOracle answers coreference questions about concepts.
// *cg.Coreferences implements it.
type CorefOracle interface {
	AreCoreferent(a, b *cg.Concept) bool
	// Closure returns every concept coreferent with c, c included.
	Closure(c *cg.Concept) []*cg.Concept
}

// ReferentComparator compares two referents under cfg. When the comparison
// recursed into descriptor graphs, the nested result is returned alongside.
type ReferentComparator interface {
	CompareReferents(a, b *cg.Referent, cfg *Config) (bool, *Result)
}

// ReferentComparatorFunc adapts a function to ReferentComparator.
type ReferentComparatorFunc func(a, b *cg.Referent, cfg *Config) (bool, *Result)

// CompareReferents calls f(a, b, cfg).
func (f ReferentComparatorFunc) CompareReferents(a, b *cg.Referent, cfg *Config) (bool, *Result) {
	return f(a, b, cfg)
}

// Matcher compares concepts, relations and graphs under a [Config].
//
// A Matcher holds no per-match state and can be reused. It is not safe for
// concurrent use when its collaborators are not.
type Matcher struct {
	coref     CorefOracle
	referents ReferentComparator
	logger    *log.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithCoreferences sets the coreference oracle. By default every concept
// is coreferent only with itself.
func WithCoreferences(o CorefOracle) MatcherOption {
	return func(m *Matcher) {
		if o != nil {
			m.coref = o
		}
	}
}

// WithReferentComparator replaces the built-in referent comparison.
func WithReferentComparator(rc ReferentComparator) MatcherOption {
	return func(m *Matcher) {
		if rc != nil {
			m.referents = rc
		}
	}
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger *log.Logger) MatcherOption {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatcher returns a Matcher with the given options applied.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{
		coref:  &cg.Coreferences{},
		logger: log.New(io.Discard),
	}
	m.referents = ReferentComparatorFunc(m.compareReferents)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// compareReferents is the built-in referent comparison. A nil referent is
// read as the generic existential one. Descriptor graphs are matched with
// cfg.Nested().
func (m *Matcher) compareReferents(a, b *cg.Referent, cfg *Config) (bool, *Result) {
	if a == nil {
		a = &cg.Referent{}
	}
	if b == nil {
		b = &cg.Referent{}
	}
	if cfg.Quantifier() == QuantifierEqual && a.Quantifier != b.Quantifier {
		return false, nil
	}
	if !m.matchDesignators(a.Designator, b.Designator, cfg) {
		return false, nil
	}
	if a.Descriptor == nil && b.Descriptor == nil {
		return true, nil
	}
	res, err := m.matchGraphs(asGraph(a.Descriptor), asGraph(b.Descriptor), cfg.Nested())
	if err != nil {
		m.logger.Debug("descriptor match failed", "err", err)
		return false, nil
	}
	return res.Matched(), res
}

func (m *Matcher) matchDesignators(a, b cg.Designator, cfg *Config) bool {
	switch cfg.Designator() {
	case DesignatorAnything:
		return true
	case DesignatorGeneralizes:
		if a == nil {
			return true
		}
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ma, okA := a.(*cg.Marker)
	mb, okB := b.(*cg.Marker)
	if okA && okB {
		return matchMarkers(ma, mb, cfg)
	}
	return a.Equal(b)
}

func matchMarkers(a, b *cg.Marker, cfg *Config) bool {
	switch cfg.Marker() {
	case MarkerInstance:
		return a == b
	case MarkerAnything:
		return true
	case MarkerID:
		return a.ID == b.ID
	case MarkerComparator:
		return cfg.MarkerComparator()(a, b)
	}
	return false
}

// asGraph keeps a nil *cg.Graph from becoming a non-nil Graph.
func asGraph(g *cg.Graph) Graph {
	if g == nil {
		return nil
	}
	return g
}
