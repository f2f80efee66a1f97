package match

import (
	"fmt"
	"time"

	"github.com/matzehuels/cgraph/pkg/cg"
	"github.com/matzehuels/cgraph/pkg/errors"
	"github.com/matzehuels/cgraph/pkg/observability"
)

type genState int

const (
	stateUninitialized genState = iota
	stateSearching
	stateExhausted
)

// Generator lazily enumerates the mappings between two graphs.
//
// Relations and concepts are searched independently: each relation
// assignment is held fixed while every concept assignment is tried, then
// the relation assignment advances. Mappings are not filtered for
// connectedness; [Mapping.Connected] does that.
//
// A Generator is single-use and must not be advanced concurrently. Once
// exhausted it drops its references to both graphs.
type Generator struct {
	matcher *Matcher
	cfg     *Config
	first   Graph
	second  Graph

	state          genState
	c1, c2         []*cg.Concept
	r1, r2         []*cg.Relation
	concepts       *search
	relations      *search
	relationsReady bool

	produced int
	started  time.Time
}

// NewGenerator prepares a search over a and b. A nil graph reads as empty.
// No work is done until the first call to Next.
//
// Returns UNSUPPORTED_MODE for GraphInstance and GraphAnything, which never
// need a search, and INVALID_INPUT when a descriptor graph contains itself.
func (m *Matcher) NewGenerator(a, b Graph, cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "config must not be nil")
	}
	if err := checkDescriptors(conceptsOf(a), conceptsOf(b)); err != nil {
		return nil, err
	}
	return m.newGenerator(a, b, cfg)
}

func (m *Matcher) newGenerator(a, b Graph, cfg *Config) (*Generator, error) {
	if isNil(a) {
		a = nil
	}
	if isNil(b) {
		b = nil
	}
	switch cfg.Graph() {
	case GraphInstance, GraphAnything:
		return nil, errors.New(errors.ErrCodeUnsupportedMode, "graph mode %s does not enumerate mappings", cfg.Graph())
	}
	return &Generator{matcher: m, cfg: cfg, first: a, second: b}, nil
}

// Next returns the next mapping. It reports false once no mapping is left,
// and keeps doing so on every later call.
func (g *Generator) Next() (*Mapping, bool) {
	if g.state == stateUninitialized {
		g.init()
	}
	for g.state == stateSearching {
		if !g.relationsReady {
			if !g.relations.next() {
				g.exhaust()
				break
			}
			g.relationsReady = true
			g.concepts.reset()
		}
		if !g.concepts.next() {
			g.relationsReady = false
			continue
		}
		if g.cfg.Graph() == GraphProperSubgraph &&
			g.concepts.mapped2+g.relations.mapped2 >= g.concepts.n2+g.relations.n2 {
			continue
		}

		mp := g.snapshot()
		g.produced++
		observability.Match().OnMapping(g.cfg.Graph().String(), len(mp.Concepts), len(mp.Relations))
		return mp, true
	}
	return nil, false
}

// Close stops the search early and releases the graphs.
func (g *Generator) Close() {
	if g.state == stateUninitialized {
		g.state = stateExhausted
		g.release()
		return
	}
	g.exhaust()
}

func (g *Generator) init() {
	g.started = time.Now()
	g.c1, g.c2 = conceptsOf(g.first), conceptsOf(g.second)
	g.r1, g.r2 = relationsOf(g.first), relationsOf(g.second)

	mode := g.cfg.Graph().String()
	size1, size2 := len(g.c1)+len(g.r1), len(g.c2)+len(g.r2)
	observability.Match().OnSearchStart(mode, size1, size2)

	if reason := g.precheck(); reason != "" {
		g.matcher.logger.Debug("size pre-check rejected search", "mode", mode, "reason", reason)
		g.exhaust()
		return
	}

	cc, missing := candidates(g.c1, g.c2, func(a, b *cg.Concept) (bool, *Result) {
		return g.matcher.matchConcept(a, b, g.cfg)
	})
	if missing >= 0 {
		g.matcher.logger.Debug("concept has no candidates", "concept", g.c1[missing])
		g.exhaust()
		return
	}
	rc, missing := candidates(g.r1, g.r2, func(a, b *cg.Relation) (bool, *Result) {
		return g.matcher.matchRelation(a, b, g.cfg), nil
	})
	if missing >= 0 {
		g.matcher.logger.Debug("relation has no candidates", "relation", g.r1[missing])
		g.exhaust()
		return
	}

	g.concepts = newSearch(len(g.c1), len(g.c2), cc, g.cfg)
	g.relations = newSearch(len(g.r1), len(g.r2), rc, g.cfg)
	g.state = stateSearching
	g.matcher.logger.Debug("candidate tables built", "mode", mode,
		"concept_pairs", len(cc), "relation_pairs", len(rc))
}

// precheck rejects searches that cannot succeed from element counts alone.
// It returns the reason, or "" when a search is needed.
func (g *Generator) precheck() string {
	fold := g.cfg.Fold()
	complete := g.cfg.Graph() == GraphComplete
	kinds := []struct {
		name   string
		n1, n2 int
	}{
		{"concepts", len(g.c1), len(g.c2)},
		{"relations", len(g.r1), len(g.r2)},
	}
	for _, k := range kinds {
		switch {
		case k.n1 > 0 && k.n2 == 0:
			return fmt.Sprintf("no %s to map onto", k.name)
		case k.n1 > k.n2 && !fold.second():
			return fmt.Sprintf("%d %s do not fit into %d", k.n1, k.name, k.n2)
		case complete && k.n1 == 0 && k.n2 > 0:
			return fmt.Sprintf("no %s to cover %d", k.name, k.n2)
		case complete && k.n1 < k.n2 && !fold.first():
			return fmt.Sprintf("%d %s cannot cover %d", k.n1, k.name, k.n2)
		}
	}
	if g.cfg.Graph() == GraphProperSubgraph {
		n1, n2 := len(g.c1)+len(g.r1), len(g.c2)+len(g.r2)
		if n2 == 0 {
			return "an empty graph has no proper subgraph"
		}
		if n1 >= n2 && !fold.second() {
			return fmt.Sprintf("%d elements cannot leave part of %d unmapped", n1, n2)
		}
	}
	return ""
}

func (g *Generator) snapshot() *Mapping {
	mp := &Mapping{
		First:     g.first,
		Second:    g.second,
		Concepts:  make([]ConceptPair, 0, len(g.concepts.stack)),
		Relations: make([]RelationPair, 0, len(g.relations.stack)),
	}
	for _, p := range g.concepts.stack {
		c := g.concepts.pairs[p]
		mp.Concepts = append(mp.Concepts, ConceptPair{First: g.c1[c.first], Second: g.c2[c.second], Nested: c.nested})
	}
	for _, p := range g.relations.stack {
		c := g.relations.pairs[p]
		mp.Relations = append(mp.Relations, RelationPair{First: g.r1[c.first], Second: g.r2[c.second]})
	}
	return mp
}

func (g *Generator) exhaust() {
	if g.state == stateExhausted {
		return
	}
	g.state = stateExhausted
	elapsed := time.Since(g.started)
	mode := g.cfg.Graph().String()
	g.matcher.logger.Debug("search exhausted", "mode", mode, "mappings", g.produced, "elapsed", elapsed)
	observability.Match().OnSearchExhausted(mode, g.produced, elapsed)
	g.release()
}

func (g *Generator) release() {
	g.first, g.second = nil, nil
	g.c1, g.c2, g.r1, g.r2 = nil, nil, nil, nil
	g.concepts, g.relations = nil, nil
}

func conceptsOf(g Graph) []*cg.Concept {
	if isNil(g) {
		return nil
	}
	return g.Concepts()
}

func relationsOf(g Graph) []*cg.Relation {
	if isNil(g) {
		return nil
	}
	return g.Relations()
}
