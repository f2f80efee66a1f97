package match

import (
	"reflect"

	"github.com/matzehuels/cgraph/pkg/cg"
	"github.com/matzehuels/cgraph/pkg/errors"
)

var equivalence = mustConfig(WithMaxResults(1))

// MatchGraphs matches a against b under cfg.
//
// GraphInstance and GraphAnything are decided without a search. Otherwise a
// nil graph reads as an empty one, except that for GraphSubgraph a nil first
// graph matches anything and a nil second graph only matches a nil first
// graph. Up to cfg.MaxResults() mappings are collected, skipping
// disconnected ones when cfg.Connected() is set, and the graphs match when
// at least one mapping was found.
//
// Returns INVALID_INPUT when a descriptor graph contains itself.
func (m *Matcher) MatchGraphs(a, b Graph, cfg *Config) (*Result, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "config must not be nil")
	}
	if err := checkDescriptors(conceptsOf(a), conceptsOf(b)); err != nil {
		return nil, err
	}
	return m.matchGraphs(a, b, cfg)
}

// matchGraphs is MatchGraphs without the descriptor check. Descriptor
// comparison recurses through it once the outermost graphs were checked.
func (m *Matcher) matchGraphs(a, b Graph, cfg *Config) (*Result, error) {
	switch cfg.Graph() {
	case GraphInstance:
		return &Result{matched: sameGraph(a, b)}, nil
	case GraphAnything:
		return &Result{matched: true}, nil
	case GraphComplete:
		if isNil(a) && isNil(b) {
			return &Result{matched: true}, nil
		}
	case GraphSubgraph:
		if isNil(a) {
			return &Result{matched: true}, nil
		}
		if isNil(b) {
			return &Result{matched: false}, nil
		}
	}

	gen, err := m.newGenerator(a, b, cfg)
	if err != nil {
		return nil, err
	}
	defer gen.Close()

	res := &Result{}
	for {
		mp, ok := gen.Next()
		if !ok {
			break
		}
		if cfg.Connected() && !mp.Connected() {
			continue
		}
		res.mappings = append(res.mappings, mp)
		if cfg.MaxResults() > 0 && len(res.mappings) >= cfg.MaxResults() {
			break
		}
	}
	res.matched = len(res.mappings) > 0
	return res, nil
}

// MatchConcepts compares two concepts directly. When the comparison matched
// descriptor graphs, their mappings are returned in the result.
func (m *Matcher) MatchConcepts(a, b *cg.Concept, cfg *Config) (*Result, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "config must not be nil")
	}
	if a == nil || b == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "concepts must not be nil")
	}
	if err := checkDescriptors([]*cg.Concept{a, b}); err != nil {
		return nil, err
	}
	ok, nested := m.matchConcept(a, b, cfg)
	res := &Result{matched: ok}
	if ok {
		res.mappings = nested.Mappings()
	}
	return res, nil
}

// MatchRelations compares two relations directly.
func (m *Matcher) MatchRelations(a, b *cg.Relation, cfg *Config) (*Result, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "config must not be nil")
	}
	if a == nil || b == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "relations must not be nil")
	}
	if err := checkDescriptors(a.Args, b.Args); err != nil {
		return nil, err
	}
	return &Result{matched: m.matchRelation(a, b, cfg)}, nil
}

// Equivalent reports whether a and b are isomorphic under [Isomorphism].
func (m *Matcher) Equivalent(a, b Graph) bool {
	res, err := m.MatchGraphs(a, b, equivalence)
	return err == nil && res.Matched()
}

// MatchGraphs matches a against b with a default Matcher.
func MatchGraphs(a, b Graph, cfg *Config) (*Result, error) {
	return NewMatcher().MatchGraphs(a, b, cfg)
}

// Equivalent reports whether a and b are isomorphic, using a default Matcher.
func Equivalent(a, b Graph) bool {
	return NewMatcher().Equivalent(a, b)
}

func isNil(g Graph) bool {
	if g == nil {
		return true
	}
	v := reflect.ValueOf(g)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// checkDescriptors walks the descriptor graphs reachable from the given
// concepts and fails with INVALID_INPUT if one of them contains itself.
func checkDescriptors(concepts ...[]*cg.Concept) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[*cg.Graph]int)
	var walk func(cs []*cg.Concept) error
	walk = func(cs []*cg.Concept) error {
		for _, c := range cs {
			if c == nil || c.Referent == nil || c.Referent.Descriptor == nil {
				continue
			}
			d := c.Referent.Descriptor
			switch state[d] {
			case visiting:
				return errors.New(errors.ErrCodeInvalidInput, "descriptor of %s contains itself", c)
			case done:
				continue
			}
			state[d] = visiting
			if err := walk(d.Concepts()); err != nil {
				return err
			}
			state[d] = done
		}
		return nil
	}
	for _, cs := range concepts {
		if err := walk(cs); err != nil {
			return err
		}
	}
	return nil
}

func sameGraph(a, b Graph) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a == b
}
