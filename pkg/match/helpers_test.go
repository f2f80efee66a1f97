package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cgraph/pkg/cg"
	"github.com/matzehuels/cgraph/pkg/lattice"
)

// hierarchy builds:
//
//	Entity
//	├── Animal
//	│   ├── Cat
//	│   └── Dog
//	├── Mat
//	└── Link
//	    ├── On
//	    └── Agnt
type hierarchy struct {
	lat   *lattice.Lattice
	types map[string]*lattice.Type
}

func newHierarchy(t *testing.T) *hierarchy {
	t.Helper()
	l, err := lattice.New(lattice.NewType("Entity"), lattice.NewType("Absurd"))
	require.NoError(t, err)
	h := &hierarchy{lat: l, types: map[string]*lattice.Type{"Entity": l.Universal()}}
	for _, spec := range [][2]string{
		{"Animal", ""}, {"Cat", "Animal"}, {"Dog", "Animal"}, {"Mat", ""},
		{"Link", ""}, {"On", "Link"}, {"Agnt", "Link"},
	} {
		typ := lattice.NewType(spec[0])
		var supers []*lattice.Type
		if spec[1] != "" {
			supers = append(supers, h.types[spec[1]])
		}
		require.NoError(t, l.AddType(typ, supers, nil))
		h.types[spec[0]] = typ
	}
	return h
}

func (h *hierarchy) T(label string) *lattice.Type { return h.types[label] }

// untyped returns a graph of n concepts with neither type nor referent.
func untyped(n int) *cg.Graph {
	g := cg.NewGraph()
	for range n {
		g.AddConcept(nil, nil)
	}
	return g
}

func relate(t *testing.T, g *cg.Graph, typ *lattice.Type, args ...*cg.Concept) *cg.Relation {
	t.Helper()
	r, err := g.AddRelation(typ, args, len(args)-1)
	require.NoError(t, err)
	return r
}

func mustNew(t *testing.T, opts ...Option) *Config {
	t.Helper()
	cfg, err := NewConfig(opts...)
	require.NoError(t, err)
	return cfg
}

func collect(t *testing.T, m *Matcher, a, b Graph, cfg *Config) []*Mapping {
	t.Helper()
	gen, err := m.NewGenerator(a, b, cfg)
	require.NoError(t, err)
	var out []*Mapping
	for {
		mp, ok := gen.Next()
		if !ok {
			return out
		}
		out = append(out, mp)
	}
}

type countingHooks struct {
	starts, mappings, exhausted, produced int
}

func (h *countingHooks) OnSearchStart(string, int, int) { h.starts++ }
func (h *countingHooks) OnMapping(string, int, int)     { h.mappings++ }
func (h *countingHooks) OnSearchExhausted(_ string, produced int, _ time.Duration) {
	h.exhausted++
	h.produced = produced
}
