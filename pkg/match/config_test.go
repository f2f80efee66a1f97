package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cgraph/pkg/cg"
	"github.com/matzehuels/cgraph/pkg/errors"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, GraphComplete, cfg.Graph())
	assert.Equal(t, ConceptAll, cfg.Concept())
	assert.Equal(t, RelationAll, cfg.Relation())
	assert.Equal(t, ArcConcept, cfg.Arc())
	assert.Equal(t, FoldNone, cfg.Fold())
	assert.True(t, cfg.Connected())
	assert.Zero(t, cfg.MaxResults())
	assert.Same(t, cfg, cfg.Nested())
}

func TestNewConfigValidation(t *testing.T) {
	sameID := func(a, b *cg.Marker) bool { return a.ID == b.ID }

	tests := []struct {
		name string
		opts []Option
	}{
		{"graph out of range", []Option{WithGraph(GraphMode(99))}},
		{"negative concept mode", []Option{WithConcept(ConceptMode(-1))}},
		{"relation out of range", []Option{WithRelation(RelationMode(5))}},
		{"type out of range", []Option{WithConceptType(TypeMode(6))}},
		{"relation type out of range", []Option{WithRelationType(TypeMode(42))}},
		{"quantifier out of range", []Option{WithQuantifier(QuantifierMode(2))}},
		{"designator out of range", []Option{WithDesignator(DesignatorMode(3))}},
		{"arc out of range", []Option{WithArc(ArcMode(4))}},
		{"fold out of range", []Option{WithFold(Fold(4))}},
		{"negative max results", []Option{WithMaxResults(-1)}},
		{"comparator mode without comparator", []Option{WithMarker(MarkerComparator)}},
		{"comparator without comparator mode", []Option{WithMarkerComparator(sameID), WithMarker(MarkerID)}},
		{"nil comparator", []Option{WithMarkerComparator(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.opts...)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "error = %v", err)
		})
	}
}

func TestConfigWith(t *testing.T) {
	base := Projection()
	derived, err := base.With(WithMaxResults(3), WithConnected(false))
	require.NoError(t, err)

	assert.Equal(t, 3, derived.MaxResults())
	assert.False(t, derived.Connected())
	assert.Zero(t, base.MaxResults(), "base must be unchanged")
	assert.True(t, base.Connected())
	assert.Same(t, derived, derived.Nested())

	_, err = base.With(WithMaxResults(-2))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
}

func TestConfigWithLeavesComparatorMode(t *testing.T) {
	cmp, err := NewConfig(WithMarkerComparator(func(a, b *cg.Marker) bool { return true }))
	require.NoError(t, err)
	require.NotNil(t, cmp.MarkerComparator())

	plain, err := cmp.With(WithMarker(MarkerID))
	require.NoError(t, err)
	assert.Nil(t, plain.MarkerComparator())
}

func TestNestedConfig(t *testing.T) {
	inner := Subgraph()
	outer, err := NewConfig(WithNested(inner))
	require.NoError(t, err)
	assert.Same(t, inner, outer.Nested())
	assert.Contains(t, outer.String(), "nested=custom")
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name  string
		graph GraphMode
		fold  Fold
	}{
		{"isomorphism", GraphComplete, FoldNone},
		{"projection", GraphSubgraph, FoldSecond},
		{"subgraph", GraphSubgraph, FoldNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Preset(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.graph, cfg.Graph())
			assert.Equal(t, tt.fold, cfg.Fold())
		})
	}

	_, err := Preset("fuzzy")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
}

func TestParseModes(t *testing.T) {
	for _, name := range graphModeNames {
		m, err := ParseGraphMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}
	for _, name := range typeModeNames {
		m, err := ParseTypeMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}
	for _, name := range foldNames {
		f, err := ParseFold(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}

	_, err := ParseConceptMode("everything")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
	assert.Equal(t, "invalid(9)", ArcMode(9).String())
}
